package cartridge

import "testing"

func buildHeaderROM() []byte {
	rom := make([]byte, 0x8000)
	copy(rom[titleStart:], []byte("MYGAME\x00\x00\x00\x00\x00\x00\x00\x00\x00"))
	rom[cgbFlagAddr] = 0x80
	rom[sgbFlagAddr] = 0x00
	rom[typeAddr] = 0x00
	rom[romSizeAddr] = 0x00
	rom[ramSizeAddr] = 0x02
	rom[globalLoAddr] = 0xAB
	rom[globalLoAddr+1] = 0xCD

	var x byte
	for i := titleStart; i < checksumAddr; i++ {
		x = x - rom[i] - 1
	}
	rom[checksumAddr] = x
	return rom
}

func TestReadHeader(t *testing.T) {
	rom := buildHeaderROM()
	h, err := ReadHeader(rom)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.Title != "MYGAME" {
		t.Fatalf("Title = %q, want MYGAME", h.Title)
	}
	if h.GlobalChecksum != 0xABCD {
		t.Fatalf("GlobalChecksum = 0x%04X, want 0xABCD (big-endian)", h.GlobalChecksum)
	}
	if h.RAMSizeCode != 0x02 {
		t.Fatalf("RAMSizeCode = 0x%02X, want 0x02", h.RAMSizeCode)
	}
}

func TestVerifyHeaderChecksum(t *testing.T) {
	rom := buildHeaderROM()
	if !VerifyHeaderChecksum(rom) {
		t.Fatalf("expected checksum to verify")
	}
	rom[checksumAddr]++
	if VerifyHeaderChecksum(rom) {
		t.Fatalf("corrupted checksum should not verify")
	}
}

func TestRAMBytesTable(t *testing.T) {
	cases := map[byte]int{0x00: 0, 0x01: 2 * 1024, 0x02: 8 * 1024, 0x03: 32 * 1024}
	for code, want := range cases {
		if got := RAMBytes(code); got != want {
			t.Fatalf("RAMBytes(0x%02X) = %d, want %d", code, got, want)
		}
	}
}

func TestMapper0RAMGatingByPresence(t *testing.T) {
	rom := buildHeaderROM()
	h, _ := ReadHeader(rom)
	m := NewMapper0(rom, h)

	if !m.RAMEnabled() {
		t.Fatalf("expected RAM enabled: header declares %d bytes", RAMBytes(h.RAMSizeCode))
	}
	m.WriteRAM(0x10, 0x42)
	if got := m.ReadRAM(0x10); got != 0x42 {
		t.Fatalf("ReadRAM = 0x%02X, want 0x42", got)
	}
}

func TestMapper0ROMOutOfRange(t *testing.T) {
	m := &Mapper0{rom: []byte{0x11, 0x22}}
	if got := m.ReadROM(5); got != 0xFF {
		t.Fatalf("out-of-range ROM read = 0x%02X, want 0xFF", got)
	}
}
