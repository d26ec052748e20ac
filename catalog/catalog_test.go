package catalog

import "testing"

func TestLoadDefaultCoversEverySlot(t *testing.T) {
	cat, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	for i := 0; i < 256; i++ {
		if !cat.present[i] {
			t.Fatalf("unprefixed slot 0x%02X missing", i)
		}
		if !cat.cbPresent[i] {
			t.Fatalf("cbprefixed slot 0x%02X missing", i)
		}
	}
}

func TestKnownEntries(t *testing.T) {
	cat, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}

	nop, ok := cat.Get(0x00, false)
	if !ok || nop.Mnemonic != "NOP" || nop.BaseCycles() != 4 {
		t.Fatalf("NOP entry wrong: %+v ok=%v", nop, ok)
	}

	jrNZ, ok := cat.Get(0x20, false)
	if !ok || jrNZ.BranchCycles() != 12 || jrNZ.BaseCycles() != 8 {
		t.Fatalf("JR NZ entry wrong: %+v", jrNZ)
	}

	halt, ok := cat.Get(0x76, false)
	if !ok || halt.Mnemonic != "HALT" {
		t.Fatalf("0x76 should be HALT, got %+v", halt)
	}

	illegal, ok := cat.Get(0xD3, false)
	if ok {
		t.Fatalf("0xD3 should be illegal, got %+v", illegal)
	}

	bit7h, ok := cat.Get(0x7C, true)
	if !ok || bit7h.Mnemonic != "BIT" || bit7h.Operands[0].Name != "7" || bit7h.Operands[1].Name != "H" {
		t.Fatalf("CB 0x7C should be BIT 7,H, got %+v", bit7h)
	}

	swapB, ok := cat.Get(0x30, true)
	if !ok || swapB.Mnemonic != "SWAP" || swapB.Operands[0].Name != "B" {
		t.Fatalf("CB 0x30 should be SWAP B, got %+v", swapB)
	}
}

func TestMissingSlotRejected(t *testing.T) {
	_, err := Load([]byte(`{"unprefixed":{},"cbprefixed":{}}`))
	if err == nil {
		t.Fatalf("expected missing-slot error")
	}
	if _, ok := err.(*MissingSlotError); !ok {
		t.Fatalf("expected *MissingSlotError, got %T: %v", err, err)
	}
}

func TestMalformedDocumentRejected(t *testing.T) {
	_, err := Load([]byte(`not json`))
	if err == nil {
		t.Fatalf("expected malformed-document error")
	}
}
