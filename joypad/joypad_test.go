package joypad

import "testing"

func TestReadWithNothingSelected(t *testing.T) {
	var p Pad
	p.Write(0x30) // both select bits set = neither matrix selected
	if got := p.Read(); got != 0xFF {
		t.Fatalf("Read() = 0x%02X, want 0xFF", got)
	}
}

func TestButtonMatrixSelection(t *testing.T) {
	var p Pad
	p.SetButton(ButtonA, true)
	p.SetButton(ButtonStart, true)
	p.Write(0x10) // clear bit5: buttons selected

	got := p.Read()
	want := byte(0xC0 | 0x10 | (^byte(0x09) & 0x0F))
	if got != want {
		t.Fatalf("Read() = 0x%02X, want 0x%02X", got, want)
	}
}

func TestDirectionMatrixSelection(t *testing.T) {
	var p Pad
	p.SetDirection(DirDown, true)
	p.Write(0x20) // clear bit4: directions selected

	got := p.Read()
	want := byte(0xC0 | 0x20 | (^byte(0x08) & 0x0F))
	if got != want {
		t.Fatalf("Read() = 0x%02X, want 0x%02X", got, want)
	}
}

func TestReleaseClearsBit(t *testing.T) {
	var p Pad
	p.SetButton(ButtonB, true)
	p.Write(0x10)
	if p.Read()&0x02 != 0 {
		t.Fatalf("B should read pressed (bit clear)")
	}
	p.SetButton(ButtonB, false)
	if p.Read()&0x02 == 0 {
		t.Fatalf("B should read released (bit set) after release")
	}
}
