package decode

import (
	"testing"

	"github.com/66271541/MyBoyAdvanced/catalog"
)

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	return cat
}

func TestDecodeNOP(t *testing.T) {
	cat := mustCatalog(t)
	cursor, inst, err := Decode(cat, []byte{0x00}, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cursor != 1 || inst.Mnemonic != "NOP" || inst.LengthBytes != 1 {
		t.Fatalf("got cursor=%d inst=%+v", cursor, inst)
	}
}

func TestDecodeImmediate16(t *testing.T) {
	cat := mustCatalog(t)
	// LD BC,0x1234 -> 0x01 0x34 0x12 (little endian)
	cursor, inst, err := Decode(cat, []byte{0x01, 0x34, 0x12}, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cursor != 3 {
		t.Fatalf("cursor = %d, want 3", cursor)
	}
	if inst.Operands[1].Value != 0x1234 {
		t.Fatalf("immediate = 0x%04X, want 0x1234", inst.Operands[1].Value)
	}
}

func TestDecodeCBPrefixed(t *testing.T) {
	cat := mustCatalog(t)
	cursor, inst, err := Decode(cat, []byte{0xCB, 0x7C}, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cursor != 2 || !inst.Prefixed || inst.Mnemonic != "BIT" {
		t.Fatalf("got cursor=%d inst=%+v", cursor, inst)
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	cat := mustCatalog(t)
	// LD BC,d16 needs two immediate bytes; only one is supplied.
	_, _, err := Decode(cat, []byte{0x01, 0x34}, 0)
	if err == nil {
		t.Fatalf("expected out-of-range error")
	}
	derr, ok := err.(*Error)
	if !ok || derr.Kind != OutOfRange {
		t.Fatalf("expected OutOfRange, got %#v", err)
	}
}

func TestDecodeIllegalOpcode(t *testing.T) {
	cat := mustCatalog(t)
	_, _, err := Decode(cat, []byte{0xD3}, 0)
	if err == nil {
		t.Fatalf("expected illegal opcode error")
	}
	derr, ok := err.(*Error)
	if !ok || derr.Kind != IllegalOpcode {
		t.Fatalf("expected IllegalOpcode, got %#v", err)
	}
}

func TestDecodeHLIncrementOperand(t *testing.T) {
	cat := mustCatalog(t)
	_, inst, err := Decode(cat, []byte{0x22}, 0) // LD (HL+),A
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !inst.Operands[0].Increment {
		t.Fatalf("expected HL+ operand to carry Increment, got %+v", inst.Operands[0])
	}
}

func TestDecodeCursorOutOfBounds(t *testing.T) {
	cat := mustCatalog(t)
	_, _, err := Decode(cat, []byte{0x00}, 5)
	if err == nil {
		t.Fatalf("expected out-of-range error for cursor beyond buffer")
	}
}
