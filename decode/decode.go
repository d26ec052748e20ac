// Package decode turns a byte stream and a cursor into a decoded
// instruction using the static catalog. Decode is pure and side-effect
// free: it never touches CPU or bus state, only the byte slice it is
// given.
package decode

import (
	"fmt"

	"github.com/66271541/MyBoyAdvanced/catalog"
)

// Operand is a resolved operand: the catalog's static description plus,
// for operands that consumed immediate bytes, the value read from the
// stream.
type Operand struct {
	Name      string
	Immediate bool
	Increment bool
	Decrement bool
	HasValue  bool
	Value     uint16
}

// Instruction is the immutable result of one decode call.
type Instruction struct {
	Opcode       byte
	Prefixed     bool
	Mnemonic     string
	LengthBytes  int
	BaseCycles   int
	BranchCycles int
	Operands     []Operand
}

// ErrorKind distinguishes the two ways decode can fail.
type ErrorKind int

const (
	// OutOfRange means the cursor plus the bytes the instruction needs
	// to read would run past the end of the buffer.
	OutOfRange ErrorKind = iota
	// IllegalOpcode means the catalog marks this opcode slot illegal.
	IllegalOpcode
)

// Error reports why decode failed at a given cursor.
type Error struct {
	Kind   ErrorKind
	Cursor int
	Opcode byte
}

func (e *Error) Error() string {
	switch e.Kind {
	case OutOfRange:
		return fmt.Sprintf("decode: out of range at cursor %d", e.Cursor)
	case IllegalOpcode:
		return fmt.Sprintf("decode: illegal opcode 0x%02X at cursor %d", e.Opcode, e.Cursor)
	default:
		return "decode: unknown error"
	}
}

// Decode reads one instruction from bytes starting at cursor, returning
// the instruction and the cursor positioned just past it.
func Decode(cat *catalog.Catalog, bytes []byte, cursor int) (int, Instruction, error) {
	if cursor < 0 || cursor >= len(bytes) {
		return cursor, Instruction{}, &Error{Kind: OutOfRange, Cursor: cursor}
	}

	opcode := bytes[cursor]
	cursor++
	prefixed := false

	if opcode == 0xCB {
		if cursor >= len(bytes) {
			return cursor, Instruction{}, &Error{Kind: OutOfRange, Cursor: cursor}
		}
		opcode = bytes[cursor]
		cursor++
		prefixed = true
	}

	entry, ok := cat.Get(opcode, prefixed)
	if !ok {
		return cursor, Instruction{}, &Error{Kind: IllegalOpcode, Cursor: cursor - 1, Opcode: opcode}
	}

	operands := make([]Operand, len(entry.Operands))
	for i, src := range entry.Operands {
		op := Operand{
			Name:      src.Name,
			Immediate: src.Immediate,
			Increment: src.Increment,
			Decrement: src.Decrement,
		}
		if src.Bytes > 0 {
			if cursor+src.Bytes > len(bytes) {
				return cursor, Instruction{}, &Error{Kind: OutOfRange, Cursor: cursor}
			}
			var value uint16
			for b := 0; b < src.Bytes; b++ {
				value |= uint16(bytes[cursor]) << (8 * b)
				cursor++
			}
			op.HasValue = true
			op.Value = value
		}
		operands[i] = op
	}

	inst := Instruction{
		Opcode:       opcode,
		Prefixed:     prefixed,
		Mnemonic:     entry.Mnemonic,
		LengthBytes:  entry.Bytes,
		BaseCycles:   entry.BaseCycles(),
		BranchCycles: entry.BranchCycles(),
		Operands:     operands,
	}
	return cursor, inst, nil
}
