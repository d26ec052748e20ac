// Package catalog loads the static opcode description tables for the
// Sharp LR35902 instruction set: one for the unprefixed opcode space and
// one for the 0xCB-prefixed space. The catalog is read-only once loaded
// and is consulted by the decoder, never by the CPU's own dispatch table.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed opcodes.json
var defaultTable embed.FS

// Operand describes one operand of a catalog entry. Immediate is true
// when the operand's value is used directly (a register or a fetched
// immediate); false when it names an address to be dereferenced (e.g.
// "(HL)", "(BC)", or the a8/a16 forms used by LDH/LD (a16),A).
type Operand struct {
	Name      string `json:"name"`
	Bytes     int    `json:"bytes,omitempty"`
	Immediate bool   `json:"immediate"`
	Increment bool   `json:"increment,omitempty"`
	Decrement bool   `json:"decrement,omitempty"`
}

// Entry is one slot of either table: a concrete opcode's static metadata.
type Entry struct {
	Mnemonic  string    `json:"mnemonic"`
	Bytes     int       `json:"bytes"`
	Cycles    []int     `json:"cycles"`
	Operands  []Operand `json:"operands"`
	Immediate bool      `json:"immediate"`
	Illegal   bool      `json:"illegal,omitempty"`
}

// BaseCycles returns the cycle cost used when a conditional instruction's
// branch is not taken, or the sole cost for unconditional instructions.
func (e Entry) BaseCycles() int {
	if len(e.Cycles) == 0 {
		return 0
	}
	if len(e.Cycles) == 1 {
		return e.Cycles[0]
	}
	return e.Cycles[1]
}

// BranchCycles returns the cycle cost used when a conditional branch is
// taken. For instructions with a single timing, it is equal to BaseCycles.
func (e Entry) BranchCycles() int {
	return e.Cycles[0]
}

// ImmediateWidth returns the number of bytes the decoder must read
// immediately following the opcode byte(s), summed across operands that
// carry an immediate width.
func (e Entry) ImmediateWidth() int {
	n := 0
	for _, op := range e.Operands {
		n += op.Bytes
	}
	return n
}

// document mirrors the on-disk JSON shape: two 256-entry tables keyed by
// "0xXX" hex strings.
type document struct {
	Unprefixed map[string]Entry `json:"unprefixed"`
	CBPrefixed map[string]Entry `json:"cbprefixed"`
}

// Catalog is the loaded, read-only pair of opcode tables.
type Catalog struct {
	unprefixed [256]Entry
	cbprefixed [256]Entry
	present    [256]bool
	cbPresent  [256]bool
}

// MissingSlotError reports that the JSON document did not account for
// every one of the 256 slots in one of the two tables.
type MissingSlotError struct {
	Table  string
	Opcode byte
}

func (e *MissingSlotError) Error() string {
	return fmt.Sprintf("catalog: missing %s slot 0x%02X", e.Table, e.Opcode)
}

// Load parses raw to build a Catalog. Every one of the 512 slots must be
// present, either as a real entry or one explicitly marked Illegal.
func Load(raw []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: malformed document: %w", err)
	}

	c := &Catalog{}
	for i := 0; i < 256; i++ {
		key := fmt.Sprintf("0x%02X", i)
		entry, ok := doc.Unprefixed[key]
		if !ok {
			return nil, &MissingSlotError{Table: "unprefixed", Opcode: byte(i)}
		}
		c.unprefixed[i] = entry
		c.present[i] = true

		entry, ok = doc.CBPrefixed[key]
		if !ok {
			return nil, &MissingSlotError{Table: "cbprefixed", Opcode: byte(i)}
		}
		c.cbprefixed[i] = entry
		c.cbPresent[i] = true
	}
	return c, nil
}

// LoadDefault loads the catalog embedded in this package at build time.
func LoadDefault() (*Catalog, error) {
	raw, err := defaultTable.ReadFile("opcodes.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: reading embedded table: %w", err)
	}
	return Load(raw)
}

// Get returns the entry for opcode, selecting the CB-prefixed table when
// prefixed is true. The boolean result is false only if the slot was
// loaded with its Illegal marker set.
func (c *Catalog) Get(opcode byte, prefixed bool) (Entry, bool) {
	if prefixed {
		e := c.cbprefixed[opcode]
		return e, !e.Illegal
	}
	e := c.unprefixed[opcode]
	return e, !e.Illegal
}
