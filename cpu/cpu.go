// Package cpu implements the Sharp LR35902 execution core: register
// file, flag register, interrupt servicing, and the two 256-entry
// dispatch tables (unprefixed and 0xCB-prefixed) that drive Step.
//
// The dispatch tables are populated once by initBaseOps/initCBOps,
// following the same flat-table-of-method-values shape the team's Z80
// core uses, rather than deriving handler names at runtime.
package cpu

import (
	"sync"

	"github.com/66271541/MyBoyAdvanced/interrupt"
	"github.com/66271541/MyBoyAdvanced/membus"
)

// Flag bit positions in F. Only the high nibble is ever meaningful;
// the low nibble is masked to zero on every write.
const (
	FlagZ byte = 1 << 7
	FlagN byte = 1 << 6
	FlagH byte = 1 << 5
	FlagC byte = 1 << 4
)

type opFunc func(c *CPU) int

// CPU holds the full LR35902 register file plus the scheduling state
// needed to implement the step contract: halted, ime, and the one
// instruction EI delay latch.
type CPU struct {
	A, F, B, C, D, E, H, L byte
	SP, PC                 uint16

	// mu guards the CPU's own reads and writes of Halted and the
	// ime/imePending latch, and IME(). Step takes it only long enough
	// to read/update that state and releases it before the instruction
	// body runs, the same shape CPU_Z80.Step uses. Bus.Interrupts and a
	// direct assignment to the exported Halted field do not take mu, so
	// changes to them from another goroutine are not synchronized with
	// Step.
	mu         sync.Mutex
	Halted     bool
	ime        bool
	imePending bool

	// DoubleSpeed is exposed for a PPU/host to query after STOP arms the
	// CGB speed switch. The core never reads it itself.
	DoubleSpeed bool
	// SpeedSwitchArmed is set by a KEY1 I/O hook before STOP executes;
	// the host is responsible for wiring that register.
	SpeedSwitchArmed bool

	// Fault is set once the dispatcher hits a slot the real hardware has
	// no defined behavior for. Once set, Step freezes: real LR35902
	// silicon locks up on these rather than continuing.
	Fault error

	Bus *membus.Bus

	baseOps [256]opFunc
	cbOps   [256]opFunc
}

// New constructs a CPU wired to bus, with its dispatch tables built.
func New(bus *membus.Bus) *CPU {
	c := &CPU{Bus: bus}
	c.initBaseOps()
	c.initCBOps()
	return c
}

// SetPostBootState loads the canonical register values a real boot ROM
// leaves behind, for hosts that skip running it.
func (c *CPU) SetPostBootState() {
	c.A, c.F = 0x01, 0xB0
	c.SetBC(0x0013)
	c.SetDE(0x00D8)
	c.SetHL(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
}

// Register pair accessors. F's low nibble is always masked to zero,
// so AF never reports a stray bit the guest never set.

func (c *CPU) AF() uint16 { return uint16(c.A)<<8 | uint16(c.F) }
func (c *CPU) BC() uint16 { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) DE() uint16 { return uint16(c.D)<<8 | uint16(c.E) }
func (c *CPU) HL() uint16 { return uint16(c.H)<<8 | uint16(c.L) }

func (c *CPU) SetAF(v uint16) { c.A = byte(v >> 8); c.setF(byte(v)) }
func (c *CPU) SetBC(v uint16) { c.B = byte(v >> 8); c.C = byte(v) }
func (c *CPU) SetDE(v uint16) { c.D = byte(v >> 8); c.E = byte(v) }
func (c *CPU) SetHL(v uint16) { c.H = byte(v >> 8); c.L = byte(v) }

// setF masks the low nibble on whole-byte writes of F (SetAF, and so
// POP AF); setFlag re-masks after every single-flag update. F is an
// exported field, so a direct c.F = ... assignment bypasses both.
func (c *CPU) setF(v byte) { c.F = v & 0xF0 }

func (c *CPU) flag(mask byte) bool { return c.F&mask != 0 }

func (c *CPU) setFlag(mask byte, on bool) {
	if on {
		c.F |= mask
	} else {
		c.F &^= mask
	}
	c.F &= 0xF0
}

// IME reports whether interrupts are currently enabled.
func (c *CPU) IME() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ime
}

// reg8 register codes, matching the opcode encoding's 3-bit field:
// 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
func (c *CPU) readReg8(code byte) byte {
	switch code & 0x7 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.Bus.Read(c.HL())
	default:
		return c.A
	}
}

func (c *CPU) writeReg8(code byte, value byte) {
	switch code & 0x7 {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.Bus.Write(c.HL(), value)
	default:
		c.A = value
	}
}

// fetchByte reads the byte at PC and advances PC past it.
func (c *CPU) fetchByte() byte {
	v := c.Bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

// pushWord and popWord implement the stack convention from spec §4.4.2:
// PUSH writes high to SP-1 then low to SP-2; POP reads low from SP then
// high from SP+1.
func (c *CPU) pushWord(v uint16) {
	c.SP--
	c.Bus.Write(c.SP, byte(v>>8))
	c.SP--
	c.Bus.Write(c.SP, byte(v))
}

func (c *CPU) popWord() uint16 {
	lo := c.Bus.Read(c.SP)
	c.SP++
	hi := c.Bus.Read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// Step performs exactly one of interrupt servicing, one instruction, or
// an idle halt tick, and returns the T-cycles consumed. See spec §4.4.1
// for the exact ordering this mirrors.
//
// mu is held only long enough to decide which of the three branches
// applies and to update Halted/ime accordingly; it is released before
// any instruction or interrupt-vector body runs.
func (c *CPU) Step() int {
	if c.Fault != nil {
		return 0
	}

	c.mu.Lock()
	servicing := c.ime && c.Bus.Interrupts.Pending()
	if !servicing && c.Halted {
		if c.Bus.Interrupts.Pending() {
			c.Halted = false
		}
		c.mu.Unlock()
		return 4
	}
	c.mu.Unlock()

	if servicing {
		return c.serviceInterrupt()
	}
	return c.execute()
}

func (c *CPU) serviceInterrupt() int {
	src, ok := c.Bus.Interrupts.Highest()
	if !ok {
		return 4
	}
	c.Bus.Interrupts.Clear(src)

	c.mu.Lock()
	c.ime = false
	c.Halted = false
	c.mu.Unlock()

	c.pushWord(c.PC)
	c.PC = interrupt.Vector(src)
	return 20
}

// execute promotes a delayed EI before dispatching the fetched opcode,
// so a DI executed in the delay window can still cancel it within the
// same step (scenario: EI; DI; HALT must leave ime false).
func (c *CPU) execute() int {
	c.mu.Lock()
	if c.imePending {
		c.ime = true
		c.imePending = false
	}
	c.mu.Unlock()

	opcode := c.fetchByte()
	if opcode == 0xCB {
		sub := c.fetchByte()
		return c.cbOps[sub](c)
	}
	return c.baseOps[opcode](c)
}
