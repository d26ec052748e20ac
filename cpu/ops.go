package cpu

import "fmt"

// IllegalOpcodeError reports a dispatch to an opcode slot the LR35902
// leaves undefined. Real hardware locks up; Step freezes in the same
// way rather than inventing a behavior for it.
type IllegalOpcodeError struct {
	Opcode   byte
	Prefixed bool
	At       uint16
}

func (e *IllegalOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("cpu: illegal opcode 0xCB 0x%02X at 0x%04X", e.Opcode, e.At)
	}
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", e.Opcode, e.At)
}

func (c *CPU) raiseIllegal(opcode byte, at uint16) int {
	c.Fault = &IllegalOpcodeError{Opcode: opcode, At: at}
	return 4
}

// initIrregularBaseOps assigns the unprefixed opcodes that do not fit
// any of the regular loop-built families in initBaseOps: control flow,
// the accumulator/(HL) load forms, and the handful of opcode slots the
// hardware leaves undefined.
func (c *CPU) initIrregularBaseOps() {
	c.baseOps[0x00] = func(c *CPU) int { return 4 }
	c.baseOps[0x02] = func(c *CPU) int { c.Bus.Write(c.BC(), c.A); return 8 }
	c.baseOps[0x07] = func(c *CPU) int { c.rotateAccumulator(c.rlc); return 4 }
	c.baseOps[0x08] = (*CPU).opLDInd16SP
	c.baseOps[0x0A] = func(c *CPU) int { c.A = c.Bus.Read(c.BC()); return 8 }
	c.baseOps[0x0F] = func(c *CPU) int { c.rotateAccumulator(c.rrc); return 4 }
	c.baseOps[0x10] = (*CPU).opSTOP
	c.baseOps[0x12] = func(c *CPU) int { c.Bus.Write(c.DE(), c.A); return 8 }
	c.baseOps[0x17] = func(c *CPU) int { c.rotateAccumulator(c.rl); return 4 }
	c.baseOps[0x18] = (*CPU).opJR
	c.baseOps[0x1A] = func(c *CPU) int { c.A = c.Bus.Read(c.DE()); return 8 }
	c.baseOps[0x1F] = func(c *CPU) int { c.rotateAccumulator(c.rr); return 4 }
	c.baseOps[0x22] = func(c *CPU) int { c.Bus.Write(c.HL(), c.A); c.SetHL(c.HL() + 1); return 8 }
	c.baseOps[0x27] = func(c *CPU) int { c.daa(); return 4 }
	c.baseOps[0x2A] = func(c *CPU) int { c.A = c.Bus.Read(c.HL()); c.SetHL(c.HL() + 1); return 8 }
	c.baseOps[0x2F] = func(c *CPU) int { c.cpl(); return 4 }
	c.baseOps[0x32] = func(c *CPU) int { c.Bus.Write(c.HL(), c.A); c.SetHL(c.HL() - 1); return 8 }
	c.baseOps[0x37] = func(c *CPU) int { c.scf(); return 4 }
	c.baseOps[0x3A] = func(c *CPU) int { c.A = c.Bus.Read(c.HL()); c.SetHL(c.HL() - 1); return 8 }
	c.baseOps[0x3F] = func(c *CPU) int { c.ccf(); return 4 }

	c.baseOps[0xC3] = (*CPU).opJP
	c.baseOps[0xC9] = (*CPU).opRET
	c.baseOps[0xCD] = (*CPU).opCALL
	c.baseOps[0xD9] = (*CPU).opRETI
	c.baseOps[0xE0] = func(c *CPU) int { a8 := c.fetchByte(); c.Bus.Write(0xFF00+uint16(a8), c.A); return 12 }
	c.baseOps[0xE2] = func(c *CPU) int { c.Bus.Write(0xFF00+uint16(c.C), c.A); return 8 }
	c.baseOps[0xE8] = func(c *CPU) int { e8 := c.fetchByte(); c.SP = c.addSPSigned(e8); return 16 }
	c.baseOps[0xE9] = func(c *CPU) int { c.PC = c.HL(); return 4 }
	c.baseOps[0xEA] = func(c *CPU) int { addr := c.fetchWord(); c.Bus.Write(addr, c.A); return 16 }
	c.baseOps[0xF0] = func(c *CPU) int { a8 := c.fetchByte(); c.A = c.Bus.Read(0xFF00 + uint16(a8)); return 12 }
	c.baseOps[0xF2] = func(c *CPU) int { c.A = c.Bus.Read(0xFF00 + uint16(c.C)); return 8 }
	c.baseOps[0xF3] = func(c *CPU) int {
		c.mu.Lock()
		c.ime = false
		c.imePending = false
		c.mu.Unlock()
		return 4
	}
	c.baseOps[0xF8] = func(c *CPU) int { e8 := c.fetchByte(); c.SetHL(c.addSPSigned(e8)); return 12 }
	c.baseOps[0xF9] = func(c *CPU) int { c.SP = c.HL(); return 8 }
	c.baseOps[0xFA] = func(c *CPU) int { addr := c.fetchWord(); c.A = c.Bus.Read(addr); return 16 }
	c.baseOps[0xFB] = func(c *CPU) int {
		c.mu.Lock()
		c.imePending = true
		c.mu.Unlock()
		return 4
	}

	for _, op := range []byte{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		op := op
		c.baseOps[op] = func(c *CPU) int { return c.raiseIllegal(op, c.PC-1) }
	}
	// 0xCB itself is intercepted in execute before the table is consulted;
	// the slot is filled only so the array has no nil entries.
	c.baseOps[0xCB] = func(c *CPU) int { return c.raiseIllegal(0xCB, c.PC-1) }
}

func (c *CPU) opHALT() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ime && c.Bus.Interrupts.Pending() {
		return 4 // does not engage; the next instruction runs normally
	}
	c.Halted = true
	return 4
}

func (c *CPU) opSTOP() int {
	c.fetchByte() // STOP is encoded as two bytes; the second is conventionally 0x00
	if c.SpeedSwitchArmed {
		c.DoubleSpeed = !c.DoubleSpeed
		c.SpeedSwitchArmed = false
		c.Bus.Write(0xFF04, 0)
	}
	return 4
}

func (c *CPU) opJR() int {
	e8 := c.fetchByte()
	c.PC = uint16(int32(c.PC) + int32(int8(e8)))
	return 12
}

func (c *CPU) opJRCond(cond condition) int {
	e8 := c.fetchByte()
	if c.conditionMet(cond) {
		c.PC = uint16(int32(c.PC) + int32(int8(e8)))
		return 12
	}
	return 8
}

func (c *CPU) opJP() int {
	c.PC = c.fetchWord()
	return 16
}

func (c *CPU) opJPCond(cond condition) int {
	addr := c.fetchWord()
	if c.conditionMet(cond) {
		c.PC = addr
		return 16
	}
	return 12
}

func (c *CPU) opCALL() int {
	addr := c.fetchWord()
	c.pushWord(c.PC)
	c.PC = addr
	return 24
}

func (c *CPU) opCALLCond(cond condition) int {
	addr := c.fetchWord()
	if c.conditionMet(cond) {
		c.pushWord(c.PC)
		c.PC = addr
		return 24
	}
	return 12
}

func (c *CPU) opRET() int {
	c.PC = c.popWord()
	return 16
}

func (c *CPU) opRETCond(cond condition) int {
	if c.conditionMet(cond) {
		c.PC = c.popWord()
		return 20
	}
	return 8
}

func (c *CPU) opRETI() int {
	c.PC = c.popWord()
	c.mu.Lock()
	c.ime = true
	c.mu.Unlock()
	return 16
}

func (c *CPU) opLDInd16SP() int {
	addr := c.fetchWord()
	c.Bus.Write(addr, byte(c.SP))
	c.Bus.Write(addr+1, byte(c.SP>>8))
	return 20
}
