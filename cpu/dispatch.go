package cpu

// initBaseOps populates the unprefixed dispatch table. Regular
// instruction families (LD r,r'; ALU A,r; 16-bit register-pair ops;
// conditional branches; RST vectors) are built by loop, mirroring the
// shape of the code but not the string-lookup mechanism it used to find
// handlers; everything irregular is assigned explicitly below.
func (c *CPU) initBaseOps() {
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue
		}
		dst := byte(op>>3) & 7
		src := byte(op) & 7
		cycles := 4
		if dst == 6 || src == 6 {
			cycles = 8
		}
		c.baseOps[op] = func(c *CPU) int {
			c.writeReg8(dst, c.readReg8(src))
			return cycles
		}
	}
	c.baseOps[0x76] = (*CPU).opHALT

	for op := 0x80; op <= 0xBF; op++ {
		src := byte(op) & 7
		alu := aluOp((op - 0x80) / 8)
		cycles := 4
		if src == 6 {
			cycles = 8
		}
		c.baseOps[op] = func(c *CPU) int {
			c.applyALU(alu, c.readReg8(src))
			return cycles
		}
	}

	ldRR16 := []byte{0x01, 0x11, 0x21, 0x31}
	for i, op := range ldRR16 {
		code := byte(i)
		c.baseOps[op] = func(c *CPU) int {
			c.setPair(code, c.fetchWord())
			return 12
		}
	}

	incRR := []byte{0x03, 0x13, 0x23, 0x33}
	for i, op := range incRR {
		code := byte(i)
		c.baseOps[op] = func(c *CPU) int {
			c.setPair(code, c.pair(code)+1)
			return 8
		}
	}

	decRR := []byte{0x0B, 0x1B, 0x2B, 0x3B}
	for i, op := range decRR {
		code := byte(i)
		c.baseOps[op] = func(c *CPU) int {
			c.setPair(code, c.pair(code)-1)
			return 8
		}
	}

	addHLRR := []byte{0x09, 0x19, 0x29, 0x39}
	for i, op := range addHLRR {
		code := byte(i)
		c.baseOps[op] = func(c *CPU) int {
			c.addHL16(c.pair(code))
			return 8
		}
	}

	pushRR := []byte{0xC5, 0xD5, 0xE5, 0xF5}
	for i, op := range pushRR {
		code := byte(i)
		c.baseOps[op] = func(c *CPU) int {
			c.pushWord(c.pairAF(code))
			return 16
		}
	}

	popRR := []byte{0xC1, 0xD1, 0xE1, 0xF1}
	for i, op := range popRR {
		code := byte(i)
		c.baseOps[op] = func(c *CPU) int {
			c.setPairAF(code, c.popWord())
			return 12
		}
	}

	incR8 := []byte{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C}
	for i, op := range incR8 {
		code := byte(i)
		cycles := 4
		if code == 6 {
			cycles = 12
		}
		c.baseOps[op] = func(c *CPU) int {
			c.writeReg8(code, c.inc8(c.readReg8(code)))
			return cycles
		}
	}

	decR8 := []byte{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D}
	for i, op := range decR8 {
		code := byte(i)
		cycles := 4
		if code == 6 {
			cycles = 12
		}
		c.baseOps[op] = func(c *CPU) int {
			c.writeReg8(code, c.dec8(c.readReg8(code)))
			return cycles
		}
	}

	ldR8d8 := []byte{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E}
	for i, op := range ldR8d8 {
		code := byte(i)
		cycles := 8
		if code == 6 {
			cycles = 12
		}
		c.baseOps[op] = func(c *CPU) int {
			c.writeReg8(code, c.fetchByte())
			return cycles
		}
	}

	aluD8 := []byte{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for i, op := range aluD8 {
		alu := aluOp(i)
		c.baseOps[op] = func(c *CPU) int {
			c.applyALU(alu, c.fetchByte())
			return 8
		}
	}

	jrCC := []byte{0x20, 0x28, 0x30, 0x38}
	for i, op := range jrCC {
		cond := condition(i)
		c.baseOps[op] = func(c *CPU) int {
			return c.opJRCond(cond)
		}
	}

	jpCC := []byte{0xC2, 0xCA, 0xD2, 0xDA}
	for i, op := range jpCC {
		cond := condition(i)
		c.baseOps[op] = func(c *CPU) int {
			return c.opJPCond(cond)
		}
	}

	callCC := []byte{0xC4, 0xCC, 0xD4, 0xDC}
	for i, op := range callCC {
		cond := condition(i)
		c.baseOps[op] = func(c *CPU) int {
			return c.opCALLCond(cond)
		}
	}

	retCC := []byte{0xC0, 0xC8, 0xD0, 0xD8}
	for i, op := range retCC {
		cond := condition(i)
		c.baseOps[op] = func(c *CPU) int {
			return c.opRETCond(cond)
		}
	}

	for n := 0; n < 8; n++ {
		op := byte(0xC7 + 8*n)
		vector := uint16(n) * 8
		c.baseOps[op] = func(c *CPU) int {
			c.pushWord(c.PC)
			c.PC = vector
			return 16
		}
	}

	c.initIrregularBaseOps()
}

// initCBOps populates the 0xCB-prefixed table: eight shift/rotate
// families over the eight register codes, then BIT/RES/SET over the
// eight bit positions and eight register codes.
func (c *CPU) initCBOps() {
	shiftFamilies := []func(*CPU, byte) byte{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}
	for f, shift := range shiftFamilies {
		shift := shift
		for code := byte(0); code < 8; code++ {
			code := code
			op := byte(f)*8 + code
			cycles := 8
			if code == 6 {
				cycles = 16
			}
			c.cbOps[op] = func(c *CPU) int {
				c.writeReg8(code, shift(c, c.readReg8(code)))
				return cycles
			}
		}
	}

	for n := uint(0); n < 8; n++ {
		for code := byte(0); code < 8; code++ {
			n, code := n, code
			op := byte(0x40) + byte(n)*8 + code
			cycles := 8
			if code == 6 {
				cycles = 12
			}
			c.cbOps[op] = func(c *CPU) int {
				c.bit(n, c.readReg8(code))
				return cycles
			}
		}
	}

	for n := uint(0); n < 8; n++ {
		for code := byte(0); code < 8; code++ {
			n, code := n, code
			op := byte(0x80) + byte(n)*8 + code
			cycles := 8
			if code == 6 {
				cycles = 16
			}
			c.cbOps[op] = func(c *CPU) int {
				c.writeReg8(code, res(n, c.readReg8(code)))
				return cycles
			}
		}
	}

	for n := uint(0); n < 8; n++ {
		for code := byte(0); code < 8; code++ {
			n, code := n, code
			op := byte(0xC0) + byte(n)*8 + code
			cycles := 8
			if code == 6 {
				cycles = 16
			}
			c.cbOps[op] = func(c *CPU) int {
				c.writeReg8(code, set(n, c.readReg8(code)))
				return cycles
			}
		}
	}
}

// condition identifies one of the four branch conditions NZ,Z,NC,C in
// catalog encoding order.
type condition byte

const (
	condNZ condition = iota
	condZ
	condNC
	condC
)

func (c *CPU) conditionMet(cond condition) bool {
	switch cond {
	case condNZ:
		return !c.flag(FlagZ)
	case condZ:
		return c.flag(FlagZ)
	case condNC:
		return !c.flag(FlagC)
	default:
		return c.flag(FlagC)
	}
}

// pair reads BC/DE/HL/SP selected by the 2-bit register-pair code used
// throughout the unprefixed table's regular families.
func (c *CPU) pair(code byte) uint16 {
	switch code {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setPair(code byte, v uint16) {
	switch code {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// pairAF is the PUSH/POP variant of the register-pair code, where 3
// selects AF instead of SP.
func (c *CPU) pairAF(code byte) uint16 {
	if code == 3 {
		return c.AF()
	}
	return c.pair(code)
}

func (c *CPU) setPairAF(code byte, v uint16) {
	if code == 3 {
		c.SetAF(v)
		return
	}
	c.setPair(code, v)
}
