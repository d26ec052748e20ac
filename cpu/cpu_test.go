package cpu

import (
	"testing"

	"github.com/66271541/MyBoyAdvanced/cartridge"
	"github.com/66271541/MyBoyAdvanced/interrupt"
	"github.com/66271541/MyBoyAdvanced/membus"
)

func newTestCPU() *CPU {
	bus := membus.New()
	bus.SkipBootROM()
	return New(bus)
}

func TestPostBootNOP(t *testing.T) {
	c := newTestCPU()
	c.SetPostBootState()
	// Bus writes to the ROM window never reach ROM, so the NOP at 0x0100
	// comes from a zero-filled cartridge image.
	c.Bus.AttachCartridge(cartridge.NewMapper0(make([]byte, 0x8000), cartridge.Header{}))

	cycles := c.Step()

	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4", cycles)
	}
	if c.PC != 0x0101 {
		t.Fatalf("PC = 0x%04X, want 0x0101", c.PC)
	}
	if c.AF() != 0x01B0 || c.BC() != 0x0013 || c.DE() != 0x00D8 || c.HL() != 0x014D || c.SP != 0xFFFE {
		t.Fatalf("register state changed by NOP")
	}
}

func TestADDFlagCorners(t *testing.T) {
	c := newTestCPU()
	c.PC = 0xC000
	c.A = 0x3A
	c.B = 0xC6
	c.F = 0x00
	c.Bus.Write(0xC000, 0x80) // ADD A,B

	cycles := c.Step()

	if c.A != 0x00 {
		t.Fatalf("A = 0x%02X, want 0x00", c.A)
	}
	if c.F != 0xB0 {
		t.Fatalf("F = 0x%02X, want 0xB0", c.F)
	}
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4", cycles)
	}
}

func TestDAAAfterAdd(t *testing.T) {
	c := newTestCPU()
	c.PC = 0xC000
	c.A = 0x45
	c.Bus.Write(0xC000, 0xC6) // ADD A,0x38
	c.Bus.Write(0xC001, 0x38)
	c.Bus.Write(0xC002, 0x27) // DAA

	c.Step()
	if c.A != 0x7D || c.flag(FlagN) {
		t.Fatalf("after ADD: A=0x%02X N=%v", c.A, c.flag(FlagN))
	}

	c.Step()
	if c.A != 0x83 {
		t.Fatalf("after DAA: A = 0x%02X, want 0x83", c.A)
	}
	if c.flag(FlagZ) || c.flag(FlagH) || c.flag(FlagC) {
		t.Fatalf("after DAA flags: Z=%v H=%v C=%v, want all clear", c.flag(FlagZ), c.flag(FlagH), c.flag(FlagC))
	}
}

func TestConditionalCallTiming(t *testing.T) {
	c := newTestCPU()
	c.PC = 0xC000
	c.SP = 0xFFFE
	c.F = 0x00
	c.Bus.Write(0xC000, 0xCD) // CALL 0x1234
	c.Bus.Write(0xC001, 0x34)
	c.Bus.Write(0xC002, 0x12)

	cycles := c.Step()

	if c.PC != 0x1234 {
		t.Fatalf("PC = 0x%04X, want 0x1234", c.PC)
	}
	if c.SP != 0xFFFC {
		t.Fatalf("SP = 0x%04X, want 0xFFFC", c.SP)
	}
	if got := c.Bus.Read(0xFFFD); got != 0xC0 {
		t.Fatalf("mem[0xFFFD] = 0x%02X, want 0xC0", got)
	}
	if got := c.Bus.Read(0xFFFC); got != 0x03 {
		t.Fatalf("mem[0xFFFC] = 0x%02X, want 0x03", got)
	}
	if cycles != 24 {
		t.Fatalf("cycles = %d, want 24", cycles)
	}
}

func TestEIDelayCancelledByDI(t *testing.T) {
	c := newTestCPU()
	c.PC = 0xC000
	c.Bus.Write(0xC000, 0xFB) // EI
	c.Bus.Write(0xC001, 0xF3) // DI
	c.Bus.Write(0xC002, 0x76) // HALT
	c.Bus.Interrupts.SetIE(0x01)
	c.Bus.Interrupts.SetIF(0x01)

	c.Step() // EI
	if c.ime {
		t.Fatalf("ime should still be false right after EI")
	}

	c.Step() // DI
	if c.ime {
		t.Fatalf("ime must be false once DI retires, EI's delay must not win the race")
	}

	c.Step() // HALT
	if c.PC == interrupt.Vector(interrupt.VBlank) {
		t.Fatalf("no interrupt vector should have been taken")
	}
}

func TestEchoRAMAliasingViaCPULoads(t *testing.T) {
	c := newTestCPU()
	c.PC = 0xC000
	c.A = 0xAB
	c.SetHL(0xC123)
	c.Bus.Write(0xC000, 0x77) // LD (HL),A

	c.Step()

	if got := c.Bus.Read(0xE123); got != 0xAB {
		t.Fatalf("echo alias read = 0x%02X, want 0xAB", got)
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.SP = 0xFFFE
	c.SetBC(0x1234)

	c.pushWord(c.BC())
	c.SetBC(0)
	c.SetBC(c.popWord())

	if c.BC() != 0x1234 {
		t.Fatalf("BC = 0x%04X, want 0x1234", c.BC())
	}
	if c.SP != 0xFFFE {
		t.Fatalf("SP = 0x%04X, want 0xFFFE", c.SP)
	}
}

func TestPopAFMasksLowNibble(t *testing.T) {
	c := newTestCPU()
	c.SP = 0xFFFE
	c.pushWord(0x12FF)

	c.SetAF(c.popWord())

	if c.F != 0xF0 {
		t.Fatalf("F = 0x%02X, want 0xF0 (low nibble masked)", c.F)
	}
}

func TestRLCRRCRoundTrip(t *testing.T) {
	c := newTestCPU()
	original := byte(0xB4)
	rotated := c.rlc(original)
	restored := c.rrc(rotated)
	if restored != original {
		t.Fatalf("RLC;RRC round trip = 0x%02X, want 0x%02X", restored, original)
	}
}

func TestSwapRoundTrip(t *testing.T) {
	c := newTestCPU()
	v := c.swap(c.swap(0x4F))
	if v != 0x4F {
		t.Fatalf("SWAP;SWAP = 0x%02X, want 0x4F", v)
	}
}

func TestCPLRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.A = 0x5A
	c.cpl()
	c.cpl()
	if c.A != 0x5A {
		t.Fatalf("CPL;CPL = 0x%02X, want 0x5A", c.A)
	}
	if !c.flag(FlagN) || !c.flag(FlagH) {
		t.Fatalf("N and H should remain set after CPL;CPL")
	}
}

func TestIncDecBoundaryWrap(t *testing.T) {
	c := newTestCPU()
	res := c.inc8(0xFF)
	if res != 0x00 || !c.flag(FlagZ) || !c.flag(FlagH) {
		t.Fatalf("INC 0xFF = 0x%02X Z=%v H=%v", res, c.flag(FlagZ), c.flag(FlagH))
	}

	res = c.dec8(0x00)
	if res != 0xFF || c.flag(FlagZ) || !c.flag(FlagN) || !c.flag(FlagH) {
		t.Fatalf("DEC 0x00 = 0x%02X Z=%v N=%v H=%v", res, c.flag(FlagZ), c.flag(FlagN), c.flag(FlagH))
	}
}

func TestAddHLHLOverflow(t *testing.T) {
	c := newTestCPU()
	c.SetHL(0x8000)
	c.addHL16(0x8000)
	if !c.flag(FlagC) || c.flag(FlagH) {
		t.Fatalf("ADD HL,HL at 0x8000: C=%v H=%v, want C set H clear", c.flag(FlagC), c.flag(FlagH))
	}
}

func TestJRNegativeOffsetLandsOnSelf(t *testing.T) {
	c := newTestCPU()
	c.PC = 0xC100
	c.Bus.Write(0xC100, 0x18) // JR
	c.Bus.Write(0xC101, 0xFE) // -2

	c.Step()

	if c.PC != 0xC100 {
		t.Fatalf("PC = 0x%04X, want 0xC100 (infinite loop)", c.PC)
	}
}

func TestLDHUnmapsBootROM(t *testing.T) {
	bus := membus.New()
	c := New(bus)
	c.A = 0x01
	c.PC = 0xC000
	c.Bus.Write(0xC000, 0xE0) // LDH (0x50),A
	c.Bus.Write(0xC001, 0x50)

	c.Step()

	if bus.BootROMMapped() {
		t.Fatalf("boot rom should have been unmapped by LDH (0x50),A")
	}
}

func TestWriteToFMasksLowNibble(t *testing.T) {
	c := newTestCPU()
	c.setF(0xFF)
	if c.F != 0xF0 {
		t.Fatalf("F = 0x%02X, want 0xF0", c.F)
	}
}

func TestIllegalOpcodeFreezesStep(t *testing.T) {
	c := newTestCPU()
	c.PC = 0xC000
	c.Bus.Write(0xC000, 0xD3) // illegal

	first := c.Step()
	if first != 4 || c.Fault == nil {
		t.Fatalf("expected fault set and 4 cycles consumed, got %d, fault=%v", first, c.Fault)
	}

	second := c.Step()
	if second != 0 {
		t.Fatalf("step after fault should freeze and return 0, got %d", second)
	}
}

func TestInterruptServicing(t *testing.T) {
	c := newTestCPU()
	c.PC = 0xC000
	c.SP = 0xFFFE
	c.ime = true
	c.Bus.Interrupts.SetIE(0x01)
	c.Bus.Interrupts.SetIF(0x01)

	cycles := c.Step()

	if cycles != 20 {
		t.Fatalf("cycles = %d, want 20", cycles)
	}
	if c.PC != interrupt.Vector(interrupt.VBlank) {
		t.Fatalf("PC = 0x%04X, want vblank vector", c.PC)
	}
	if c.ime {
		t.Fatalf("ime should be cleared once the handler is dispatched")
	}
	if c.Bus.Interrupts.IF()&0x01 != 0 {
		t.Fatalf("IF bit should be cleared once serviced")
	}
	if c.Bus.Read(0xFFFD) != 0xC0 || c.Bus.Read(0xFFFC) != 0x00 {
		t.Fatalf("return address not pushed correctly")
	}
}

func TestHaltWakesOnPendingInterruptWithoutServicing(t *testing.T) {
	c := newTestCPU()
	c.PC = 0xC000
	c.Halted = true
	c.ime = false
	c.Bus.Interrupts.SetIE(0x01)
	c.Bus.Interrupts.SetIF(0x01)

	cycles := c.Step()
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4", cycles)
	}
	if c.Halted {
		t.Fatalf("halted should stay false once woken")
	}
	c.Bus.Interrupts.SetIF(0x01)
	c.Halted = true
	c.Step()
	if c.Halted {
		t.Fatalf("pending+enabled interrupt should wake CPU out of halt")
	}
}
