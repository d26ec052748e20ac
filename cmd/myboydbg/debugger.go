// Command myboydbg is a Lua-scriptable register/memory inspector in
// the spirit of debug_cpu_z80.go's DebugZ80 adapter: it exposes the
// same register-get/set, breakpoint and memory-read/write surface,
// but as Lua-callable closures instead of a bespoke debugger-protocol
// method set. Breakpoints are plain PC addresses; any further stop
// condition is written in the script itself around cpu.step.
package main

import (
	"strings"

	"github.com/66271541/MyBoyAdvanced/cpu"
	"github.com/66271541/MyBoyAdvanced/membus"
)

// Debugger adapts a running core to the register/breakpoint/memory
// surface the Lua bindings expose. It has no concurrency of its own:
// myboydbg runs one script against one core on one goroutine, unlike
// DebugZ80's trapLoop, which exists to let a GUI keep running while a
// breakpoint watch proceeds in the background.
type Debugger struct {
	cpu         *cpu.CPU
	bus         *membus.Bus
	breakpoints map[uint16]bool
}

func NewDebugger(c *cpu.CPU, bus *membus.Bus) *Debugger {
	return &Debugger{cpu: c, bus: bus, breakpoints: make(map[uint16]bool)}
}

// GetRegister returns a named register's value. Register pairs (BC,
// DE, HL, AF) are included alongside the eight single-byte registers
// and SP/PC, since Lua scripts naturally want to read/write a pair at
// once.
func (d *Debugger) GetRegister(name string) (uint64, bool) {
	c := d.cpu
	switch strings.ToUpper(name) {
	case "A":
		return uint64(c.A), true
	case "F":
		return uint64(c.F), true
	case "B":
		return uint64(c.B), true
	case "C":
		return uint64(c.C), true
	case "D":
		return uint64(c.D), true
	case "E":
		return uint64(c.E), true
	case "H":
		return uint64(c.H), true
	case "L":
		return uint64(c.L), true
	case "AF":
		return uint64(c.AF()), true
	case "BC":
		return uint64(c.BC()), true
	case "DE":
		return uint64(c.DE()), true
	case "HL":
		return uint64(c.HL()), true
	case "SP":
		return uint64(c.SP), true
	case "PC":
		return uint64(c.PC), true
	}
	return 0, false
}

func (d *Debugger) SetRegister(name string, value uint64) bool {
	c := d.cpu
	switch strings.ToUpper(name) {
	case "A":
		c.A = byte(value)
	case "F":
		c.SetAF((c.AF() & 0xFF00) | uint16(byte(value)))
	case "B":
		c.B = byte(value)
	case "C":
		c.C = byte(value)
	case "D":
		c.D = byte(value)
	case "E":
		c.E = byte(value)
	case "H":
		c.H = byte(value)
	case "L":
		c.L = byte(value)
	case "AF":
		c.SetAF(uint16(value))
	case "BC":
		c.SetBC(uint16(value))
	case "DE":
		c.SetDE(uint16(value))
	case "HL":
		c.SetHL(uint16(value))
	case "SP":
		c.SP = uint16(value)
	case "PC":
		c.PC = uint16(value)
	default:
		return false
	}
	return true
}

func (d *Debugger) ReadMemory(addr uint16, size int) []byte {
	out := make([]byte, size)
	for i := range out {
		out[i] = d.bus.Read(addr + uint16(i))
	}
	return out
}

func (d *Debugger) WriteMemory(addr uint16, data []byte) {
	for i, b := range data {
		d.bus.Write(addr+uint16(i), b)
	}
}

func (d *Debugger) SetBreakpoint(addr uint16) { d.breakpoints[addr] = true }
func (d *Debugger) ClearBreakpoint(addr uint16) {
	delete(d.breakpoints, addr)
}
func (d *Debugger) HasBreakpoint(addr uint16) bool { return d.breakpoints[addr] }
func (d *Debugger) ListBreakpoints() []uint16 {
	out := make([]uint16, 0, len(d.breakpoints))
	for addr := range d.breakpoints {
		out = append(out, addr)
	}
	return out
}

// Step executes exactly one core Step and returns the cycles spent.
func (d *Debugger) Step() int { return d.cpu.Step() }

// Run steps the core until a breakpoint is hit, a fault is raised, or
// max steps have run, whichever comes first, mirroring DebugZ80's
// trapLoop breakpoint scan without the background goroutine.
func (d *Debugger) Run(maxSteps int) (stoppedAt uint16, hitBreakpoint bool, steps int) {
	for steps = 0; steps < maxSteps; steps++ {
		if d.breakpoints[d.cpu.PC] {
			return d.cpu.PC, true, steps
		}
		if d.cpu.Fault != nil {
			return d.cpu.PC, false, steps
		}
		d.cpu.Step()
	}
	return d.cpu.PC, false, steps
}
