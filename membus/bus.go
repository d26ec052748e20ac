// Package membus implements the uniform byte-addressed bus that
// multiplexes boot ROM, cartridge ROM, work/video RAM, OAM, I/O registers
// and HRAM behind Read/Write (spec.md §4.3). Every address is defined; no
// Read ever fails and every Write completes, matching the Z80Bus
// interface shape the teacher core exposes to its CPU.
package membus

import "github.com/66271541/MyBoyAdvanced/interrupt"

const (
	vramSize = 0x2000
	wramSize = 0x2000
	oamSize  = 0xA0
	hramSize = 0x7F
	ioSize   = 0x80

	dmaLength = 0xA0
)

// Cartridge is the mapper collaborator the bus reads ROM/RAM through.
// spec.md §5 "Resource ownership": the ROM bytes are borrowed from this
// collaborator and must outlive the bus.
type Cartridge interface {
	ReadROM(addr uint16) byte
	WriteControl(addr uint16, value byte)
	RAMEnabled() bool
	ReadRAM(addr uint16) byte
	WriteRAM(addr uint16, value byte)
}

// nullCartridge is plugged in when no cartridge has been attached yet, so
// the bus is always safe to read from construction.
type nullCartridge struct{}

func (nullCartridge) ReadROM(addr uint16) byte         { return 0xFF }
func (nullCartridge) WriteControl(addr uint16, v byte) {}
func (nullCartridge) RAMEnabled() bool                 { return false }
func (nullCartridge) ReadRAM(addr uint16) byte         { return 0xFF }
func (nullCartridge) WriteRAM(addr uint16, v byte)     {}

// ReadFunc and WriteFunc back a single memory-mapped I/O register,
// following the MapIO hook shape sketched in the teacher's main.go
// (sysBus.MapIO(start, end, readHandler, writeHandler)).
type ReadFunc func(addr uint16) byte
type WriteFunc func(addr uint16, value byte)

// Bus is the full LR35902 memory map.
type Bus struct {
	BootROM       [256]byte
	bootROMMapped bool

	cart Cartridge

	vram [vramSize]byte
	wram [wramSize]byte
	oam  [oamSize]byte
	hram [hramSize]byte
	io   [ioSize]byte

	ioRead  [ioSize]ReadFunc
	ioWrite [ioSize]WriteFunc

	Interrupts interrupt.Controller
}

// New constructs a bus with boot ROM mapped in and a null cartridge. Call
// AttachCartridge before the first fetch if the boot ROM is not in use.
func New() *Bus {
	return &Bus{
		cart:          nullCartridge{},
		bootROMMapped: true,
	}
}

// AttachCartridge plugs a real mapper collaborator in, replacing the
// null cartridge used before a ROM is loaded.
func (b *Bus) AttachCartridge(cart Cartridge) {
	b.cart = cart
}

// SkipBootROM unmaps the boot ROM immediately, as when the host starts a
// CPU in its canonical post-boot register state (spec.md §3 Lifecycle).
func (b *Bus) SkipBootROM() {
	b.bootROMMapped = false
}

// MapIO registers read/write hooks for the inclusive I/O register range
// [start, end], both required to be within 0xFF00-0xFF7F. A nil handler
// leaves the plain backing byte in place for that side.
func (b *Bus) MapIO(start, end uint16, read ReadFunc, write WriteFunc) {
	for addr := start; addr <= end; addr++ {
		idx := addr - 0xFF00
		if read != nil {
			b.ioRead[idx] = read
		}
		if write != nil {
			b.ioWrite[idx] = write
		}
		if addr == end {
			break // guard against end == 0xFFFF style overflow
		}
	}
}

// Read returns the byte at addr. It never fails.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr <= 0x00FF && b.bootROMMapped:
		return b.BootROM[addr]
	case addr <= 0x7FFF:
		return b.cart.ReadROM(addr)
	case addr >= 0x8000 && addr <= 0x9FFF:
		return b.vram[addr-0x8000]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !b.cart.RAMEnabled() {
			return 0xFF
		}
		return b.cart.ReadRAM(addr - 0xA000)
	case addr >= 0xC000 && addr <= 0xDFFF:
		return b.wram[addr-0xC000]
	case addr >= 0xE000 && addr <= 0xFDFF:
		return b.wram[addr-0x2000-0xC000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		return b.oam[addr-0xFE00]
	case addr >= 0xFEA0 && addr <= 0xFEFF:
		return 0xFF
	case addr == 0xFF0F:
		return b.Interrupts.IF()
	case addr == 0xFFFF:
		return b.Interrupts.IE()
	case addr >= 0xFF00 && addr <= 0xFF7F:
		idx := addr - 0xFF00
		if fn := b.ioRead[idx]; fn != nil {
			return fn(addr)
		}
		return b.io[idx]
	case addr >= 0xFF80 && addr <= 0xFFFE:
		return b.hram[addr-0xFF80]
	default:
		return 0xFF
	}
}

// Write stores value at addr. It never fails.
func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr <= 0x00FF && b.bootROMMapped:
		// Real hardware ignores writes to the boot ROM overlay outright;
		// it does not forward them to the mapper.
		return
	case addr <= 0x7FFF:
		b.cart.WriteControl(addr, value)
	case addr >= 0x8000 && addr <= 0x9FFF:
		b.vram[addr-0x8000] = value
	case addr >= 0xA000 && addr <= 0xBFFF:
		if b.cart.RAMEnabled() {
			b.cart.WriteRAM(addr-0xA000, value)
		}
	case addr >= 0xC000 && addr <= 0xDFFF:
		b.wram[addr-0xC000] = value
	case addr >= 0xE000 && addr <= 0xFDFF:
		b.wram[addr-0x2000-0xC000] = value
	case addr >= 0xFE00 && addr <= 0xFE9F:
		b.oam[addr-0xFE00] = value
	case addr >= 0xFEA0 && addr <= 0xFEFF:
		// Prohibited region: writes ignored.
	case addr == 0xFF46:
		b.triggerDMA(value)
	case addr == 0xFF50:
		// Any write, including zero, unmaps the overlay permanently.
		b.bootROMMapped = false
	case addr == 0xFF0F:
		b.Interrupts.SetIF(value)
	case addr == 0xFFFF:
		b.Interrupts.SetIE(value)
	case addr >= 0xFF00 && addr <= 0xFF7F:
		idx := addr - 0xFF00
		if fn := b.ioWrite[idx]; fn != nil {
			fn(addr, value)
			return
		}
		b.io[idx] = value
	case addr >= 0xFF80 && addr <= 0xFFFE:
		b.hram[addr-0xFF80] = value
	}
}

// triggerDMA performs the 160-byte copy into OAM specified by spec.md
// §4.3. It is modeled as atomic at this abstraction level: the whole
// copy happens within this call, with no bus activity interleaved.
func (b *Bus) triggerDMA(value byte) {
	src := uint16(value) << 8
	for i := uint16(0); i < dmaLength; i++ {
		b.oam[i] = b.Read(src + i)
	}
}

// BootROMMapped reports whether the boot ROM overlay is still active.
func (b *Bus) BootROMMapped() bool {
	return b.bootROMMapped
}
