package cartridge

// Mapper0 is the no-banking mapper: ROM reads pass straight through
// to the image, writes to the ROM window are discarded (no control
// registers to program), and cartridge RAM, when present, is always
// enabled. It is the minimal viable membus.Cartridge-shaped
// collaborator the bus needs; MBC1/3/5 bank switching is deferred
// (spec.md §9, open question (c)) to a richer mapper built on top of
// the same membus.Cartridge interface.
type Mapper0 struct {
	rom []byte
	ram []byte
}

// NewMapper0 wraps rom (and, if header.RAMSizeCode calls for it, a
// backing RAM array) as a membus.Cartridge collaborator.
func NewMapper0(rom []byte, header Header) *Mapper0 {
	ramSize := RAMBytes(header.RAMSizeCode)
	return &Mapper0{
		rom: rom,
		ram: make([]byte, ramSize),
	}
}

func (m *Mapper0) ReadROM(addr uint16) byte {
	if int(addr) < len(m.rom) {
		return m.rom[addr]
	}
	return 0xFF
}

// WriteControl is a no-op: NROM has no bank-select registers.
func (m *Mapper0) WriteControl(addr uint16, value byte) {}

// RAMEnabled reports whether this cartridge has any RAM at all; NROM
// carts with RAM have no enable gate, so presence implies enabled.
func (m *Mapper0) RAMEnabled() bool { return len(m.ram) > 0 }

func (m *Mapper0) ReadRAM(addr uint16) byte {
	if int(addr) < len(m.ram) {
		return m.ram[addr]
	}
	return 0xFF
}

func (m *Mapper0) WriteRAM(addr uint16, value byte) {
	if int(addr) < len(m.ram) {
		m.ram[addr] = value
	}
}
