// Package ppu is the demo host's minimal, non-cycle-accurate frame
// renderer. The pixel-processing unit is an external collaborator the
// core only defines an interface for (spec.md §1); this is the
// minimal reference implementation the demo host wires in so it runs
// end to end, not a faithful pixel pipeline: it draws the background
// tile map once per frame with no scanline timing, no window layer,
// and no sprites.
package ppu

import "github.com/66271541/MyBoyAdvanced/display"

const (
	lcdcAddr = 0xFF40
	scyAddr  = 0xFF42
	scxAddr  = 0xFF43
	bgpAddr  = 0xFF47
)

// Bus is the minimal read surface Render needs; membus.Bus satisfies
// it without this package importing membus back.
type Bus interface {
	Read(addr uint16) byte
}

// Render draws the background layer for one frame: LCDC's tile-data
// addressing mode and tile-map selection, SCX/SCY scroll, and the BGP
// shade palette are honored; window and sprites are not drawn.
func Render(bus Bus) [display.Width * display.Height]byte {
	var frame [display.Width * display.Height]byte

	lcdc := bus.Read(lcdcAddr)
	if lcdc&0x80 == 0 {
		return frame
	}

	scy := bus.Read(scyAddr)
	scx := bus.Read(scxAddr)
	bgp := bus.Read(bgpAddr)

	tileMapBase := uint16(0x9800)
	if lcdc&0x08 != 0 {
		tileMapBase = 0x9C00
	}
	signedAddressing := lcdc&0x10 == 0

	for y := 0; y < display.Height; y++ {
		bgY := byte(y) + scy
		tileRow := uint16(bgY/8) * 32
		fineY := uint16(bgY % 8)

		for x := 0; x < display.Width; x++ {
			bgX := byte(x) + scx
			tileCol := uint16(bgX / 8)
			fineX := bgX % 8

			tileIndex := bus.Read(tileMapBase + tileRow + tileCol)
			var tileAddr uint16
			if signedAddressing {
				tileAddr = uint16(0x9000 + int32(int8(tileIndex))*16)
			} else {
				tileAddr = 0x8000 + uint16(tileIndex)*16
			}
			tileAddr += fineY * 2

			lo := bus.Read(tileAddr)
			hi := bus.Read(tileAddr + 1)
			bit := 7 - fineX
			colorIndex := ((hi>>bit)&1)<<1 | (lo>>bit)&1
			shade := (bgp >> (colorIndex * 2)) & 0x03

			frame[y*display.Width+x] = shade
		}
	}
	return frame
}
