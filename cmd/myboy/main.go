// Command myboy is the demo host for the LR35902 core: it loads a ROM,
// wires the bus to a minimal cartridge mapper, joypad latch and PPU
// reference renderer, and drives the frame loop spec.md §2 describes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/66271541/MyBoyAdvanced/audio"
	"github.com/66271541/MyBoyAdvanced/cartridge"
	"github.com/66271541/MyBoyAdvanced/cpu"
	"github.com/66271541/MyBoyAdvanced/display"
	"github.com/66271541/MyBoyAdvanced/joypad"
	"github.com/66271541/MyBoyAdvanced/membus"
	"github.com/66271541/MyBoyAdvanced/ppu"
)

const (
	frameCycles = 70224
	clockHz     = 4194304
)

func main() {
	bootROMPath := flag.String("boot", "", "optional boot ROM image (256 bytes); without it execution starts in post-boot state")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: myboy [options] rom.gb\n\nRuns a Game Boy ROM image against the LR35902 core.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	romPath := flag.Arg(0)
	rom, err := os.ReadFile(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", romPath, err)
		os.Exit(1)
	}

	header, err := cartridge.ReadHeader(rom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading header: %v\n", err)
		os.Exit(1)
	}
	if !cartridge.VerifyHeaderChecksum(rom) {
		fmt.Fprintf(os.Stderr, "warning: %s fails the header checksum, continuing anyway\n", romPath)
	}

	bus := membus.New()
	bus.AttachCartridge(cartridge.NewMapper0(rom, header))

	var pad joypad.Pad
	bus.MapIO(0xFF00, 0xFF00,
		func(addr uint16) byte { return pad.Read() },
		func(addr uint16, value byte) { pad.Write(value) })

	c := cpu.New(bus)

	if *bootROMPath != "" {
		boot, err := os.ReadFile(*bootROMPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading boot ROM: %v\n", err)
			os.Exit(1)
		}
		if len(boot) != len(bus.BootROM) {
			fmt.Fprintf(os.Stderr, "error: boot ROM must be exactly %d bytes, got %d\n", len(bus.BootROM), len(boot))
			os.Exit(1)
		}
		copy(bus.BootROM[:], boot)
	} else {
		bus.SkipBootROM()
		c.SetPostBootState()
	}

	video := display.NewSink()
	if err := video.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "error starting display: %v\n", err)
		os.Exit(1)
	}
	defer video.Stop()

	sound, err := audio.NewSink()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error starting audio: %v\n", err)
		os.Exit(1)
	}
	if err := sound.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "error starting audio: %v\n", err)
		os.Exit(1)
	}
	defer sound.Stop()

	input := NewInput(c)

	reportInteractive()
	fmt.Printf("running %q (%s)\n", header.Title, romPath)

	for {
		cycles := 0
		for cycles < frameCycles {
			cycles += c.Step()
			if c.Fault != nil {
				fmt.Fprintf(os.Stderr, "cpu fault at 0x%04X: %v\n", c.PC, c.Fault)
				os.Exit(1)
			}
		}

		video.Present(ppu.Render(bus))
		input.Poll(&pad)
		sound.Advance(cycles * audio.SampleRate / clockHz)

		if err := video.WaitForVSync(); err != nil {
			return
		}
	}
}
