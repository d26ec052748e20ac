// Command myboydbg is a headless, Lua-scriptable console for the
// LR35902 core: it loads a ROM onto the bus with no display or audio
// sink attached and hands a running Debugger to either a script file
// or an interactive stdin loop.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/66271541/MyBoyAdvanced/cartridge"
	"github.com/66271541/MyBoyAdvanced/cpu"
	"github.com/66271541/MyBoyAdvanced/joypad"
	"github.com/66271541/MyBoyAdvanced/membus"
)

func main() {
	scriptPath := flag.String("script", "", "Lua script to run instead of the interactive prompt")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: myboydbg [options] rom.gb\n\nLua-scriptable register and memory debugger for the LR35902 core.\n\nOptions:\n")
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

	bus := membus.New()
	bus.AttachCartridge(cartridge.NewMapper0(rom, header))

	var pad joypad.Pad
	bus.MapIO(0xFF00, 0xFF00,
		func(addr uint16) byte { return pad.Read() },
		func(addr uint16, value byte) { pad.Write(value) })

	bus.SkipBootROM()
	c := cpu.New(bus)
	c.SetPostBootState()

	d := NewDebugger(c, bus)

	L := lua.NewState()
	defer L.Close()
	bindDebugger(L, d)

	if *scriptPath != "" {
		if err := L.DoFile(*scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "script error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("myboydbg: %q loaded, PC=0x%04X. Enter Lua statements, or an empty line to quit.\n", header.Title, c.PC)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "" {
			return
		}
		if err := L.DoString(line); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}
}
