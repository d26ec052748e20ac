//go:build !headless

package main

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/66271541/MyBoyAdvanced/cpu"
	"github.com/66271541/MyBoyAdvanced/joypad"
)

// EbitenInput reads ebiten's key state each frame and, on the debug
// hotkey, copies a register dump to the system clipboard the same way
// EbitenOutput lazily initializes clipboard support on first use.
type EbitenInput struct {
	cpu *cpu.CPU

	clipboardOnce sync.Once
	clipboardOK   bool
}

// NewInput constructs the real, keyboard-driven poller.
func NewInput(c *cpu.CPU) InputPoller {
	return &EbitenInput{cpu: c}
}

func (in *EbitenInput) Poll(pad *joypad.Pad) {
	pad.SetButton(joypad.ButtonA, ebiten.IsKeyPressed(ebiten.KeyZ))
	pad.SetButton(joypad.ButtonB, ebiten.IsKeyPressed(ebiten.KeyX))
	pad.SetButton(joypad.ButtonSelect, ebiten.IsKeyPressed(ebiten.KeyBackslash))
	pad.SetButton(joypad.ButtonStart, ebiten.IsKeyPressed(ebiten.KeyEnter))
	pad.SetDirection(joypad.DirUp, ebiten.IsKeyPressed(ebiten.KeyArrowUp))
	pad.SetDirection(joypad.DirDown, ebiten.IsKeyPressed(ebiten.KeyArrowDown))
	pad.SetDirection(joypad.DirLeft, ebiten.IsKeyPressed(ebiten.KeyArrowLeft))
	pad.SetDirection(joypad.DirRight, ebiten.IsKeyPressed(ebiten.KeyArrowRight))

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		in.dumpRegisters()
	}
}

func (in *EbitenInput) dumpRegisters() {
	in.clipboardOnce.Do(func() {
		in.clipboardOK = clipboard.Init() == nil
	})
	if !in.clipboardOK {
		return
	}
	dump := fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X",
		in.cpu.AF(), in.cpu.BC(), in.cpu.DE(), in.cpu.HL(), in.cpu.SP, in.cpu.PC)
	clipboard.Write(clipboard.FmtText, []byte(dump))
}
