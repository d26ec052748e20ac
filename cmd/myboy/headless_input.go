//go:build headless

package main

import (
	"github.com/66271541/MyBoyAdvanced/cpu"
	"github.com/66271541/MyBoyAdvanced/joypad"
)

// HeadlessInput never presses a key; it exists so the frame loop runs
// unmodified when built for CI or scripted debugging.
type HeadlessInput struct{}

// NewInput constructs the headless poller. c is accepted only to keep
// the factory signature identical across build tags.
func NewInput(c *cpu.CPU) InputPoller {
	return &HeadlessInput{}
}

func (in *HeadlessInput) Poll(pad *joypad.Pad) {}
