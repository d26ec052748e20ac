package main

import "github.com/66271541/MyBoyAdvanced/joypad"

// InputPoller reports the host's current key state into pad once per
// frame. The real backend reads ebiten's key state; the headless
// backend never presses anything.
type InputPoller interface {
	Poll(pad *joypad.Pad)
}
