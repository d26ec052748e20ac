// Package display defines the video sink the core presents completed
// frames to, and its two implementations: a real ebiten-backed window
// and a no-op headless stand-in for tests and CI.
package display

// Width and Height are the fixed LR35902 LCD dimensions (spec.md §6).
const (
	Width  = 160
	Height = 144
)

// Sink receives one completed frame per PPU frame boundary. Frame
// bytes are shade indices 0-3 (the core's native 2-bit-per-pixel
// format); a Sink is responsible for any palette mapping it wants to
// apply when presenting.
type Sink interface {
	Start() error
	Stop() error
	Present(frame [Width * Height]byte)
	// WaitForVSync blocks until the sink is ready for the next frame.
	// The headless sink never blocks.
	WaitForVSync() error
}
