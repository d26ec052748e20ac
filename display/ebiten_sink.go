//go:build !headless

package display

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// shadePalette maps the four native shade indices to the classic
// green-tinted Game Boy LCD colors, as RGBA quads.
var shadePalette = [4][4]byte{
	{0x9B, 0xBC, 0x0F, 0xFF},
	{0x8B, 0xAC, 0x0F, 0xFF},
	{0x30, 0x62, 0x30, 0xFF},
	{0x0F, 0x38, 0x0F, 0xFF},
}

// EbitenSink runs the LCD in its own window via ebiten.RunGame on a
// background goroutine, the same shape EbitenOutput uses: a mutex
// guarded RGBA framebuffer that Present refills and Draw blits once
// per ebiten tick.
type EbitenSink struct {
	running     bool
	window      *ebiten.Image
	scale       int
	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  uint64
	vsyncChan   chan struct{}
}

// NewSink constructs the platform's real Sink. Callers that don't need
// EbitenSink's window-lifecycle methods should use this instead of the
// concrete type, so the same call site compiles under both build tags.
func NewSink() Sink { return NewEbitenSink() }

// NewEbitenSink constructs a sink with the default 3x integer scale.
func NewEbitenSink() *EbitenSink {
	return &EbitenSink{
		scale:       3,
		frameBuffer: make([]byte, Width*Height*4),
		vsyncChan:   make(chan struct{}, 1),
	}
}

// Start opens the window and blocks until the first Draw call, so
// callers know the window is live before driving frames into it.
func (s *EbitenSink) Start() error {
	if s.running {
		return nil
	}
	s.running = true
	ebiten.SetWindowSize(Width*s.scale, Height*s.scale)
	ebiten.SetWindowTitle("myboy")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		if err := ebiten.RunGame(s); err != nil {
			fmt.Printf("display: ebiten exited: %v\n", err)
		}
	}()

	<-s.vsyncChan
	return nil
}

func (s *EbitenSink) Stop() error {
	s.running = false
	return nil
}

func (s *EbitenSink) IsStarted() bool { return s.running }

// Present converts one native frame to RGBA and copies it into the
// framebuffer Draw reads from; it never blocks on the render loop.
func (s *EbitenSink) Present(frame [Width * Height]byte) {
	s.bufferMutex.Lock()
	for i, shade := range frame {
		rgba := shadePalette[shade&0x03]
		copy(s.frameBuffer[i*4:i*4+4], rgba[:])
	}
	s.bufferMutex.Unlock()
}

func (s *EbitenSink) GetFrameCount() uint64 { return s.frameCount }

// WaitForVSync blocks until Draw has run again, pacing the caller to
// the display's own refresh rate the same way EbitenOutput does.
func (s *EbitenSink) WaitForVSync() error {
	<-s.vsyncChan
	return nil
}

// Update satisfies ebiten.Game; the LCD has no input of its own to
// poll here, joypad state flows in from the host's own key handling.
func (s *EbitenSink) Update() error {
	if ebiten.IsWindowBeingClosed() || !s.running {
		return ebiten.Termination
	}
	return nil
}

func (s *EbitenSink) Draw(screen *ebiten.Image) {
	if s.window == nil {
		s.window = ebiten.NewImage(Width, Height)
	}

	s.bufferMutex.RLock()
	s.window.WritePixels(s.frameBuffer)
	s.bufferMutex.RUnlock()
	screen.DrawImage(s.window, nil)

	s.frameCount++
	select {
	case s.vsyncChan <- struct{}{}:
	default:
	}
}

func (s *EbitenSink) Layout(_, _ int) (int, int) {
	return Width, Height
}
