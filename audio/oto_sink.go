//go:build !headless

package audio

import (
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// OtoSink opens a real ebitengine/oto/v3 stream and feeds it silence.
// The mutex/atomic split mirrors OtoPlayer: setup and control
// operations take mutex and update the atomic running flag; the Read
// callback oto drives from its own goroutine touches neither.
type OtoSink struct {
	ctx     *oto.Context
	player  *oto.Player
	running atomic.Bool
	mutex   sync.Mutex
}

// NewSink constructs the platform's real Sink.
func NewSink() (Sink, error) { return NewOtoSink() }

// NewOtoSink opens the context and pre-creates the player; it does
// not start playback until Start is called.
func NewOtoSink() (*OtoSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	s := &OtoSink{ctx: ctx}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

// Read implements io.Reader for oto.Player: it always hands back
// silence, since this core has no APU to sample from.
func (s *OtoSink) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func (s *OtoSink) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.running.Load() {
		s.player.Play()
		s.running.Store(true)
	}
	return nil
}

func (s *OtoSink) Stop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.running.Load() {
		s.player.Pause()
		s.running.Store(false)
	}
	return nil
}

// Advance is a no-op: oto pulls silence from Read on its own cadence
// once the stream is playing.
func (s *OtoSink) Advance(samples int) {}
