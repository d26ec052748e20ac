//go:build headless

package display

import "sync/atomic"

// HeadlessSink discards every frame; it exists so tests and CI can
// drive the core without a real window.
type HeadlessSink struct {
	started    bool
	frameCount uint64
}

// NewSink constructs the headless Sink, matching the real backend's
// factory name so call sites don't need a build tag of their own.
func NewSink() Sink { return NewHeadlessSink() }

func NewHeadlessSink() *HeadlessSink { return &HeadlessSink{} }

func (h *HeadlessSink) Start() error { h.started = true; return nil }
func (h *HeadlessSink) Stop() error  { h.started = false; return nil }
func (h *HeadlessSink) IsStarted() bool { return h.started }

func (h *HeadlessSink) Present(frame [Width * Height]byte) {
	atomic.AddUint64(&h.frameCount, 1)
}

func (h *HeadlessSink) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessSink) WaitForVSync() error { return nil }
