//go:build headless

package audio

import "testing"

func TestHeadlessSinkLifecycle(t *testing.T) {
	s, err := NewHeadlessSink()
	if err != nil {
		t.Fatalf("NewHeadlessSink: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Advance(SampleRate / 60)
	if !s.started {
		t.Fatal("expected started after Start")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if s.started {
		t.Fatal("expected stopped after Stop")
	}
}
