package audio

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var ErrInstrumentClosed = errors.New("audio: instrument is closed")

// Instrument renders scheduled onsets. Implementations must be safe for
// concurrent use: sessions replay plans from request goroutines.
type Instrument interface {
	// Schedule queues every event of the plan for playback.
	Schedule(plan Plan) error
	Close() error
}

// Loader acquires an instrument backend. Acquisition may take a while
// (sampled instruments fetch their sample set) and is allowed to fail.
type Loader interface {
	Load(ctx context.Context) (Instrument, error)
}

// Synth is the built-in oscillator instrument. It needs no acquisition and
// never fails to schedule, which makes it the fallback when a richer
// backend cannot be loaded.
type Synth struct {
	mu     sync.Mutex
	closed bool

	scheduled []Event
}

func NewSynth() *Synth {
	return &Synth{}
}

func (s *Synth) Schedule(plan Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrInstrumentClosed
	}
	s.scheduled = append(s.scheduled, plan.Events...)
	return nil
}

// Pending drains the queued events in onset order.
func (s *Synth) Pending() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.scheduled
	s.scheduled = nil
	return events
}

func (s *Synth) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.scheduled = nil
	return nil
}
