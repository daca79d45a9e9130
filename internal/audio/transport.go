package audio

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultLoadTimeout = 5 * time.Second

var ErrTransportClosed = errors.New("audio: transport is closed")

// Transport binds plans to an instrument backend. The backend is acquired
// lazily on first use: a configured Loader gets one bounded attempt, and a
// failed or absent loader degrades to the built-in Synth. Degradation is
// non-fatal; only a closed transport refuses to play.
type Transport struct {
	mu          sync.Mutex
	loader      Loader
	loadTimeout time.Duration
	inst        Instrument
	closed      bool
}

type TransportOption func(*Transport)

func WithLoader(loader Loader) TransportOption {
	return func(t *Transport) { t.loader = loader }
}

func WithLoadTimeout(d time.Duration) TransportOption {
	return func(t *Transport) { t.loadTimeout = d }
}

func NewTransport(opts ...TransportOption) *Transport {
	t := &Transport{loadTimeout: defaultLoadTimeout}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ready ensures an instrument is available, acquiring one if needed.
func (t *Transport) Ready(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.instrumentLocked(ctx)
	return err
}

// Play schedules the plan on the acquired instrument.
func (t *Transport) Play(ctx context.Context, plan Plan) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	inst, err := t.instrumentLocked(ctx)
	if err != nil {
		return err
	}
	return inst.Schedule(plan)
}

// Close releases the instrument. Further use fails with ErrTransportClosed.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	if t.inst == nil {
		return nil
	}
	inst := t.inst
	t.inst = nil
	return inst.Close()
}

func (t *Transport) instrumentLocked(ctx context.Context) (Instrument, error) {
	if t.closed {
		return nil, ErrTransportClosed
	}
	if t.inst != nil {
		return t.inst, nil
	}

	if t.loader != nil {
		loadCtx, cancel := context.WithTimeout(ctx, t.loadTimeout)
		defer cancel()

		inst, err := t.loader.Load(loadCtx)
		if err == nil {
			t.inst = inst
			return t.inst, nil
		}
		log.Warn().
			Err(err).
			Str("evt.name", "audio.loader.fallback").
			Msg("instrument loader failed; falling back to synth")
	}

	t.inst = NewSynth()
	return t.inst, nil
}
