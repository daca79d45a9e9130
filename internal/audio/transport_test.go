package audio

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLoader struct {
	calls int
}

func (l *failingLoader) Load(context.Context) (Instrument, error) {
	l.calls++
	return nil, errors.New("sample set unreachable")
}

func TestTransportDefaultsToSynth(t *testing.T) {
	transport := NewTransport()
	require.NoError(t, transport.Ready(context.Background()))
	assert.NoError(t, transport.Play(context.Background(), ContextPlan("C")))
}

func TestTransportFallsBackWhenLoaderFails(t *testing.T) {
	loader := &failingLoader{}
	transport := NewTransport(WithLoader(loader))

	require.NoError(t, transport.Ready(context.Background()))
	assert.Equal(t, 1, loader.calls)

	// acquisition happens once; the fallback sticks
	require.NoError(t, transport.Ready(context.Background()))
	assert.Equal(t, 1, loader.calls)
}

func TestTransportClosed(t *testing.T) {
	transport := NewTransport()
	require.NoError(t, transport.Ready(context.Background()))
	require.NoError(t, transport.Close())

	assert.ErrorIs(t, transport.Ready(context.Background()), ErrTransportClosed)
	assert.ErrorIs(t, transport.Play(context.Background(), ContextPlan("C")), ErrTransportClosed)
}

func TestSynthSchedulesInOrder(t *testing.T) {
	synth := NewSynth()
	plan := ContextPlan("G")
	require.NoError(t, synth.Schedule(plan))

	pending := synth.Pending()
	require.Len(t, pending, len(plan.Events))
	assert.Equal(t, plan.Events[0], pending[0])
	assert.Empty(t, synth.Pending())

	require.NoError(t, synth.Close())
	assert.ErrorIs(t, synth.Schedule(plan), ErrInstrumentClosed)
}
