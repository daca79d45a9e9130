package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonedrill/backend/internal/music"
)

func TestContextPlan(t *testing.T) {
	plan := ContextPlan("C")

	require.Len(t, plan.Events, 2)

	tonic := plan.Events[0]
	require.Len(t, tonic.Pitches, 1)
	assert.Equal(t, "C3", tonic.Pitches[0].String())
	assert.InDelta(t, 0.1, tonic.StartOffset, 1e-9)

	triad := plan.Events[1]
	require.Len(t, triad.Pitches, 3)
	assert.Equal(t, "C3", triad.Pitches[0].String())
	assert.Equal(t, "E3", triad.Pitches[1].String())
	assert.Equal(t, "G3", triad.Pitches[2].String())
	assert.InDelta(t, 0.7, triad.StartOffset, 1e-9)
	assert.InDelta(t, 1.7, plan.End(), 1e-9)
}

func TestPlanEndEmpty(t *testing.T) {
	assert.Zero(t, Plan{}.End())
}

func TestIntervalPlanHarmonicIsSingleChordEvent(t *testing.T) {
	iv := music.LabelPerfectFifth.Interval()
	plan := IntervalPlan("C", iv, music.DirectionHarmonic)

	require.Len(t, plan.Events, 1)
	event := plan.Events[0]
	require.Len(t, event.Pitches, 2)
	assert.Equal(t, "C4", event.Pitches[0].String())
	assert.Equal(t, "G4", event.Pitches[1].String())
	assert.InDelta(t, 0.1, event.StartOffset, 1e-9)
}

func TestIntervalPlanAscending(t *testing.T) {
	iv := music.LabelMinorThird.Interval()
	plan := IntervalPlan("C", iv, music.DirectionAscending)

	require.Len(t, plan.Events, 2)
	assert.Equal(t, "C4", plan.Events[0].Pitches[0].String())
	assert.Equal(t, "Eb4", plan.Events[1].Pitches[0].String())
	assert.InDelta(t, 0.1, plan.Events[0].StartOffset, 1e-9)
	assert.InDelta(t, 0.7, plan.Events[1].StartOffset, 1e-9)
}

func TestIntervalPlanDescending(t *testing.T) {
	iv := music.LabelMajorSecond.Interval()
	plan := IntervalPlan("D", iv, music.DirectionDescending)

	require.Len(t, plan.Events, 2)
	assert.Equal(t, "D4", plan.Events[0].Pitches[0].String())
	assert.Equal(t, "C4", plan.Events[1].Pitches[0].String())
	assert.Greater(t, plan.Events[0].Pitches[0].Midi(), plan.Events[1].Pitches[0].Midi())
}

func TestIntervalPlanTritoneSpelling(t *testing.T) {
	iv := music.LabelTritone.Interval()
	plan := IntervalPlan("C", iv, music.DirectionAscending)

	require.Len(t, plan.Events, 2)
	assert.Equal(t, "F#4", plan.Events[1].Pitches[0].String())
}

func TestIntervalPlanOctave(t *testing.T) {
	iv := music.LabelPerfectOctave.Interval()
	plan := IntervalPlan("A", iv, music.DirectionAscending)

	require.Len(t, plan.Events, 2)
	assert.Equal(t, "A4", plan.Events[0].Pitches[0].String())
	assert.Equal(t, "A5", plan.Events[1].Pitches[0].String())
}
