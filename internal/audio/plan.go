// Package audio owns the timing and ordering of drill playback. It decides
// what notes to play and when; rendering waveforms is the instrument
// backend's job.
package audio

import (
	"github.com/tonedrill/backend/internal/music"
)

// Timing constants, in seconds unless noted. leadIn keeps onsets off the
// immediate current instant; melodicGap separates the two notes of a melodic
// interval; SettleDelay is how long the tonal context is left to decay
// before the interval begins. The two-phase settle delay is a perceptual
// tuning, not an engine requirement; reimplementations must keep it.
const (
	leadIn     = 0.1
	melodicGap = 0.6

	// note durations at the 120bpm reference: a quarter and a half note
	quarterNote = 0.5
	halfNote    = 1.0
)

// SettleDelaySeconds separates context playback from interval playback.
const SettleDelaySeconds = 0.9

// Event is one scheduled onset: one or more simultaneous pitches starting
// at StartOffset seconds and sounding for Duration seconds.
type Event struct {
	Pitches     []music.Pitch `json:"pitches"`
	Duration    float64       `json:"duration"`
	StartOffset float64       `json:"startOffset"`
}

// Plan is the ordered onset schedule for one playback phase.
type Plan struct {
	Events []Event `json:"events"`
}

// End returns the offset at which the last event stops sounding.
func (p Plan) End() float64 {
	var end float64
	for _, event := range p.Events {
		if stop := event.StartOffset + event.Duration; stop > end {
			end = stop
		}
	}
	return end
}

// ContextPlan builds the tonal-context phrase: the key's tonic in a low
// register, then the tonic triad, establishing the major mode before the
// question plays.
func ContextPlan(key string) Plan {
	tonic := music.NewPitch(key, 3)
	third := tonic.Transpose(music.LabelMajorThird.Interval(), true)
	fifth := tonic.Transpose(music.LabelPerfectFifth.Interval(), true)

	return Plan{Events: []Event{
		{
			Pitches:     []music.Pitch{tonic},
			Duration:    quarterNote,
			StartOffset: leadIn,
		},
		{
			Pitches:     []music.Pitch{tonic, third, fifth},
			Duration:    halfNote,
			StartOffset: leadIn + melodicGap,
		},
	}}
}

// IntervalPlan builds the onset schedule for an interval question. Harmonic
// intervals are a single chord-style event: scheduling the two pitches as
// separate events at an identical timestamp conflicts in common synthesis
// engines. Melodic intervals order the two notes per direction, the second
// note following after melodicGap; descending intervals transpose downward.
func IntervalPlan(key string, iv music.Interval, direction music.Direction) Plan {
	root := music.NewPitch(key, 4)

	if direction == music.DirectionHarmonic {
		return Plan{Events: []Event{{
			Pitches:     []music.Pitch{root, root.Transpose(iv, true)},
			Duration:    halfNote,
			StartOffset: leadIn,
		}}}
	}

	second := root.Transpose(iv, direction == music.DirectionAscending)
	return Plan{Events: []Event{
		{
			Pitches:     []music.Pitch{root},
			Duration:    quarterNote,
			StartOffset: leadIn,
		},
		{
			Pitches:     []music.Pitch{second},
			Duration:    quarterNote,
			StartOffset: leadIn + melodicGap,
		},
	}}
}
