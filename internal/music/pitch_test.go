package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchString(t *testing.T) {
	assert.Equal(t, "C4", NewPitch("C", 4).String())
	assert.Equal(t, "B3", NewPitch("B", 3).String())
	assert.Equal(t, "F#4", Pitch{Letter: 'F', Accidental: 1, Octave: 4}.String())
	assert.Equal(t, "Bb4", Pitch{Letter: 'B', Accidental: -1, Octave: 4}.String())
}

func TestPitchMidi(t *testing.T) {
	assert.Equal(t, 60, NewPitch("C", 4).Midi())
	assert.Equal(t, 69, NewPitch("A", 4).Midi())
	assert.Equal(t, 48, NewPitch("C", 3).Midi())
}

func TestTransposeSpellsByDegree(t *testing.T) {
	tests := []struct {
		root     string
		label    Label
		up       bool
		expected string
	}{
		{"C", LabelMinorThird, true, "Eb4"},
		{"C", LabelMajorThird, true, "E4"},
		{"C", LabelTritone, true, "F#4"},
		{"C", LabelPerfectOctave, true, "C5"},
		{"E", LabelMinorSecond, true, "F4"},
		{"B", LabelPerfectFourth, true, "E5"},
		{"F", LabelMajorSeventh, true, "E5"},
		{"D", LabelMajorSecond, false, "C4"},
		{"C", LabelMinorSecond, false, "B3"},
		{"G", LabelPerfectFifth, false, "C4"},
		{"A", LabelPerfectOctave, false, "A3"},
	}

	for _, tt := range tests {
		iv := tt.label.Interval()
		got := NewPitch(tt.root, 4).Transpose(iv, tt.up)
		assert.Equal(t, tt.expected, got.String(), "%s %s up=%v", tt.root, tt.label, tt.up)
	}
}

func TestTransposePreservesSemitoneSpan(t *testing.T) {
	for _, key := range Keys {
		root := NewPitch(key, 4)
		for _, label := range Labels {
			iv := label.Interval()

			upper := root.Transpose(iv, true)
			require.Equal(t, iv.Semitones(), upper.Midi()-root.Midi(), "%s + %s", key, label)

			lower := root.Transpose(iv, false)
			require.Equal(t, iv.Semitones(), root.Midi()-lower.Midi(), "%s - %s", key, label)
		}
	}
}

func TestTransposeLetterMovesByDegree(t *testing.T) {
	root := NewPitch("C", 4)
	third := root.Transpose(LabelMinorThird.Interval(), true)
	assert.Equal(t, byte('E'), third.Letter)
	assert.Equal(t, -1, third.Accidental)
}
