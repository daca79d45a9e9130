package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelIntervalMappingIsTotalAndInjective(t *testing.T) {
	seen := map[Interval]Label{}
	for _, label := range Labels {
		iv := label.Interval()
		require.NotZero(t, iv.Number, "label %s has no interval", label)

		prev, dup := seen[iv]
		require.False(t, dup, "labels %s and %s map to the same interval", prev, label)
		seen[iv] = label

		back, ok := LabelFor(iv)
		require.True(t, ok)
		assert.Equal(t, label, back)
	}
	assert.Len(t, seen, 12)
}

func TestIntervalWireForm(t *testing.T) {
	assert.Equal(t, "3m", LabelMinorThird.Interval().String())
	assert.Equal(t, "4A", LabelTritone.Interval().String())
	assert.Equal(t, "5P", LabelPerfectFifth.Interval().String())
	assert.Equal(t, "8P", LabelPerfectOctave.Interval().String())
}

func TestParseIntervalRoundTrip(t *testing.T) {
	for _, label := range Labels {
		iv := label.Interval()
		parsed, err := ParseInterval(iv.String())
		require.NoError(t, err)
		assert.Equal(t, iv, parsed)
	}
}

func TestParseIntervalRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "3", "m3", "3x", "10P", "3m-asc"} {
		_, err := ParseInterval(s)
		assert.Error(t, err, "expected %q to be rejected", s)
	}
}

func TestSemitonesAreChromaticallyComplete(t *testing.T) {
	for i, label := range Labels {
		assert.Equal(t, i+1, label.Interval().Semitones(), "label %s", label)
	}
}

func TestDirectionValid(t *testing.T) {
	for _, d := range Directions {
		assert.True(t, d.Valid())
	}
	assert.False(t, Direction("up").Valid())
	assert.False(t, Direction("").Valid())
}
