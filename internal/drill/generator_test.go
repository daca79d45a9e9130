package drill

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonedrill/backend/internal/constant"
	"github.com/tonedrill/backend/internal/music"
)

func TestGeneratorCoversPromptSpace(t *testing.T) {
	gen := NewGenerator(Options{}, rand.New(rand.NewSource(1)))

	keys := map[string]int{}
	labels := map[string]int{}
	directions := map[music.Direction]int{}

	for i := 0; i < 5000; i++ {
		prompt := gen.Next()
		require.Equal(t, constant.KindInterval, prompt.Kind)
		require.Equal(t, constant.ModeMajor, prompt.Mode)
		require.True(t, music.ValidKey(prompt.Key))
		require.True(t, prompt.Direction.Valid())

		_, err := music.ParseInterval(prompt.Interval)
		require.NoError(t, err)

		keys[prompt.Key]++
		labels[prompt.Interval]++
		directions[prompt.Direction]++
	}

	assert.Len(t, keys, len(music.Keys))
	assert.Len(t, labels, len(music.Labels))
	assert.Len(t, directions, len(music.Directions))

	// uniform draws over 12 intervals should put each within a loose band
	for label, count := range labels {
		assert.Greater(t, count, 200, "label %s drawn too rarely", label)
	}
}

func TestGeneratorHonorsNarrowing(t *testing.T) {
	gen := NewGenerator(Options{
		FixedKey:   "G",
		Directions: []music.Direction{music.DirectionHarmonic},
	}, rand.New(rand.NewSource(42)))

	for i := 0; i < 200; i++ {
		prompt := gen.Next()
		assert.Equal(t, "G", prompt.Key)
		assert.Equal(t, music.DirectionHarmonic, prompt.Direction)
	}
}

func TestEvaluate(t *testing.T) {
	gen := NewGenerator(Options{}, rand.New(rand.NewSource(7)))

	for i := 0; i < 100; i++ {
		prompt := gen.Next()
		iv, err := music.ParseInterval(prompt.Interval)
		require.NoError(t, err)
		correct, ok := music.LabelFor(iv)
		require.True(t, ok)

		assert.True(t, Evaluate(prompt, correct))
		for _, label := range music.Labels {
			if label == correct {
				continue
			}
			assert.False(t, Evaluate(prompt, label))
		}
	}
}

func TestEvaluateTritoneIsItsOwnAnswer(t *testing.T) {
	prompt := NewGenerator(Options{}, rand.New(rand.NewSource(1))).Next()
	prompt.Interval = "4A"

	assert.True(t, Evaluate(prompt, music.LabelTritone))
	assert.False(t, Evaluate(prompt, music.LabelPerfectFourth))
	assert.False(t, Evaluate(prompt, music.LabelPerfectFifth))
}
