// Package drill implements the interval practice core: prompt generation,
// answer evaluation and the per-session state machine that sequences
// questions, playback and feedback.
package drill

import (
	"math/rand"
	"sync"
	"time"

	"github.com/tonedrill/backend/internal/constant"
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/music"
)

// Options narrows the prompt space of a session. Zero values mean no
// narrowing: random key, every direction.
type Options struct {
	FixedKey   string
	Directions []music.Direction
}

// Generator draws uniformly random interval prompts. The random source is
// injectable so tests can seed it.
type Generator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	opts Options
}

func NewGenerator(opts Options, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(opts.Directions) == 0 {
		opts.Directions = music.Directions
	}
	return &Generator{
		rng:  rng,
		opts: opts,
	}
}

// Next draws the next prompt. Draws are independent: repeats are possible
// and intended.
func (g *Generator) Next() types.IntervalPrompt {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := g.opts.FixedKey
	if key == "" {
		key = music.Keys[g.rng.Intn(len(music.Keys))]
	}

	label := music.Labels[g.rng.Intn(len(music.Labels))]
	direction := g.opts.Directions[g.rng.Intn(len(g.opts.Directions))]

	return types.IntervalPrompt{
		Kind:      constant.KindInterval,
		Key:       key,
		Mode:      constant.ModeMajor,
		Interval:  label.Interval().String(),
		Direction: direction,
	}
}
