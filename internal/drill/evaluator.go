package drill

import (
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/music"
)

// Evaluate reports whether the picked label names the prompted interval.
// Comparison is on the canonical form, so the tritone only matches its own
// label and never a spelled equivalent.
func Evaluate(prompt types.IntervalPrompt, selection music.Label) bool {
	iv, err := music.ParseInterval(prompt.Interval)
	if err != nil {
		return false
	}
	return music.IsSame(iv, selection.Interval())
}
