package types

import (
	"gopkg.in/guregu/null.v3"

	"github.com/tonedrill/backend/internal/music"
)

// IntervalPrompt is the ground truth of one interval question. Immutable
// once generated; consumed by the audio plan builder and the evaluator.
type IntervalPrompt struct {
	Kind      string          `json:"kind" validate:"required,eq=INTERVAL"`
	Key       string          `json:"key" validate:"required,naturalkey"`
	Mode      string          `json:"mode" validate:"required,eq=major"`
	Interval  string          `json:"interval" validate:"required,intervalform"`
	Direction music.Direction `json:"direction" validate:"required,direction"`
}

// Answer is what the user did with a prompt: picked a label, skipped, or had
// the answer revealed.
type Answer struct {
	Selection null.String `json:"selection,omitempty" swaggertype:"string"`
	Skipped   bool        `json:"skipped,omitempty"`
	Revealed  bool        `json:"revealed,omitempty"`
}

// SelectedAnswer builds an Answer for a picked interval label.
func SelectedAnswer(label music.Label) Answer {
	return Answer{Selection: null.StringFrom(string(label))}
}

// SkippedAnswer builds an Answer for a skipped question.
func SkippedAnswer() Answer {
	return Answer{Skipped: true}
}

// RevealedAnswer builds an Answer for a revealed question.
func RevealedAnswer() Answer {
	return Answer{Revealed: true}
}
