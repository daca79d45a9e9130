package types

import (
	"github.com/tonedrill/backend/internal/audio"
	"github.com/tonedrill/backend/internal/music"
)

// StartSessionRequest configures a new practice session. Zero values fall
// back to the drill defaults: ten questions, random key, all directions.
type StartSessionRequest struct {
	DrillID          string            `json:"drillId" validate:"required,oneof=intervals"`
	PlannedQuestions int               `json:"plannedQuestions" validate:"omitempty,min=1,max=100"`
	FixedKey         string            `json:"fixedKey" validate:"omitempty,naturalkey"`
	Directions       []music.Direction `json:"directions" validate:"omitempty,dive,direction"`
}

// SessionAnswerRequest is the label the user picked for the current question.
type SessionAnswerRequest struct {
	Selection music.Label `json:"selection" validate:"required,intervallabel"`
	LatencyMs int         `json:"latencyMs" validate:"min=0"`
}

// SessionQuestion is the client-visible part of the current prompt. The
// interval under test is deliberately absent: the answer must come through
// the ear, not the payload.
type SessionQuestion struct {
	Number    int             `json:"number"`
	Key       string          `json:"key"`
	Mode      string          `json:"mode"`
	Direction music.Direction `json:"direction"`
}

// SessionView is the full client-visible state of a session.
type SessionView struct {
	SessionID        string           `json:"sessionId"`
	DrillID          string           `json:"drillId"`
	Phase            string           `json:"phase"`
	PlannedQuestions int              `json:"plannedQuestions"`
	CompletedCount   int              `json:"completedCount"`
	CorrectCount     int              `json:"correctCount"`
	Accuracy         int              `json:"accuracy"`
	Question         *SessionQuestion `json:"question,omitempty"`
	Feedback         string           `json:"feedback,omitempty"`
	RevealedLabel    music.Label      `json:"revealedLabel,omitempty"`
	InteractionLock  bool             `json:"interactionLock"`
	Plan             *audio.Plan      `json:"plan,omitempty"`
}

// Drill is one catalog entry of the practice drill list.
type Drill struct {
	DrillID     string `json:"drillId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Playable    bool   `json:"playable"`
}
