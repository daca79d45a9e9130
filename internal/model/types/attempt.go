package types

// SingularAttemptRequest is the payload of POST /attempts: one completed
// question slot, submitted by the practice client.
type SingularAttemptRequest struct {
	DrillID   string         `json:"drillId" validate:"required,max=32"`
	Prompt    IntervalPrompt `json:"prompt" validate:"required"`
	Answer    Answer         `json:"answer"`
	IsCorrect bool           `json:"isCorrect"`
	LatencyMs int            `json:"latencyMs" validate:"min=0"`
}

// AttemptTask is the queue message carrying one attempt from the HTTP layer
// (or the session orchestrator) to the persistence worker.
type AttemptTask struct {
	TaskID    string         `json:"taskId"`
	UserID    string         `json:"userId"`
	DrillID   string         `json:"drillId"`
	Prompt    IntervalPrompt `json:"prompt"`
	Answer    Answer         `json:"answer"`
	IsCorrect bool           `json:"isCorrect"`
	LatencyMs int            `json:"latencyMs"`

	// CreatedAt is in microseconds
	CreatedAt int64 `json:"createdAt"`
}

// AttemptResponse acknowledges a queued attempt submission.
type AttemptResponse struct {
	TaskID string `json:"taskId"`
}
