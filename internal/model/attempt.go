package model

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/uptrace/bun"
)

// Attempt is one submitted or skipped question. Immutable after creation.
type Attempt struct {
	bun.BaseModel `bun:"attempts,alias:at"`

	AttemptID int64           `bun:",pk,autoincrement" json:"id"`
	UserID    string          `json:"userId"`
	DrillID   string          `json:"drillId"`
	Prompt    json.RawMessage `bun:"type:jsonb" json:"prompt"`
	Answer    json.RawMessage `bun:"type:jsonb" json:"answer"`
	IsCorrect bool            `json:"isCorrect"`
	LatencyMs int             `json:"latencyMs"`
	CreatedAt time.Time       `json:"createdAt"`
}
