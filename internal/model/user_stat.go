package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"github.com/tonedrill/backend/internal/music"
)

// HeatEntry counts exposures and misses for one heat-map cell.
type HeatEntry struct {
	Seen int `json:"seen"`
	Miss int `json:"miss"`
}

// HeatMap maps a composite "{interval}-{direction}" key (e.g. "3m-asc") to
// its exposure counters. Keys are validated at the persistence boundary
// rather than trusted as opaque JSON.
type HeatMap map[string]HeatEntry

// HeatKey builds the composite heat-map key for an interval and direction.
func HeatKey(interval string, direction music.Direction) string {
	return interval + "-" + string(direction)
}

// Validate checks every key is a well-formed interval-direction composite.
func (m HeatMap) Validate() error {
	for key := range m {
		interval, direction, ok := strings.Cut(key, "-")
		if !ok {
			return fmt.Errorf("model: malformed heat key %q", key)
		}
		if _, err := music.ParseInterval(interval); err != nil {
			return fmt.Errorf("model: heat key %q: %w", key, err)
		}
		if !music.Direction(direction).Valid() {
			return fmt.Errorf("model: heat key %q: unknown direction %q", key, direction)
		}
	}
	return nil
}

// Bump increments the seen counter for key, and the miss counter too unless
// the attempt was correct.
func (m HeatMap) Bump(key string, correct bool) {
	entry := m[key]
	entry.Seen++
	if !correct {
		entry.Miss++
	}
	m[key] = entry
}

// UserStat is the per-user running aggregate, one row per user, mutated
// transactionally on every attempt.
type UserStat struct {
	bun.BaseModel `bun:"user_stats,alias:us"`

	UserID          string    `bun:",pk" json:"userId"`
	TotalAttempts   int       `json:"totalAttempts"`
	CorrectAttempts int       `json:"correctAttempts"`
	LastAttemptAt   null.Time `bun:"last_attempt_at" json:"lastAttemptAt" swaggertype:"string"`
	StreakDays      int       `json:"streakDays"`
	IntervalHeat    HeatMap   `bun:"type:jsonb" json:"intervalHeat"`
	// ChordHeat is reserved for the chord drills; unused while those remain
	// unimplemented.
	ChordHeat HeatMap   `bun:"type:jsonb" json:"chordHeat"`
	UpdatedAt time.Time `json:"updatedAt"`
}
