package types

import "github.com/tonedrill/backend/internal/model"

// StatsRequest selects the aggregation window of a stats query.
type StatsRequest struct {
	Range string `query:"range" validate:"omitempty,statsrange"`
}

// StatsTotals is the headline counters block of a stats response.
type StatsTotals struct {
	TotalAttempts   int `json:"totalAttempts"`
	CorrectAttempts int `json:"correctAttempts"`
	Accuracy        int `json:"accuracy"`
	StreakDays      int `json:"streakDays"`
}

// MissedInterval is one row of the top-missed ranking.
type MissedInterval struct {
	Key  string  `json:"key"`
	Seen int     `json:"seen"`
	Miss int     `json:"miss"`
	Rate float64 `json:"rate"`
}

// DayActivity is one calendar-day bucket of the recent-activity series.
type DayActivity struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Correct int    `json:"correct"`
}

// UserStats is the dashboard aggregate for one user.
type UserStats struct {
	Totals             StatsTotals      `json:"totals"`
	IntervalHeat       model.HeatMap    `json:"intervalHeat"`
	ChordHeat          model.HeatMap    `json:"chordHeat"`
	TopMissedIntervals []MissedInterval `json:"topMissedIntervals"`
	Last7              []DayActivity    `json:"last7"`
}
