package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	ts := time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2024-03-09", DayKey(ts))
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	ts := time.Date(2024, 3, 9, 18, 30, 12, 500, loc)

	start := StartOfDay(ts)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, loc), start)
	assert.Equal(t, loc, start.Location())
}

func TestDaysBetween(t *testing.T) {
	day := func(d int, hour int) time.Time {
		return time.Date(2024, 3, d, hour, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 0, DaysBetween(day(9, 1), day(9, 23)))
	assert.Equal(t, 1, DaysBetween(day(9, 23), day(10, 0)))
	assert.Equal(t, 3, DaysBetween(day(9, 12), day(12, 12)))
	assert.Equal(t, -1, DaysBetween(day(10, 0), day(9, 23)))
}

func TestDaysBetweenAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 2024-03-10 is a 23 hour day in America/New_York
	before := time.Date(2024, 3, 9, 12, 0, 0, 0, loc)
	after := time.Date(2024, 3, 10, 12, 0, 0, 0, loc)
	assert.Equal(t, 1, DaysBetween(before, after))
}
