package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/tonedrill/backend/internal/model"
	"github.com/tonedrill/backend/internal/music"
)

func TestComputeNextStreak(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	t.Run("first attempt ever", func(t *testing.T) {
		assert.Equal(t, 1, ComputeNextStreak(0, null.Time{}, now))
	})

	t.Run("same day keeps the streak", func(t *testing.T) {
		earlier := null.TimeFrom(time.Date(2024, 3, 15, 0, 5, 0, 0, time.UTC))
		assert.Equal(t, 4, ComputeNextStreak(4, earlier, now))
	})

	t.Run("same day never reports zero", func(t *testing.T) {
		earlier := null.TimeFrom(time.Date(2024, 3, 15, 0, 5, 0, 0, time.UTC))
		assert.Equal(t, 1, ComputeNextStreak(0, earlier, now))
	})

	t.Run("yesterday extends the streak", func(t *testing.T) {
		yesterday := null.TimeFrom(time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC))
		assert.Equal(t, 5, ComputeNextStreak(4, yesterday, now))
	})

	t.Run("yesterday from zero starts at one", func(t *testing.T) {
		yesterday := null.TimeFrom(time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC))
		assert.Equal(t, 1, ComputeNextStreak(0, yesterday, now))
	})

	t.Run("a gap resets to one", func(t *testing.T) {
		lastWeek := null.TimeFrom(time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC))
		assert.Equal(t, 1, ComputeNextStreak(12, lastWeek, now))
	})

	t.Run("calendar day boundary, not 24 hours", func(t *testing.T) {
		// 23:50 yesterday to 00:10 today is 20 minutes apart but a day apart
		lateYesterday := null.TimeFrom(time.Date(2024, 3, 14, 23, 50, 0, 0, time.UTC))
		justPastMidnight := time.Date(2024, 3, 15, 0, 10, 0, 0, time.UTC)
		assert.Equal(t, 3, ComputeNextStreak(2, lateYesterday, justPastMidnight))
	})
}

func TestTopMissed(t *testing.T) {
	heat := model.HeatMap{
		model.HeatKey("3m", music.DirectionAscending):  {Seen: 10, Miss: 8},
		model.HeatKey("4A", music.DirectionHarmonic):   {Seen: 5, Miss: 4},
		model.HeatKey("5P", music.DirectionAscending):  {Seen: 10, Miss: 1},
		model.HeatKey("2m", music.DirectionDescending): {Seen: 2, Miss: 2},
		model.HeatKey("8P", music.DirectionAscending):  {Seen: 20, Miss: 0},
		model.HeatKey("7M", music.DirectionHarmonic):   {Seen: 10, Miss: 6},
	}

	missed := TopMissed(heat)
	require.Len(t, missed, 3)

	// 2m-desc is excluded despite a 100% miss rate: two exposures is noise
	assert.Equal(t, "3m-asc", missed[0].Key)
	assert.Equal(t, "4A-harm", missed[1].Key)
	assert.Equal(t, "7M-harm", missed[2].Key)
	assert.InDelta(t, 0.8, missed[0].Rate, 1e-9)
}

func TestTopMissedTieBreaksOnAbsoluteMisses(t *testing.T) {
	heat := model.HeatMap{
		model.HeatKey("3m", music.DirectionAscending): {Seen: 4, Miss: 2},
		model.HeatKey("6m", music.DirectionAscending): {Seen: 10, Miss: 5},
	}

	missed := TopMissed(heat)
	require.Len(t, missed, 2)
	assert.Equal(t, "6m-asc", missed[0].Key)
	assert.Equal(t, "3m-asc", missed[1].Key)
}

func TestTopMissedZeroMissFillsTail(t *testing.T) {
	heat := model.HeatMap{
		model.HeatKey("2m", music.DirectionAscending): {Seen: 6, Miss: 3},
		model.HeatKey("5P", music.DirectionAscending): {Seen: 10, Miss: 0},
		model.HeatKey("3M", music.DirectionHarmonic):  {Seen: 4, Miss: 0},
		model.HeatKey("6M", music.DirectionAscending): {Seen: 2, Miss: 0},
	}

	missed := TopMissed(heat)
	require.Len(t, missed, 3)

	// well-practiced zero-miss cells rank at rate 0 behind any missed cell;
	// 6M-asc stays out on the exposure threshold
	assert.Equal(t, "2m-asc", missed[0].Key)
	assert.Equal(t, "3M-harm", missed[1].Key)
	assert.Equal(t, "5P-asc", missed[2].Key)
	assert.Zero(t, missed[1].Rate)
	assert.Zero(t, missed[2].Rate)
}

func TestTopMissedEmptyHeat(t *testing.T) {
	assert.Empty(t, TopMissed(model.HeatMap{}))
	assert.Empty(t, TopMissed(nil))
}

func TestFillDayBucketsZeroFills(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	attempts := []*model.Attempt{
		{CreatedAt: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), IsCorrect: true},
		{CreatedAt: time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC), IsCorrect: false},
		{CreatedAt: time.Date(2024, 3, 15, 9, 10, 0, 0, time.UTC), IsCorrect: true},
		{CreatedAt: time.Date(2024, 3, 11, 20, 0, 0, 0, time.UTC), IsCorrect: true},
	}

	buckets := fillDayBuckets(attempts, now)
	require.Len(t, buckets, 7)

	// exactly seven calendar days, oldest first, today last
	assert.Equal(t, "2024-03-09", buckets[0].Date)
	assert.Equal(t, "2024-03-15", buckets[6].Date)

	assert.Equal(t, 3, buckets[6].Total)
	assert.Equal(t, 2, buckets[6].Correct)
	assert.Equal(t, 1, buckets[2].Total)
	assert.Equal(t, 1, buckets[2].Correct)

	for _, i := range []int{0, 1, 3, 4, 5} {
		assert.Zero(t, buckets[i].Total, "day %s should be zero-filled", buckets[i].Date)
		assert.Zero(t, buckets[i].Correct)
	}
}

func TestFillDayBucketsUsesServerCalendar(t *testing.T) {
	loc := time.FixedZone("UTC-4", -4*3600)
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, loc)

	// stored in UTC at 03:30 on the 15th, which is 23:30 on the 14th locally
	attempts := []*model.Attempt{
		{CreatedAt: time.Date(2024, 3, 15, 3, 30, 0, 0, time.UTC), IsCorrect: true},
	}

	buckets := fillDayBuckets(attempts, now)
	require.Len(t, buckets, 7)

	byDate := map[string]int{}
	for _, bucket := range buckets {
		byDate[bucket.Date] = bucket.Total
	}
	assert.Equal(t, 1, byDate["2024-03-14"])
	assert.Zero(t, byDate["2024-03-15"])
}

func TestFillDayBucketsNoActivity(t *testing.T) {
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	buckets := fillDayBuckets(nil, now)
	require.Len(t, buckets, 7)
	for _, bucket := range buckets {
		assert.Zero(t, bucket.Total)
	}
}

func TestAccuracyPercent(t *testing.T) {
	assert.Equal(t, 0, accuracyPercent(0, 0))
	assert.Equal(t, 100, accuracyPercent(5, 5))
	assert.Equal(t, 67, accuracyPercent(2, 3))
	assert.Equal(t, 33, accuracyPercent(1, 3))
	assert.Equal(t, 50, accuracyPercent(1, 2))
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", ExtractBearerToken("Bearer abc123"))
	assert.Equal(t, "abc123", ExtractBearerToken("bearer abc123"))
	assert.Equal(t, "abc123", ExtractBearerToken("  Bearer   abc123  "))
	assert.Empty(t, ExtractBearerToken(""))
	assert.Empty(t, ExtractBearerToken("abc123"))
	assert.Empty(t, ExtractBearerToken("Basic abc123"))
}
