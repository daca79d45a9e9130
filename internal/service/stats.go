package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"github.com/tonedrill/backend/internal/constant"
	"github.com/tonedrill/backend/internal/model"
	modelcache "github.com/tonedrill/backend/internal/model/cache"
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/pkg/apperr"
	"github.com/tonedrill/backend/internal/repo"
	"github.com/tonedrill/backend/internal/util"
)

const (
	// a heat cell needs this many exposures before it may rank as missed
	topMissedMinSeen = 3
	topMissedLimit   = 3

	activityDays = 7

	statsCacheExpiry = time.Minute * 5
)

// Stats assembles the practice dashboard. The all-time view reads the
// running aggregate; bounded ranges recompute from the raw attempt rows so
// the window is exact.
type Stats struct {
	AttemptRepo  *repo.Attempt
	UserStatRepo *repo.UserStat
}

func NewStats(attemptRepo *repo.Attempt, userStatRepo *repo.UserStat) *Stats {
	return &Stats{
		AttemptRepo:  attemptRepo,
		UserStatRepo: userStatRepo,
	}
}

// GetUserStats returns the dashboard aggregate for the requested range,
// cached briefly and flushed by the ingest worker on every new attempt.
func (s *Stats) GetUserStats(ctx context.Context, userID, statsRange string) (*types.UserStats, error) {
	if statsRange == "" {
		statsRange = constant.StatsRangeAll
	}

	var stats types.UserStats
	_, err := modelcache.UserStatsByUserID.MutexGetSet(userID+"|"+statsRange, &stats, func() (types.UserStats, error) {
		computed, err := s.computeUserStats(ctx, userID, statsRange)
		if err != nil {
			return types.UserStats{}, err
		}
		return *computed, nil
	}, statsCacheExpiry)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *Stats) computeUserStats(ctx context.Context, userID, statsRange string) (*types.UserStats, error) {
	now := time.Now()

	stat, err := s.UserStatRepo.GetUserStatByUserID(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		stat = &model.UserStat{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	totals := types.StatsTotals{
		TotalAttempts:   stat.TotalAttempts,
		CorrectAttempts: stat.CorrectAttempts,
		StreakDays:      stat.StreakDays,
	}
	intervalHeat := stat.IntervalHeat
	chordHeat := stat.ChordHeat

	if days, bounded := constant.StatsRangeDays[statsRange]; bounded {
		since := util.StartOfDay(now).AddDate(0, 0, -(days - 1))
		totals, intervalHeat, err = s.recomputeWindow(ctx, userID, since)
		if err != nil {
			return nil, err
		}
		totals.StreakDays = stat.StreakDays
	}

	if intervalHeat == nil {
		intervalHeat = model.HeatMap{}
	}
	if chordHeat == nil {
		chordHeat = model.HeatMap{}
	}
	totals.Accuracy = accuracyPercent(totals.CorrectAttempts, totals.TotalAttempts)

	last7, err := s.recentActivity(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &types.UserStats{
		Totals:             totals,
		IntervalHeat:       intervalHeat,
		ChordHeat:          chordHeat,
		TopMissedIntervals: TopMissed(intervalHeat),
		Last7:              last7,
	}, nil
}

// recomputeWindow rebuilds totals and the interval heat map from raw
// attempts at or after since.
func (s *Stats) recomputeWindow(ctx context.Context, userID string, since time.Time) (types.StatsTotals, model.HeatMap, error) {
	attempts, err := s.AttemptRepo.GetAttemptsSince(ctx, userID, since)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return types.StatsTotals{}, nil, err
	}

	totals := types.StatsTotals{}
	heat := model.HeatMap{}

	for _, attempt := range attempts {
		totals.TotalAttempts++
		if attempt.IsCorrect {
			totals.CorrectAttempts++
		}

		var prompt types.IntervalPrompt
		if err := json.Unmarshal(attempt.Prompt, &prompt); err != nil {
			continue
		}
		if prompt.Kind != constant.KindInterval {
			continue
		}
		heat.Bump(model.HeatKey(prompt.Interval, prompt.Direction), attempt.IsCorrect)
	}

	return totals, heat, nil
}

// recentActivity builds exactly seven day buckets, oldest first, zero-filled
// for days without practice.
func (s *Stats) recentActivity(ctx context.Context, userID string, now time.Time) ([]types.DayActivity, error) {
	since := util.StartOfDay(now).AddDate(0, 0, -(activityDays - 1))

	attempts, err := s.AttemptRepo.GetAttemptsSince(ctx, userID, since)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	return fillDayBuckets(attempts, now), nil
}

// fillDayBuckets groups attempts by the calendar day they happened on, in
// now's zone so the buckets agree with the streak calendar.
func fillDayBuckets(attempts []*model.Attempt, now time.Time) []types.DayActivity {
	since := util.StartOfDay(now).AddDate(0, 0, -(activityDays - 1))

	byDay := lo.GroupBy(attempts, func(attempt *model.Attempt) string {
		return util.DayKey(attempt.CreatedAt.In(now.Location()))
	})

	buckets := make([]types.DayActivity, 0, activityDays)
	for i := 0; i < activityDays; i++ {
		day := util.DayKey(since.AddDate(0, 0, i))
		bucket := types.DayActivity{Date: day}
		for _, attempt := range byDay[day] {
			bucket.Total++
			if attempt.IsCorrect {
				bucket.Correct++
			}
		}
		buckets = append(buckets, bucket)
	}

	return buckets
}

// TopMissed ranks heat cells with at least topMissedMinSeen exposures by
// miss rate, breaking ties by absolute miss count, and keeps the worst
// three. Zero-miss cells stay in the candidate set at rate 0: they fill the
// tail when fewer than three cells carry misses.
func TopMissed(heat model.HeatMap) []types.MissedInterval {
	missed := make([]types.MissedInterval, 0, len(heat))
	for key, entry := range heat {
		if entry.Seen < topMissedMinSeen {
			continue
		}
		missed = append(missed, types.MissedInterval{
			Key:  key,
			Seen: entry.Seen,
			Miss: entry.Miss,
			Rate: float64(entry.Miss) / float64(entry.Seen),
		})
	}

	sort.Slice(missed, func(i, j int) bool {
		if missed[i].Rate != missed[j].Rate {
			return missed[i].Rate > missed[j].Rate
		}
		if missed[i].Miss != missed[j].Miss {
			return missed[i].Miss > missed[j].Miss
		}
		return missed[i].Key < missed[j].Key
	})

	return lo.Slice(missed, 0, topMissedLimit)
}

// ComputeNextStreak advances the consecutive-day counter for an attempt
// happening at now: unchanged within the same calendar day, incremented when
// the last attempt was yesterday, reset to one otherwise.
func ComputeNextStreak(prev int, lastAttemptAt null.Time, now time.Time) int {
	if !lastAttemptAt.Valid {
		return 1
	}

	// day boundaries follow the server's calendar, so compare in now's zone
	switch util.DaysBetween(lastAttemptAt.Time.In(now.Location()), now) {
	case 0:
		if prev < 1 {
			return 1
		}
		return prev
	case 1:
		if prev < 0 {
			return 1
		}
		return prev + 1
	default:
		return 1
	}
}

func accuracyPercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
