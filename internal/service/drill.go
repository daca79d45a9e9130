package service

import (
	"context"
	"time"

	"github.com/tonedrill/backend/internal/constant"
	modelcache "github.com/tonedrill/backend/internal/model/cache"
	"github.com/tonedrill/backend/internal/model/types"
)

// Drill serves the practice drill catalog. The catalog is static for now;
// it still goes through the cache so a future DB-backed catalog only has to
// change the value func.
type Drill struct{}

func NewDrill() *Drill {
	return &Drill{}
}

func (s *Drill) GetDrills(ctx context.Context) ([]types.Drill, error) {
	var drills []types.Drill
	err := modelcache.Drills.MutexGetSet(&drills, func() ([]types.Drill, error) {
		return []types.Drill{
			{
				DrillID:     constant.DrillIntervals,
				Name:        "Intervals",
				Description: "Identify intervals played after a tonal context, ascending, descending or harmonic.",
				Playable:    true,
			},
			{
				DrillID:     constant.DrillChords,
				Name:        "Chords",
				Description: "Identify chord qualities.",
				Playable:    false,
			},
			{
				DrillID:     constant.DrillProgressions,
				Name:        "Progressions",
				Description: "Identify diatonic chord progressions.",
				Playable:    false,
			},
			{
				DrillID:     constant.DrillRhythm,
				Name:        "Rhythm",
				Description: "Tap back rhythmic patterns.",
				Playable:    false,
			},
		}, nil
	}, time.Hour*24)
	if err != nil {
		return nil, err
	}

	return drills, nil
}
