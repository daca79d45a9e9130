package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tonedrill/backend/internal/music"
)

func TestHeatMapBump(t *testing.T) {
	heat := HeatMap{}
	key := HeatKey("3m", music.DirectionAscending)

	heat.Bump(key, false)
	heat.Bump(key, true)
	heat.Bump(key, false)

	assert.Equal(t, HeatEntry{Seen: 3, Miss: 2}, heat[key])

	other := HeatKey("5P", music.DirectionHarmonic)
	heat.Bump(other, true)
	assert.Equal(t, HeatEntry{Seen: 1, Miss: 0}, heat[other])
	assert.Len(t, heat, 2)
}

func TestHeatMapValidate(t *testing.T) {
	valid := HeatMap{
		"3m-asc":  {Seen: 1},
		"4A-harm": {Seen: 2, Miss: 1},
		"8P-desc": {Seen: 5},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		key  string
	}{
		{"no separator", "3masc"},
		{"label instead of canonical form", "m3-asc"},
		{"unknown direction", "3m-up"},
		{"empty interval", "-asc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, HeatMap{tt.key: {Seen: 1}}.Validate())
		})
	}
}
