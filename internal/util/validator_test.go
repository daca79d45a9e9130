package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorCustomRules(t *testing.T) {
	validate := NewValidator()

	tests := []struct {
		name  string
		tag   string
		value string
		valid bool
	}{
		{"natural key", "naturalkey", "C", true},
		{"natural key B", "naturalkey", "B", true},
		{"accidental is not a natural key", "naturalkey", "F#", false},
		{"lowercase rejected", "naturalkey", "c", false},
		{"out of range letter", "naturalkey", "H", false},

		{"interval form", "intervalform", "3m", true},
		{"tritone form", "intervalform", "4A", true},
		{"octave form", "intervalform", "8P", true},
		{"label is not a form", "intervalform", "m3", false},
		{"bad quality", "intervalform", "3X", false},
		{"bad degree", "intervalform", "9P", false},

		{"interval label", "intervallabel", "m3", true},
		{"tritone label", "intervallabel", "TT", true},
		{"form is not a label", "intervallabel", "3m", false},

		{"ascending", "direction", "asc", true},
		{"descending", "direction", "desc", true},
		{"harmonic", "direction", "harm", true},
		{"unknown direction", "direction", "up", false},

		{"range 7d", "statsrange", "7d", true},
		{"range 30d", "statsrange", "30d", true},
		{"range all", "statsrange", "all", true},
		{"unknown range", "statsrange", "90d", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Var(tt.value, tt.tag)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
