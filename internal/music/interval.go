// Package music implements the small amount of tonal theory the drills
// depend on: interval labels, their canonical quality/number form, semitone
// arithmetic and enharmonically correct pitch transposition.
package music

import (
	"fmt"
)

// Direction describes the temporal layout of an interval's two notes.
type Direction string

const (
	DirectionAscending  Direction = "asc"
	DirectionDescending Direction = "desc"
	DirectionHarmonic   Direction = "harm"
)

// Directions lists every playable direction, in presentation order.
var Directions = []Direction{DirectionAscending, DirectionDescending, DirectionHarmonic}

func (d Direction) Valid() bool {
	switch d {
	case DirectionAscending, DirectionDescending, DirectionHarmonic:
		return true
	}
	return false
}

func (d Direction) String() string {
	return string(d)
}

// Quality is an interval quality: minor, major, perfect or augmented.
type Quality string

const (
	QualityMinor     Quality = "m"
	QualityMajor     Quality = "M"
	QualityPerfect   Quality = "P"
	QualityAugmented Quality = "A"
)

// Interval is the canonical quality+number representation of an interval.
// The tritone is represented as an augmented fourth and the octave as a
// perfect octave.
type Interval struct {
	Quality Quality `json:"quality"`
	Number  int     `json:"number"`
}

// String returns the canonical wire form, number first: "3m", "4A", "5P".
// This form doubles as the heat-map key component.
func (iv Interval) String() string {
	return fmt.Sprintf("%d%s", iv.Number, iv.Quality)
}

// Label is a human-readable interval name as shown on answer buttons.
type Label string

const (
	LabelMinorSecond   Label = "m2"
	LabelMajorSecond   Label = "M2"
	LabelMinorThird    Label = "m3"
	LabelMajorThird    Label = "M3"
	LabelPerfectFourth Label = "P4"
	LabelTritone       Label = "TT"
	LabelPerfectFifth  Label = "P5"
	LabelMinorSixth    Label = "m6"
	LabelMajorSixth    Label = "M6"
	LabelMinorSeventh  Label = "m7"
	LabelMajorSeventh  Label = "M7"
	LabelPerfectOctave Label = "P8"
)

// Labels lists all twelve answerable labels, in ascending semitone order.
var Labels = []Label{
	LabelMinorSecond,
	LabelMajorSecond,
	LabelMinorThird,
	LabelMajorThird,
	LabelPerfectFourth,
	LabelTritone,
	LabelPerfectFifth,
	LabelMinorSixth,
	LabelMajorSixth,
	LabelMinorSeventh,
	LabelMajorSeventh,
	LabelPerfectOctave,
}

// labelIntervals is the total, injective label → canonical interval mapping.
var labelIntervals = map[Label]Interval{
	LabelMinorSecond:   {QualityMinor, 2},
	LabelMajorSecond:   {QualityMajor, 2},
	LabelMinorThird:    {QualityMinor, 3},
	LabelMajorThird:    {QualityMajor, 3},
	LabelPerfectFourth: {QualityPerfect, 4},
	LabelTritone:       {QualityAugmented, 4},
	LabelPerfectFifth:  {QualityPerfect, 5},
	LabelMinorSixth:    {QualityMinor, 6},
	LabelMajorSixth:    {QualityMajor, 6},
	LabelMinorSeventh:  {QualityMinor, 7},
	LabelMajorSeventh:  {QualityMajor, 7},
	LabelPerfectOctave: {QualityPerfect, 8},
}

func (l Label) Valid() bool {
	_, ok := labelIntervals[l]
	return ok
}

// Interval returns the canonical interval a label stands for. The mapping is
// total over the closed label enum; unknown labels return the zero Interval.
func (l Label) Interval() Interval {
	return labelIntervals[l]
}

// LabelFor returns the label whose canonical form equals iv.
func LabelFor(iv Interval) (Label, bool) {
	for _, l := range Labels {
		if labelIntervals[l] == iv {
			return l, true
		}
	}
	return "", false
}

// ParseInterval parses the canonical wire form ("3m", "4A", "5P", "8P") back
// into an Interval.
func ParseInterval(s string) (Interval, error) {
	if len(s) != 2 {
		return Interval{}, fmt.Errorf("music: malformed interval %q", s)
	}
	number := int(s[0] - '0')
	quality := Quality(s[1])
	iv := Interval{Quality: quality, Number: number}
	if _, ok := LabelFor(iv); !ok {
		return Interval{}, fmt.Errorf("music: unknown interval %q", s)
	}
	return iv, nil
}

// semitoneSpans maps each answerable interval to its span in semitones.
var semitoneSpans = map[Interval]int{
	{QualityMinor, 2}:     1,
	{QualityMajor, 2}:     2,
	{QualityMinor, 3}:     3,
	{QualityMajor, 3}:     4,
	{QualityPerfect, 4}:   5,
	{QualityAugmented, 4}: 6,
	{QualityPerfect, 5}:   7,
	{QualityMinor, 6}:     8,
	{QualityMajor, 6}:     9,
	{QualityMinor, 7}:     10,
	{QualityMajor, 7}:     11,
	{QualityPerfect, 8}:   12,
}

// Semitones returns the interval's span in semitones (1..12).
func (iv Interval) Semitones() int {
	return semitoneSpans[iv]
}

// IsSame reports whether two canonical intervals are the same interval.
func IsSame(a, b Interval) bool {
	return a == b
}
