package music

import (
	"fmt"
	"strings"
)

// Keys lists the seven natural-letter major keys prompts are drawn from.
var Keys = []string{"C", "D", "E", "F", "G", "A", "B"}

// ValidKey reports whether k is one of the seven natural major keys.
func ValidKey(k string) bool {
	for _, key := range Keys {
		if key == k {
			return true
		}
	}
	return false
}

var letters = []byte{'C', 'D', 'E', 'F', 'G', 'A', 'B'}

// naturalSemitones holds each letter's semitone offset above C.
var naturalSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Pitch is a spelled pitch: a natural letter, an accidental offset in
// semitones (positive sharps, negative flats) and a scientific octave.
type Pitch struct {
	Letter     byte `json:"-"`
	Accidental int  `json:"-"`
	Octave     int  `json:"-"`
}

// NewPitch builds a natural pitch on the given key letter.
func NewPitch(key string, octave int) Pitch {
	return Pitch{Letter: key[0], Octave: octave}
}

// String renders scientific pitch notation, e.g. "C4", "F#3", "Bb4".
func (p Pitch) String() string {
	var accidental string
	if p.Accidental > 0 {
		accidental = strings.Repeat("#", p.Accidental)
	} else if p.Accidental < 0 {
		accidental = strings.Repeat("b", -p.Accidental)
	}
	return fmt.Sprintf("%c%s%d", p.Letter, accidental, p.Octave)
}

// MarshalJSON renders pitches as their scientific notation string, which is
// the form audio plans carry on the wire.
func (p Pitch) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// Midi returns the MIDI note number of the pitch (C4 = 60).
func (p Pitch) Midi() int {
	return (p.Octave+1)*12 + naturalSemitones[p.Letter] + p.Accidental
}

// letterIndex returns the position of the pitch letter within C..B.
func letterIndex(letter byte) int {
	for i, l := range letters {
		if l == letter {
			return i
		}
	}
	return 0
}

// Transpose moves the pitch by the given interval, upward or downward,
// keeping the spelling consistent with the interval's number: the letter
// moves by (number-1) scale degrees and the accidental absorbs the
// difference between the natural span and the interval's semitone span.
func (p Pitch) Transpose(iv Interval, up bool) Pitch {
	degrees := iv.Number - 1
	semitones := iv.Semitones()
	if !up {
		degrees = -degrees
		semitones = -semitones
	}

	fromIdx := letterIndex(p.Letter)
	toIdx := fromIdx + degrees
	octave := p.Octave
	for toIdx < 0 {
		toIdx += 7
		octave--
	}
	for toIdx >= 7 {
		toIdx -= 7
		octave++
	}
	toLetter := letters[toIdx]

	fromAbs := p.Octave*12 + naturalSemitones[p.Letter] + p.Accidental
	targetAbs := fromAbs + semitones
	naturalAbs := octave*12 + naturalSemitones[toLetter]

	return Pitch{
		Letter:     toLetter,
		Accidental: targetAbs - naturalAbs,
		Octave:     octave,
	}
}
