package theory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned when a tonic name cannot be parsed as a pitch class.
var ErrInvalidKey = errors.New("theory: invalid key")

// PitchClass is one of the twelve tones modulo octave (C = 0 ... B = 11).
type PitchClass int

const pitchClassCount = 12

// Sharp spelling is used for every rendered name; enharmonic spelling does not
// affect computation.
var sharpNames = [pitchClassCount]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// Natural note semitone offsets from C
var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParsePitchClass parses a note name like "C", "f#", "Eb", "B♭".
// Format: <letter A-G, any case><optional accidental: # b ♯ ♭>
func ParsePitchClass(name string) (PitchClass, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, fmt.Errorf("%w: empty name", ErrInvalidKey)
	}

	letter := strings.ToUpper(s[:1])[0]
	offset, ok := letterOffsets[letter]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, name)
	}

	switch rest := s[1:]; rest {
	case "":
	case "#", "♯":
		offset++
	case "b", "♭":
		offset--
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, name)
	}

	return PitchClass(mod12(offset)), nil
}

// Transpose returns the pitch class the given number of semitones above p.
func (p PitchClass) Transpose(semitones int) PitchClass {
	return PitchClass(mod12(int(p) + semitones))
}

func (p PitchClass) String() string {
	return sharpNames[mod12(int(p))]
}

// PitchClassNames lists the canonical (sharp) spelling of all twelve pitch classes.
func PitchClassNames() []string {
	names := make([]string, pitchClassCount)
	copy(names, sharpNames[:])
	return names
}

// PitchName renders a MIDI note number in scientific pitch notation (60 = "C4").
func PitchName(midi int) string {
	octave := floorDiv(midi, pitchClassCount) - 1
	return fmt.Sprintf("%s%d", PitchClass(mod12(midi)), octave)
}

func mod12(n int) int {
	return ((n % pitchClassCount) + pitchClassCount) % pitchClassCount
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
