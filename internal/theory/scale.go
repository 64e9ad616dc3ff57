package theory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidScale is returned for unrecognised scale identifiers.
var ErrInvalidScale = errors.New("theory: invalid scale")

// Scale identifies one of the supported seven-note scales.
type Scale int

const (
	ScaleMajor Scale = iota
	ScaleNaturalMinor
	ScaleHarmonicMinor
	ScaleMelodicMinor
	ScaleDorian
	ScalePhrygian
	ScaleLydian
	ScaleMixolydian
	ScaleLocrian
)

// DegreeCount is the number of degrees in every supported scale.
const DegreeCount = 7

type scaleDef struct {
	name    string
	offsets [DegreeCount]int
}

var scaleDefs = [...]scaleDef{
	ScaleMajor:         {"major", [DegreeCount]int{0, 2, 4, 5, 7, 9, 11}},
	ScaleNaturalMinor:  {"natural-minor", [DegreeCount]int{0, 2, 3, 5, 7, 8, 10}},
	ScaleHarmonicMinor: {"harmonic-minor", [DegreeCount]int{0, 2, 3, 5, 7, 8, 11}},
	ScaleMelodicMinor:  {"melodic-minor", [DegreeCount]int{0, 2, 3, 5, 7, 9, 11}},
	ScaleDorian:        {"dorian", [DegreeCount]int{0, 2, 3, 5, 7, 9, 10}},
	ScalePhrygian:      {"phrygian", [DegreeCount]int{0, 1, 3, 5, 7, 8, 10}},
	ScaleLydian:        {"lydian", [DegreeCount]int{0, 2, 4, 6, 7, 9, 11}},
	ScaleMixolydian:    {"mixolydian", [DegreeCount]int{0, 2, 4, 5, 7, 9, 10}},
	ScaleLocrian:       {"locrian", [DegreeCount]int{0, 1, 3, 5, 6, 8, 10}},
}

var scaleAliases = map[string]Scale{
	"ionian":  ScaleMajor,
	"minor":   ScaleNaturalMinor,
	"aeolian": ScaleNaturalMinor,
}

// ParseScale parses a scale identifier. Matching ignores case and treats
// underscores and spaces as hyphens.
func ParseScale(id string) (Scale, error) {
	norm := NormalizeID(id)
	for i, def := range scaleDefs {
		if def.name == norm {
			return Scale(i), nil
		}
	}
	if s, ok := scaleAliases[norm]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidScale, id)
}

// Offsets returns the ascending semitone offsets of the scale from its tonic.
func (s Scale) Offsets() [DegreeCount]int {
	return scaleDefs[s].offsets
}

func (s Scale) String() string {
	if int(s) < 0 || int(s) >= len(scaleDefs) {
		return "unknown"
	}
	return scaleDefs[s].name
}

// ScaleNames lists the canonical identifiers of every supported scale.
func ScaleNames() []string {
	names := make([]string, len(scaleDefs))
	for i, def := range scaleDefs {
		names[i] = def.name
	}
	return names
}

// NormalizeID lower-cases an identifier and maps "_" and " " to "-".
func NormalizeID(id string) string {
	s := strings.ToLower(strings.TrimSpace(id))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}
