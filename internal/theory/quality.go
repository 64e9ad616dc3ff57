package theory

import (
	"fmt"
	"strings"
)

// Quality is the interval structure of a chord built on a scale degree.
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented
	QualityDominantSeventh
	QualityMajorSeventh
	QualityMinorSeventh
	QualityHalfDiminishedSeventh
	QualityDiminishedSeventh
	QualityMinorMajorSeventh
	QualityAugmentedMajorSeventh
)

type qualityDef struct {
	name      string
	intervals []int // semitones above the root, chord tone order
	suffix    string
	romanMark string
	lowerCase bool
}

var qualityDefs = [...]qualityDef{
	QualityMajor:                 {"major", []int{0, 4, 7}, "", "", false},
	QualityMinor:                 {"minor", []int{0, 3, 7}, "m", "", true},
	QualityDiminished:            {"diminished", []int{0, 3, 6}, "dim", "°", true},
	QualityAugmented:             {"augmented", []int{0, 4, 8}, "aug", "+", false},
	QualityDominantSeventh:       {"dominant-seventh", []int{0, 4, 7, 10}, "7", "7", false},
	QualityMajorSeventh:          {"major-seventh", []int{0, 4, 7, 11}, "maj7", "maj7", false},
	QualityMinorSeventh:          {"minor-seventh", []int{0, 3, 7, 10}, "m7", "7", true},
	QualityHalfDiminishedSeventh: {"half-diminished-seventh", []int{0, 3, 6, 10}, "m7b5", "ø7", true},
	QualityDiminishedSeventh:     {"diminished-seventh", []int{0, 3, 6, 9}, "dim7", "°7", true},
	QualityMinorMajorSeventh:     {"minor-major-seventh", []int{0, 3, 7, 11}, "m(maj7)", "(maj7)", true},
	QualityAugmentedMajorSeventh: {"augmented-major-seventh", []int{0, 4, 8, 11}, "aug(maj7)", "+maj7", false},
}

// stackKey identifies an interval stack above a root: third, fifth and
// (for seventh chords) seventh, in semitones. seventh is -1 for triads.
type stackKey struct {
	third, fifth, seventh int
}

var qualityByStack = map[stackKey]Quality{
	{4, 7, -1}: QualityMajor,
	{3, 7, -1}: QualityMinor,
	{3, 6, -1}: QualityDiminished,
	{4, 8, -1}: QualityAugmented,
	{4, 7, 11}: QualityMajorSeventh,
	{4, 7, 10}: QualityDominantSeventh,
	{3, 7, 10}: QualityMinorSeventh,
	{3, 6, 10}: QualityHalfDiminishedSeventh,
	{3, 6, 9}:  QualityDiminishedSeventh,
	{3, 7, 11}: QualityMinorMajorSeventh,
	{4, 8, 11}: QualityAugmentedMajorSeventh,
}

func qualityFromStack(third, fifth, seventh int) (Quality, error) {
	q, ok := qualityByStack[stackKey{third, fifth, seventh}]
	if !ok {
		return 0, fmt.Errorf("theory: no chord quality for stack (%d, %d, %d)", third, fifth, seventh)
	}
	return q, nil
}

// Intervals returns the semitone offsets of each chord tone above the root.
func (q Quality) Intervals() []int {
	src := qualityDefs[q].intervals
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// Size is the number of distinct chord tones (3 for triads, 4 for sevenths).
func (q Quality) Size() int {
	return len(qualityDefs[q].intervals)
}

// HasSeventh reports whether the quality is a four-note seventh chord.
func (q Quality) HasSeventh() bool {
	return q.Size() == 4
}

// Symbol renders a lead-sheet chord symbol such as "G7" or "Bm7b5".
func (q Quality) Symbol(root PitchClass) string {
	return root.String() + qualityDefs[q].suffix
}

func (q Quality) String() string {
	if int(q) < 0 || int(q) >= len(qualityDefs) {
		return "unknown"
	}
	return qualityDefs[q].name
}

// Roman renders the roman numeral of a chord of quality q on the given scale
// degree (1-based), e.g. "V7", "ii", "vii°", "III+".
func Roman(degree int, q Quality) string {
	numerals := [DegreeCount]string{"I", "II", "III", "IV", "V", "VI", "VII"}
	if degree < 1 || degree > DegreeCount {
		return "?"
	}
	numeral := numerals[degree-1]
	def := qualityDefs[q]
	if def.lowerCase {
		numeral = strings.ToLower(numeral)
	}
	return numeral + def.romanMark
}
