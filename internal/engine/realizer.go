package engine

import (
	"fmt"

	"github.com/Conceptual-Machines/chordgen-api/internal/theory"
)

// specificPattern is the inversion cycle used by InversionPattern, by bar index.
var specificPattern = []int{0, 1}

// noteCountPenalty is added to the smooth-voicing cost for every note one chord
// has that the other lacks.
const noteCountPenalty = 50

// Chord is a realised and voiced chord of a progression.
type Chord struct {
	Bar       int
	Degree    int
	Root      theory.PitchClass
	Quality   theory.Quality
	Roman     string
	Symbol    string
	Tones     []theory.PitchClass
	Inversion int
	Pitches   []int
}

// Realize builds the diatonic chord for each step, picks its inversion and
// voices it. Free inversions are drawn in bar order after every planner draw.
func Realize(key theory.Key, steps []Step, policy InversionPolicy, voicing Voicing, src *Source) ([]Chord, error) {
	chords := make([]Chord, len(steps))
	for i, step := range steps {
		dc, err := key.Chord(step.Degree, step.UsesSeventh)
		if err != nil {
			return nil, fmt.Errorf("realize bar %d: %w", i, err)
		}
		chords[i] = Chord{
			Bar:     i,
			Degree:  dc.Degree,
			Root:    dc.Root,
			Quality: dc.Quality,
			Roman:   dc.Roman,
			Symbol:  dc.Symbol,
			Tones:   dc.Tones,
		}
	}

	for i := range chords {
		c := &chords[i]
		switch policy {
		case InversionRootOnly:
			c.Inversion = 0
		case InversionFree:
			c.Inversion = src.Choose(len(c.Tones))
		case InversionPattern:
			c.Inversion = specificPattern[i%len(specificPattern)] % len(c.Tones)
		case InversionSmooth:
			if i > 0 {
				c.Inversion = smoothestInversion(chords[i-1].Pitches, c.Tones, voicing)
			}
		default:
			return nil, fmt.Errorf("realize: unknown inversion policy %d", policy)
		}
		c.Pitches = Voice(c.Tones, c.Inversion, voicing)
	}
	return chords, nil
}

func smoothestInversion(prev []int, tones []theory.PitchClass, voicing Voicing) int {
	best, bestCost := 0, -1
	for inv := range tones {
		cost := voiceDistance(prev, Voice(tones, inv, voicing))
		if bestCost < 0 || cost < bestCost {
			best, bestCost = inv, cost
		}
	}
	return best
}

// voiceDistance compares two ascending pitch lists position by position.
func voiceDistance(a, b []int) int {
	n := min(len(a), len(b))
	total := 0
	for i := range n {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		total += d
	}
	extra := len(a) - len(b)
	if extra < 0 {
		extra = -extra
	}
	return total + extra*noteCountPenalty
}
