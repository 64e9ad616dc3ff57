package engine

import "github.com/Conceptual-Machines/chordgen-api/internal/theory"

// Step is one planned bar: a scale degree and whether it carries a seventh.
type Step struct {
	Degree      int
	UsesSeventh bool
}

// Plan picks one degree per bar. The cadence tail occupies the last bars; the
// free bars before it draw, in bar order, from the degrees not in the tail.
// A single bar is always the tonic.
func Plan(bars int, cadence Cadence, sevenths bool, src *Source) []Step {
	steps := make([]Step, bars)
	if bars == 1 {
		steps[0] = Step{Degree: 1, UsesSeventh: sevenths}
		return steps
	}

	tail := cadence.Tail()
	eligible := eligibleDegrees(tail)
	free := bars - len(tail)

	for i := 0; i < free; i++ {
		steps[i] = Step{Degree: eligible[src.Choose(len(eligible))], UsesSeventh: sevenths}
	}
	for i, degree := range tail {
		steps[free+i] = Step{Degree: degree, UsesSeventh: sevenths}
	}
	return steps
}

func eligibleDegrees(tail []int) []int {
	reserved := make(map[int]bool, len(tail))
	for _, d := range tail {
		reserved[d] = true
	}
	eligible := make([]int, 0, theory.DegreeCount)
	for d := 1; d <= theory.DegreeCount; d++ {
		if !reserved[d] {
			eligible = append(eligible, d)
		}
	}
	return eligible
}
