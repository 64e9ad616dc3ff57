package engine

import (
	"slices"

	"github.com/Conceptual-Machines/chordgen-api/internal/theory"
)

// ReferencePitch is the MIDI note the bass is voiced from (C3).
const ReferencePitch = 48

// Voice turns chord tones into ascending MIDI pitches. The tones are rotated
// left by inversion so the bass tone leads, stacked in close position above
// ReferencePitch, then spread according to style.
func Voice(tones []theory.PitchClass, inversion int, style Voicing) []int {
	n := len(tones)
	if n == 0 {
		return nil
	}
	inversion = ((inversion % n) + n) % n

	pitches := make([]int, n)
	prev := ReferencePitch - 1
	for i := range n {
		pc := int(tones[(i+inversion)%n])
		if i == 0 {
			pitches[0] = ReferencePitch + pc
		} else {
			pitches[i] = nextAbove(prev, pc)
		}
		prev = pitches[i]
	}

	switch style {
	case VoicingClose:
	case VoicingOpen:
		for i := 1; i < n-1; i++ {
			pitches[i] += 12
		}
		slices.Sort(pitches)
	case VoicingDrop2:
		if n >= 2 {
			pitches[n-2] -= 12
		}
		slices.Sort(pitches)
	default:
		panic("engine: unknown voicing " + style.String())
	}
	return pitches
}

// nextAbove returns the lowest pitch of class pc strictly above prev.
func nextAbove(prev, pc int) int {
	up := ((pc-prev)%12 + 12) % 12
	if up == 0 {
		up = 12
	}
	return prev + up
}
