package engine

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/chordgen-api/internal/theory"
)

func chordTones(root theory.PitchClass, q theory.Quality) []theory.PitchClass {
	var tones []theory.PitchClass
	for _, iv := range q.Intervals() {
		tones = append(tones, root.Transpose(iv))
	}
	return tones
}

func TestVoice_Examples(t *testing.T) {
	cMajor := chordTones(0, theory.QualityMajor)
	cMaj7 := chordTones(0, theory.QualityMajorSeventh)

	tests := []struct {
		name      string
		tones     []theory.PitchClass
		inversion int
		style     Voicing
		expected  []int
	}{
		{"close root", cMajor, 0, VoicingClose, []int{48, 52, 55}},
		{"close first inversion", cMajor, 1, VoicingClose, []int{52, 55, 60}},
		{"close second inversion", cMajor, 2, VoicingClose, []int{55, 60, 64}},
		{"open root", cMajor, 0, VoicingOpen, []int{48, 55, 64}},
		{"open seventh", cMaj7, 0, VoicingOpen, []int{48, 59, 64, 67}},
		{"drop-2 triad", cMajor, 0, VoicingDrop2, []int{40, 48, 55}},
		{"drop-2 seventh", cMaj7, 0, VoicingDrop2, []int{43, 48, 52, 59}},
		{"close G7 third inversion", chordTones(7, theory.QualityDominantSeventh), 3, VoicingClose, []int{53, 55, 59, 62}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Voice(tt.tones, tt.inversion, tt.style))
		})
	}
}

func TestVoice_Totality(t *testing.T) {
	styles := []Voicing{VoicingClose, VoicingOpen, VoicingDrop2}

	for q := theory.QualityMajor; q <= theory.QualityAugmentedMajorSeventh; q++ {
		for root := theory.PitchClass(0); root < 12; root++ {
			tones := chordTones(root, q)
			for inv := range tones {
				for _, style := range styles {
					pitches := Voice(tones, inv, style)

					require.Len(t, pitches, q.Size(), "%s inv %d %s", q.Symbol(root), inv, style)
					assert.True(t, slices.IsSorted(pitches), "%s inv %d %s: %v", q.Symbol(root), inv, style, pitches)
					assert.Len(t, slices.Compact(slices.Clone(pitches)), len(pitches), "duplicate pitch in %v", pitches)

					var classes []theory.PitchClass
					for _, p := range pitches {
						classes = append(classes, theory.PitchClass(p%12))
					}
					want := slices.Clone(tones)
					slices.Sort(want)
					slices.Sort(classes)
					assert.Equal(t, want, classes)

					if style != VoicingDrop2 {
						assert.Equal(t, ReferencePitch+int(tones[inv]), pitches[0], "%s inv %d %s: bass moved", q.Symbol(root), inv, style)
					}
					if style == VoicingClose {
						assert.Less(t, pitches[len(pitches)-1]-pitches[0], 12)
					}
				}
			}
		}
	}
}

func TestVoice_Empty(t *testing.T) {
	assert.Nil(t, Voice(nil, 0, VoicingClose))
}
