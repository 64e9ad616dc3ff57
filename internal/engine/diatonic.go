package engine

import (
	"errors"

	"github.com/Conceptual-Machines/chordgen-api/internal/models"
	"github.com/Conceptual-Machines/chordgen-api/internal/theory"
)

// DiatonicTable builds the chord table of a key. Failures are engine errors
// of kind InvalidKey or InvalidScale.
func DiatonicTable(key, scale string, sevenths bool) (models.DiatonicTable, error) {
	k, err := theory.NewKey(key, scale)
	if err != nil {
		if errors.Is(err, theory.ErrInvalidKey) {
			return models.DiatonicTable{}, newError(KindInvalidKey, err, "unknown key %q", key)
		}
		return models.DiatonicTable{}, newError(KindInvalidScale, err, "unknown scale %q", scale)
	}

	chords, err := k.DiatonicChords(sevenths)
	if err != nil {
		return models.DiatonicTable{}, newError(KindInternal, err, "diatonic chords of %s: %v", k, err)
	}

	table := models.DiatonicTable{
		Key:      k.Tonic.String(),
		Scale:    k.Scale.String(),
		Sevenths: sevenths,
		Chords:   make([]models.DiatonicChordDescriptor, len(chords)),
	}
	for i, dc := range chords {
		table.Chords[i] = models.DiatonicChordDescriptor{
			Degree:  dc.Degree,
			Roman:   dc.Roman,
			Root:    dc.Root.String(),
			Quality: dc.Quality.String(),
			Symbol:  dc.Symbol,
			Notes:   noteNames(dc.Tones),
		}
	}
	return table, nil
}

func noteNames(tones []theory.PitchClass) []string {
	names := make([]string, len(tones))
	for i, t := range tones {
		names[i] = t.String()
	}
	return names
}
