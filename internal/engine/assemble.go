package engine

import (
	"errors"
	"strings"

	"github.com/Conceptual-Machines/chordgen-api/internal/models"
	"github.com/Conceptual-Machines/chordgen-api/internal/theory"
)

// Assemble builds the success response for a generated progression.
func Assemble(p Params, seed int64, chords []Chord, sched ScheduleOptions) models.EngineResponse {
	descriptors := make([]models.ChordDescriptor, len(chords))
	symbols := make([]string, len(chords))
	for i, c := range chords {
		descriptors[i] = describe(c)
		symbols[i] = c.Symbol
	}

	req := p.Request(seed)
	return models.EngineResponse{
		OK:       true,
		Seed:     &seed,
		Request:  &req,
		Summary:  strings.Join(symbols, " | "),
		Chords:   descriptors,
		Timeline: Timeline(chords),
		Events:   Schedule(chords, p.Playback, sched),
	}
}

// AssembleError builds the failure response for err.
func AssembleError(err error) models.EngineResponse {
	resp := models.EngineResponse{OK: false, Error: string(KindOf(err))}
	var e *Error
	if errors.As(err, &e) {
		resp.Message = e.Message
	} else {
		resp.Message = err.Error()
	}
	return resp
}

func describe(c Chord) models.ChordDescriptor {
	names := make([]string, len(c.Pitches))
	for i, p := range c.Pitches {
		names[i] = theory.PitchName(p)
	}
	return models.ChordDescriptor{
		Bar:        c.Bar,
		Degree:     c.Degree,
		Roman:      c.Roman,
		Root:       c.Root.String(),
		RootPC:     int(c.Root),
		Quality:    c.Quality.String(),
		Symbol:     c.Symbol,
		Seventh:    c.Quality.HasSeventh(),
		Inversion:  c.Inversion,
		Notes:      noteNames(c.Tones),
		Pitches:    c.Pitches,
		PitchNames: names,
	}
}
