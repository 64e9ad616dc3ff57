package engine

import (
	"fmt"

	"github.com/Conceptual-Machines/chordgen-api/internal/models"
)

const (
	beatsPerBar     = 4.0
	arpeggioStep    = 0.25
	defaultVelocity = 90

	maxArpeggioSpread = 1.0
)

// ScheduleOptions shapes the note events of a progression.
type ScheduleOptions struct {
	// ArpeggioSpread is the gap in beats between successive arpeggio notes.
	ArpeggioSpread float64
	// NoteLength is how long each note is held, in beats from its own start.
	// Zero holds every note to the end of its bar.
	NoteLength float64
	// Velocity is the MIDI velocity of every note.
	Velocity int
}

// DefaultSchedule is used unless an Engine is built WithSchedule.
var DefaultSchedule = ScheduleOptions{
	ArpeggioSpread: arpeggioStep,
	NoteLength:     0,
	Velocity:       defaultVelocity,
}

// Validate reports the first out-of-range field.
func (o ScheduleOptions) Validate() error {
	if !(o.ArpeggioSpread >= 0 && o.ArpeggioSpread <= maxArpeggioSpread) {
		return fmt.Errorf("arpeggio spread must be between 0 and %g beats, got %g", maxArpeggioSpread, o.ArpeggioSpread)
	}
	if !(o.NoteLength >= 0 && o.NoteLength <= beatsPerBar) {
		return fmt.Errorf("note length must be between 0 and %g beats, got %g", beatsPerBar, o.NoteLength)
	}
	if o.Velocity < 1 || o.Velocity > 127 {
		return fmt.Errorf("velocity must be between 1 and 127, got %d", o.Velocity)
	}
	return nil
}

// Timeline places one chord symbol per bar on a 4/4 grid.
func Timeline(chords []Chord) []models.ChordEvent {
	events := make([]models.ChordEvent, 0, len(chords))
	for _, c := range chords {
		events = append(events, models.ChordEvent{
			ChordSymbol:   c.Symbol,
			StartBeats:    float64(c.Bar) * beatsPerBar,
			DurationBeats: beatsPerBar,
		})
	}
	return events
}

// Schedule converts voiced chords into note events. PlaybackNone yields nil.
// The layout depends only on its arguments and consumes no randomness.
func Schedule(chords []Chord, playback Playback, opts ScheduleOptions) []models.NoteEvent {
	if playback == PlaybackNone {
		return nil
	}

	var events []models.NoteEvent
	for _, c := range chords {
		barStart := float64(c.Bar) * beatsPerBar
		for i, pitch := range c.Pitches {
			offset := 0.0
			if playback == PlaybackArpeggio {
				offset = float64(i) * opts.ArpeggioSpread
			}
			duration := beatsPerBar - offset
			if opts.NoteLength > 0 {
				duration = opts.NoteLength
			}
			events = append(events, models.NoteEvent{
				MidiNoteNumber: pitch,
				Velocity:       opts.Velocity,
				StartBeats:     barStart + offset,
				DurationBeats:  duration,
			})
		}
	}
	return events
}
