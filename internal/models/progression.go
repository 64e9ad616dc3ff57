package models

// EngineRequest is the input contract of the progression engine.
type EngineRequest struct {
	Key       string `json:"key"`                // Tonic pitch class name (C, F#, Eb...)
	Scale     string `json:"scale"`              // Scale identifier (major, natural-minor, dorian...)
	Bars      int    `json:"bars"`               // Number of bars, one chord per bar
	Seed      *int64 `json:"seed,omitempty"`     // Optional seed for reproducibility
	Cadence   string `json:"cadence"`            // authentic, half, plagal, deceptive, none
	Sevenths  bool   `json:"sevenths"`           // Use seventh chords throughout
	Voicing   string `json:"voicing"`            // close, open, drop-2
	Inversion string `json:"inversion"`          // root-position-only, free, specific-pattern, smooth
	Playback  string `json:"playback,omitempty"` // Optional: simultaneous, arpeggio (adds note events)
}

// ChordDescriptor is one fully realised and voiced chord of a progression.
type ChordDescriptor struct {
	Bar        int      `json:"bar"`
	Degree     int      `json:"degree"`
	Roman      string   `json:"roman"`
	Root       string   `json:"root"`
	RootPC     int      `json:"root_pc"`
	Quality    string   `json:"quality"`
	Symbol     string   `json:"symbol"`
	Seventh    bool     `json:"seventh"`
	Inversion  int      `json:"inversion"`
	Notes      []string `json:"notes"`
	Pitches    []int    `json:"pitches"`
	PitchNames []string `json:"pitch_names"`
}

// EngineResponse is the output contract of the progression engine. On
// success OK is true and Seed, Request and Chords are set; on failure OK is
// false and Error carries the failure kind.
type EngineResponse struct {
	OK       bool              `json:"ok"`
	Seed     *int64            `json:"seed,omitempty"`
	Request  *EngineRequest    `json:"request,omitempty"`
	Summary  string            `json:"summary,omitempty"`
	Chords   []ChordDescriptor `json:"chords,omitempty"`
	Timeline []ChordEvent      `json:"timeline,omitempty"`
	Events   []NoteEvent       `json:"events,omitempty"`

	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
