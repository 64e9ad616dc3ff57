package models

// TheoryCatalog lists every identifier the engine accepts.
type TheoryCatalog struct {
	Keys       []string `json:"keys"`
	Scales     []string `json:"scales"`
	Cadences   []string `json:"cadences"`
	Voicings   []string `json:"voicings"`
	Inversions []string `json:"inversions"`
	Playback   []string `json:"playback"`
}

// DiatonicChordDescriptor is one row of a diatonic chord table.
type DiatonicChordDescriptor struct {
	Degree  int      `json:"degree"`
	Roman   string   `json:"roman"`
	Root    string   `json:"root"`
	Quality string   `json:"quality"`
	Symbol  string   `json:"symbol"`
	Notes   []string `json:"notes"`
}

// DiatonicTable is the chord built on each degree of a key.
type DiatonicTable struct {
	Key      string                    `json:"key"`
	Scale    string                    `json:"scale"`
	Sevenths bool                      `json:"sevenths"`
	Chords   []DiatonicChordDescriptor `json:"chords"`
}
