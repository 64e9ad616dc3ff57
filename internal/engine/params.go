package engine

import (
	"errors"

	"github.com/Conceptual-Machines/chordgen-api/internal/models"
	"github.com/Conceptual-Machines/chordgen-api/internal/theory"
)

// Cadence selects the reserved closing degrees of a progression.
type Cadence int

const (
	CadenceAuthentic Cadence = iota
	CadenceHalf
	CadencePlagal
	CadenceDeceptive
	CadenceNone
)

var cadenceNames = [...]string{"authentic", "half", "plagal", "deceptive", "none"}

var cadenceAliases = map[string]Cadence{
	"strong": CadenceAuthentic,
}

// Tail returns the reserved degrees that end a progression of two or more bars.
func (c Cadence) Tail() []int {
	switch c {
	case CadenceAuthentic:
		return []int{5, 1}
	case CadenceHalf:
		return []int{5}
	case CadencePlagal:
		return []int{4, 1}
	case CadenceDeceptive:
		return []int{5, 6}
	case CadenceNone:
		return nil
	}
	panic("engine: unknown cadence")
}

func (c Cadence) String() string { return enumName(cadenceNames[:], int(c)) }

// Voicing selects how chord tones are spread across octaves.
type Voicing int

const (
	VoicingClose Voicing = iota
	VoicingOpen
	VoicingDrop2
)

var voicingNames = [...]string{"close", "open", "drop-2"}

var voicingAliases = map[string]Voicing{
	"drop2": VoicingDrop2,
}

func (v Voicing) String() string { return enumName(voicingNames[:], int(v)) }

// InversionPolicy selects the inversion of each chord.
type InversionPolicy int

const (
	InversionRootOnly InversionPolicy = iota
	InversionFree
	InversionPattern
	InversionSmooth
)

var inversionNames = [...]string{"root-position-only", "free", "specific-pattern", "smooth"}

var inversionAliases = map[string]InversionPolicy{
	"root":    InversionRootOnly,
	"random":  InversionFree,
	"pattern": InversionPattern,
}

func (p InversionPolicy) String() string { return enumName(inversionNames[:], int(p)) }

// Playback selects how note events are laid out. PlaybackNone emits no events.
type Playback int

const (
	PlaybackNone Playback = iota
	PlaybackSimultaneous
	PlaybackArpeggio
)

var playbackNames = [...]string{"", "simultaneous", "arpeggio"}

func (p Playback) String() string { return enumName(playbackNames[:], int(p)) }

// Params is a validated engine request.
type Params struct {
	Key       theory.Key
	Bars      int
	Seed      *int64
	Cadence   Cadence
	Sevenths  bool
	Voicing   Voicing
	Inversion InversionPolicy
	Playback  Playback
}

// ParseRequest validates req in the fixed order key, scale, bars, cadence,
// voicing, inversion, playback and returns the first failure.
func ParseRequest(req models.EngineRequest, maxBars int) (Params, error) {
	var p Params

	key, err := theory.NewKey(req.Key, req.Scale)
	if err != nil {
		if errors.Is(err, theory.ErrInvalidKey) {
			return p, newError(KindInvalidKey, err, "unknown key %q", req.Key)
		}
		return p, newError(KindInvalidScale, err, "unknown scale %q", req.Scale)
	}
	p.Key = key

	if req.Bars < 1 || req.Bars > maxBars {
		return p, newError(KindInvalidBars, nil, "bars must be between 1 and %d, got %d", maxBars, req.Bars)
	}
	p.Bars = req.Bars

	if p.Cadence, err = parseEnum(req.Cadence, cadenceNames[:], cadenceAliases); err != nil {
		return p, newError(KindInvalidCadence, err, "unknown cadence %q", req.Cadence)
	}
	if p.Voicing, err = parseEnum(req.Voicing, voicingNames[:], voicingAliases); err != nil {
		return p, newError(KindInvalidVoicing, err, "unknown voicing %q", req.Voicing)
	}
	if p.Inversion, err = parseEnum(req.Inversion, inversionNames[:], inversionAliases); err != nil {
		return p, newError(KindInvalidInversion, err, "unknown inversion policy %q", req.Inversion)
	}
	if p.Playback, err = parseEnum[Playback](req.Playback, playbackNames[:], nil); err != nil {
		return p, newError(KindInvalidPlayback, err, "unknown playback %q", req.Playback)
	}

	p.Seed = req.Seed
	p.Sevenths = req.Sevenths
	return p, nil
}

// Request returns the normalised request echoed back to callers.
func (p Params) Request(seed int64) models.EngineRequest {
	return models.EngineRequest{
		Key:       p.Key.Tonic.String(),
		Scale:     p.Key.Scale.String(),
		Bars:      p.Bars,
		Seed:      &seed,
		Cadence:   p.Cadence.String(),
		Sevenths:  p.Sevenths,
		Voicing:   p.Voicing.String(),
		Inversion: p.Inversion.String(),
		Playback:  p.Playback.String(),
	}
}

// CadenceNames, VoicingNames, InversionNames and PlaybackNames list the
// canonical identifiers accepted by ParseRequest.
func CadenceNames() []string   { return append([]string(nil), cadenceNames[:]...) }
func VoicingNames() []string   { return append([]string(nil), voicingNames[:]...) }
func InversionNames() []string { return append([]string(nil), inversionNames[:]...) }
func PlaybackNames() []string  { return append([]string(nil), playbackNames[1:]...) }

var errUnknownID = errors.New("unknown identifier")

func parseEnum[T ~int](id string, names []string, aliases map[string]T) (T, error) {
	norm := theory.NormalizeID(id)
	for i, name := range names {
		if name == norm {
			return T(i), nil
		}
	}
	if v, ok := aliases[norm]; ok {
		return v, nil
	}
	return 0, errUnknownID
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}
