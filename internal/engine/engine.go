// Package engine generates deterministic diatonic chord progressions.
//
// A request is validated up front, then a single seeded Source drives the
// planner (degree choice) followed by the realizer (inversion choice). No
// other code consumes randomness, so an explicit seed always reproduces the
// same response.
package engine

import (
	"math/rand/v2"

	"github.com/Conceptual-Machines/chordgen-api/internal/models"
)

// DefaultMaxBars bounds the work of a single request.
const DefaultMaxBars = 256

// Engine is immutable after New and safe for concurrent use.
type Engine struct {
	maxBars  int
	seedFunc func() int64
	schedule ScheduleOptions
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxBars overrides DefaultMaxBars. Non-positive values are ignored.
func WithMaxBars(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxBars = n
		}
	}
}

// WithSeedFunc sets the function used to pick a seed when a request has none.
func WithSeedFunc(f func() int64) Option {
	return func(e *Engine) {
		if f != nil {
			e.seedFunc = f
		}
	}
}

// WithSchedule sets the note event layout. Options that fail Validate are ignored.
func WithSchedule(opts ScheduleOptions) Option {
	return func(e *Engine) {
		if opts.Validate() == nil {
			e.schedule = opts
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxBars:  DefaultMaxBars,
		seedFunc: randomSeed,
		schedule: DefaultSchedule,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxBars returns the largest accepted bar count.
func (e *Engine) MaxBars() int {
	return e.maxBars
}

// Result is a generated progression before it is rendered into a response.
type Result struct {
	Params Params
	Seed   int64
	Chords []Chord
	Draws  int
}

// Run validates req and generates its progression.
func (e *Engine) Run(req models.EngineRequest) (*Result, error) {
	params, err := ParseRequest(req, e.maxBars)
	if err != nil {
		return nil, err
	}

	var seed int64
	if params.Seed != nil {
		seed = *params.Seed
	} else {
		seed = e.seedFunc()
	}

	src := NewSource(seed)
	steps := Plan(params.Bars, params.Cadence, params.Sevenths, src)
	chords, err := Realize(params.Key, steps, params.Inversion, params.Voicing, src)
	if err != nil {
		return nil, newError(KindInternal, err, "realize progression: %v", err)
	}

	return &Result{Params: params, Seed: seed, Chords: chords, Draws: src.Draws()}, nil
}

// Generate runs req and renders the outcome, success or failure, as a response.
func (e *Engine) Generate(req models.EngineRequest) models.EngineResponse {
	res, err := e.Run(req)
	if err != nil {
		return AssembleError(err)
	}
	return Assemble(res.Params, res.Seed, res.Chords, e.schedule)
}

func randomSeed() int64 {
	return rand.Int64N(1 << 31)
}
