package engine

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/chordgen-api/internal/models"
	"github.com/Conceptual-Machines/chordgen-api/internal/theory"
)

func seedPtr(v int64) *int64 { return &v }

func baseRequest() models.EngineRequest {
	return models.EngineRequest{
		Key:       "C",
		Scale:     "major",
		Bars:      4,
		Seed:      seedPtr(42),
		Cadence:   "authentic",
		Sevenths:  false,
		Voicing:   "close",
		Inversion: "root-position-only",
	}
}

func TestGenerate_CMajorExample(t *testing.T) {
	resp := New().Generate(baseRequest())

	require.True(t, resp.OK, "unexpected failure: %s %s", resp.Error, resp.Message)
	require.Len(t, resp.Chords, 4)
	require.NotNil(t, resp.Seed)
	assert.Equal(t, int64(42), *resp.Seed)

	penultimate, last := resp.Chords[2], resp.Chords[3]

	assert.Equal(t, 5, penultimate.Degree)
	assert.Equal(t, "G", penultimate.Symbol)
	assert.Equal(t, "major", penultimate.Quality)
	assert.Equal(t, 0, penultimate.Inversion)
	assert.Equal(t, []int{55, 59, 62}, penultimate.Pitches)
	assert.Equal(t, []string{"G3", "B3", "D4"}, penultimate.PitchNames)

	assert.Equal(t, 1, last.Degree)
	assert.Equal(t, "C", last.Symbol)
	assert.Equal(t, 0, last.Inversion)
	assert.Equal(t, []int{48, 52, 55}, last.Pitches)

	assert.Contains(t, resp.Summary, "G | C")
	assert.Empty(t, resp.Events)
	assert.Len(t, resp.Timeline, 4)
}

func TestGenerate_InvalidBars(t *testing.T) {
	req := baseRequest()
	req.Bars = 0

	resp := New().Generate(req)

	assert.False(t, resp.OK)
	assert.Equal(t, "InvalidBars", resp.Error)
	assert.Equal(t, "bars must be between 1 and 256, got 0", resp.Message)
	assert.Empty(t, resp.Chords)
	assert.Nil(t, resp.Seed)
}

func TestGenerate_BarsAboveMax(t *testing.T) {
	req := baseRequest()
	req.Bars = 9

	resp := New(WithMaxBars(8)).Generate(req)

	assert.False(t, resp.OK)
	assert.Equal(t, "InvalidBars", resp.Error)
}

func TestGenerate_Determinism(t *testing.T) {
	e := New()
	req := baseRequest()
	req.Bars = 16
	req.Sevenths = true
	req.Inversion = "free"
	req.Voicing = "drop-2"
	req.Playback = "arpeggio"

	first, err := json.Marshal(e.Generate(req))
	require.NoError(t, err)
	second, err := json.Marshal(New().Generate(req))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGenerate_RepeatedSeedSameChords(t *testing.T) {
	req := baseRequest()
	req.Bars = 8
	req.Cadence = "none"

	a := New().Generate(req)
	b := New().Generate(req)

	require.True(t, a.OK)
	assert.Equal(t, a.Chords, b.Chords)
}

func TestGenerate_Properties(t *testing.T) {
	e := New()
	for _, scale := range theory.ScaleNames() {
		for _, cadence := range CadenceNames() {
			for _, sevenths := range []bool{false, true} {
				for bars := 1; bars <= 6; bars++ {
					req := models.EngineRequest{
						Key:       "Eb",
						Scale:     scale,
						Bars:      bars,
						Seed:      seedPtr(int64(bars * 7919)),
						Cadence:   cadence,
						Sevenths:  sevenths,
						Voicing:   "open",
						Inversion: "root-position-only",
					}
					resp := e.Generate(req)
					require.True(t, resp.OK, "%+v: %s", req, resp.Message)
					require.Len(t, resp.Chords, bars)

					key, err := theory.NewKey(req.Key, scale)
					require.NoError(t, err)

					for _, c := range resp.Chords {
						assert.True(t, key.Contains(theory.PitchClass(c.RootPC)), "root %s not in %s", c.Root, key)
						assert.Equal(t, sevenths, c.Seventh)
						assert.Equal(t, 0, c.Inversion)
					}

					if bars == 1 {
						assert.Equal(t, 1, resp.Chords[0].Degree)
						continue
					}

					c, err := parseEnum(cadence, cadenceNames[:], cadenceAliases)
					require.NoError(t, err)
					tail := c.Tail()
					for i, degree := range tail {
						got := resp.Chords[bars-len(tail)+i]
						assert.Equal(t, degree, got.Degree, "%s cadence in %d bars", cadence, bars)

						want, err := key.DiatonicQuality(degree, sevenths)
						require.NoError(t, err)
						assert.Equal(t, want.String(), got.Quality)
					}
				}
			}
		}
	}
}

func TestGenerate_SingleBarIsTonic(t *testing.T) {
	for _, cadence := range append(CadenceNames(), "strong") {
		req := baseRequest()
		req.Bars = 1
		req.Cadence = cadence

		resp := New().Generate(req)

		require.True(t, resp.OK, cadence)
		require.Len(t, resp.Chords, 1)
		assert.Equal(t, 1, resp.Chords[0].Degree, cadence)
		assert.Equal(t, "C", resp.Chords[0].Symbol, cadence)
	}
}

func TestGenerate_ValidationOrder(t *testing.T) {
	bad := models.EngineRequest{
		Key:       "H",
		Scale:     "blues",
		Bars:      0,
		Cadence:   "final",
		Voicing:   "spread",
		Inversion: "third",
		Playback:  "strum",
	}

	steps := []struct {
		fix  func(*models.EngineRequest)
		kind Kind
	}{
		{func(r *models.EngineRequest) {}, KindInvalidKey},
		{func(r *models.EngineRequest) { r.Key = "C" }, KindInvalidScale},
		{func(r *models.EngineRequest) { r.Scale = "major" }, KindInvalidBars},
		{func(r *models.EngineRequest) { r.Bars = 4 }, KindInvalidCadence},
		{func(r *models.EngineRequest) { r.Cadence = "plagal" }, KindInvalidVoicing},
		{func(r *models.EngineRequest) { r.Voicing = "open" }, KindInvalidInversion},
		{func(r *models.EngineRequest) { r.Inversion = "smooth" }, KindInvalidPlayback},
	}

	for _, step := range steps {
		step.fix(&bad)
		_, err := New().Run(bad)
		require.Error(t, err)
		assert.Equal(t, step.kind, KindOf(err))
	}

	bad.Playback = "simultaneous"
	_, err := New().Run(bad)
	assert.NoError(t, err)
}

func TestRun_ErrorsMatchSentinels(t *testing.T) {
	req := baseRequest()
	req.Cadence = "whatever"

	_, err := New().Run(req)

	assert.True(t, errors.Is(err, ErrInvalidCadence))
	assert.False(t, errors.Is(err, ErrInvalidVoicing))

	req = baseRequest()
	req.Key = "Q"
	_, err = New().Run(req)
	assert.True(t, errors.Is(err, ErrInvalidKey))
	assert.True(t, errors.Is(err, theory.ErrInvalidKey))
}

func TestRun_SeedFuncOnlyCalledAfterValidation(t *testing.T) {
	calls := 0
	e := New(WithSeedFunc(func() int64 {
		calls++
		return 7
	}))

	req := baseRequest()
	req.Seed = nil
	req.Voicing = "cluster"
	_, err := e.Run(req)
	require.Error(t, err)
	assert.Equal(t, 0, calls)

	req.Voicing = "close"
	res, err := e.Run(req)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(7), res.Seed)

	resp := e.Generate(req)
	require.NotNil(t, resp.Seed)
	assert.Equal(t, int64(7), *resp.Seed)
	assert.Equal(t, int64(7), *resp.Request.Seed)
}

func TestRun_DefaultSeedInRange(t *testing.T) {
	req := baseRequest()
	req.Seed = nil

	res, err := New().Run(req)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Seed, int64(0))
	assert.Less(t, res.Seed, int64(1<<31))
}

func TestRun_DrawOrder(t *testing.T) {
	req := baseRequest()
	req.Bars = 8
	req.Seed = seedPtr(20240607)
	req.Sevenths = true
	req.Inversion = "free"

	res, err := New().Run(req)
	require.NoError(t, err)

	// Planner draws come first, one per free bar, then one inversion per chord.
	replay := NewSource(20240607)
	eligible := []int{2, 3, 4, 6, 7}
	for i := 0; i < 6; i++ {
		assert.Equal(t, eligible[replay.Choose(len(eligible))], res.Chords[i].Degree, "bar %d", i)
	}
	for i, c := range res.Chords {
		assert.Equal(t, replay.Choose(4), c.Inversion, "bar %d", i)
	}
	assert.Equal(t, replay.Draws(), res.Draws)

	// The degree plan does not depend on the inversion policy.
	req.Inversion = "root-position-only"
	rootOnly, err := New().Run(req)
	require.NoError(t, err)
	for i := range res.Chords {
		assert.Equal(t, res.Chords[i].Degree, rootOnly.Chords[i].Degree)
	}
	assert.Equal(t, 6, rootOnly.Draws)
}

func TestRun_FixedSeedSnapshot(t *testing.T) {
	req := baseRequest()
	req.Bars = 8
	req.Seed = seedPtr(20240607)
	req.Sevenths = true
	req.Inversion = "free"

	res, err := New().Run(req)
	require.NoError(t, err)

	var degrees, inversions []int
	for _, c := range res.Chords {
		degrees = append(degrees, c.Degree)
		inversions = append(inversions, c.Inversion)
	}
	assert.Equal(t, []int{3, 2, 2, 7, 6, 6, 5, 1}, degrees)
	assert.Equal(t, []int{2, 0, 2, 2, 3, 0, 3, 1}, inversions)
	assert.Equal(t, 14, res.Draws)
	assert.Equal(t, []int{59, 62, 64, 67}, res.Chords[0].Pitches)

	resp := New().Generate(req)
	require.True(t, resp.OK)
	assert.Equal(t, "Em7 | Dm7 | Dm7 | Bm7b5 | Am7 | Am7 | G7 | Cmaj7", resp.Summary)
}

func TestRun_NoDrawsWhenTailFillsProgression(t *testing.T) {
	req := baseRequest()
	req.Bars = 2

	res, err := New().Run(req)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Draws)
	assert.Equal(t, 5, res.Chords[0].Degree)
	assert.Equal(t, 1, res.Chords[1].Degree)
}

func TestRun_PatternPolicyIgnoresSeed(t *testing.T) {
	req := baseRequest()
	req.Bars = 5
	req.Cadence = "none"
	req.Inversion = "specific-pattern"

	res, err := New().Run(req)
	require.NoError(t, err)

	for i, c := range res.Chords {
		assert.Equal(t, i%2, c.Inversion)
	}
	assert.Equal(t, 5, res.Draws)
}

func TestRun_SmoothPolicy(t *testing.T) {
	req := baseRequest()
	req.Bars = 12
	req.Inversion = "smooth"
	req.Sevenths = true

	a, err := New().Run(req)
	require.NoError(t, err)
	b, err := New().Run(req)
	require.NoError(t, err)

	assert.Equal(t, a.Chords, b.Chords)
	assert.Equal(t, 0, a.Chords[0].Inversion)
	assert.Equal(t, 10, a.Draws)

	for i := 1; i < len(a.Chords); i++ {
		prev, cur := a.Chords[i-1], a.Chords[i]
		chosen := voiceDistance(prev.Pitches, cur.Pitches)
		for inv := range cur.Tones {
			assert.LessOrEqual(t, chosen, voiceDistance(prev.Pitches, Voice(cur.Tones, inv, VoicingClose)))
		}
	}
}

func TestGenerate_Playback(t *testing.T) {
	req := baseRequest()
	req.Bars = 2
	req.Playback = "simultaneous"

	resp := New().Generate(req)
	require.True(t, resp.OK)
	require.Len(t, resp.Events, 6)
	for i, ev := range resp.Events[:3] {
		assert.Equal(t, resp.Chords[0].Pitches[i], ev.MidiNoteNumber)
		assert.Equal(t, 0.0, ev.StartBeats)
		assert.Equal(t, 4.0, ev.DurationBeats)
		assert.Equal(t, 90, ev.Velocity)
	}
	assert.Equal(t, 4.0, resp.Events[3].StartBeats)

	req.Playback = "arpeggio"
	resp = New().Generate(req)
	require.True(t, resp.OK)
	require.Len(t, resp.Events, 6)
	assert.Equal(t, 4.25, resp.Events[4].StartBeats)
	assert.Equal(t, 3.75, resp.Events[4].DurationBeats)
	assert.Equal(t, 4.5, resp.Events[5].StartBeats)
}

func TestGenerate_ScheduleOptions(t *testing.T) {
	req := baseRequest()
	req.Bars = 2
	req.Playback = "arpeggio"

	e := New(WithSchedule(ScheduleOptions{ArpeggioSpread: 0.5, NoteLength: 1, Velocity: 64}))
	resp := e.Generate(req)
	require.True(t, resp.OK)
	require.Len(t, resp.Events, 6)
	assert.Equal(t, 4.5, resp.Events[4].StartBeats)
	assert.Equal(t, 5.0, resp.Events[5].StartBeats)
	for _, ev := range resp.Events {
		assert.Equal(t, 1.0, ev.DurationBeats)
		assert.Equal(t, 64, ev.Velocity)
	}

	// Chords do not depend on the event layout.
	plain := New().Generate(req)
	assert.Equal(t, plain.Chords, resp.Chords)
	assert.Equal(t, plain.Summary, resp.Summary)

	// Out-of-range options leave the defaults in place.
	resp = New(WithSchedule(ScheduleOptions{ArpeggioSpread: 0.25, Velocity: 0})).Generate(req)
	require.True(t, resp.OK)
	assert.Equal(t, 90, resp.Events[0].Velocity)
	assert.Equal(t, 3.75, resp.Events[1].DurationBeats)
}

func TestScheduleOptions_Validate(t *testing.T) {
	tests := []struct {
		name string
		opts ScheduleOptions
		want string
	}{
		{"defaults", DefaultSchedule, ""},
		{"no spread", ScheduleOptions{NoteLength: 2, Velocity: 127}, ""},
		{"negative spread", ScheduleOptions{ArpeggioSpread: -0.25, Velocity: 90}, "arpeggio spread"},
		{"wide spread", ScheduleOptions{ArpeggioSpread: 1.5, Velocity: 90}, "arpeggio spread"},
		{"long note", ScheduleOptions{NoteLength: 8, Velocity: 90}, "note length"},
		{"silent", ScheduleOptions{Velocity: 0}, "velocity"},
		{"loud", ScheduleOptions{Velocity: 128}, "velocity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerate_NormalisedEcho(t *testing.T) {
	req := baseRequest()
	req.Key = " eb "
	req.Scale = "Natural_Minor"
	req.Cadence = "strong"
	req.Voicing = "DROP2"
	req.Inversion = "random"

	resp := New().Generate(req)

	require.True(t, resp.OK, resp.Message)
	require.NotNil(t, resp.Request)
	assert.Equal(t, "D#", resp.Request.Key)
	assert.Equal(t, "natural-minor", resp.Request.Scale)
	assert.Equal(t, "authentic", resp.Request.Cadence)
	assert.Equal(t, "drop-2", resp.Request.Voicing)
	assert.Equal(t, "free", resp.Request.Inversion)
}

func TestGenerate_Concurrent(t *testing.T) {
	e := New()
	req := baseRequest()
	req.Bars = 32
	req.Inversion = "free"

	want, err := json.Marshal(e.Generate(req))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = json.Marshal(e.Generate(req))
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, string(want), string(got))
	}
}
