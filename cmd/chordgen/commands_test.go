package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/chordgen-api/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newCommand(&out).ParseAndRun(context.Background(), args)
	return out.String(), err
}

func TestGenerate_JSON(t *testing.T) {
	out, err := run(t, "generate", "-seed", "42", "-bars", "4", "-json")
	require.NoError(t, err)

	var resp models.EngineResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.OK)
	require.Len(t, resp.Chords, 4)
	assert.Equal(t, "G", resp.Chords[2].Symbol)
	assert.Equal(t, "C", resp.Chords[3].Symbol)
	assert.Equal(t, int64(42), *resp.Seed)
}

func TestGenerate_SameSeedSameOutput(t *testing.T) {
	args := []string{"generate", "-seed", "-17", "-bars", "8", "-inversion", "free", "-sevenths", "-json"}
	first, err := run(t, args...)
	require.NoError(t, err)
	second, err := run(t, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_Text(t *testing.T) {
	out, err := run(t, "generate", "-key", "A", "-scale", "minor", "-seed", "3", "-bars", "3", "-cadence", "half")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "A natural-minor, 3 bars, cadence half, seed 3", lines[0])
	assert.Contains(t, lines[1], "PITCHES")
	assert.True(t, strings.HasSuffix(lines[5], "| Em"), lines[5])
}

func TestGenerate_EngineErrorFails(t *testing.T) {
	out, err := run(t, "generate", "-bars", "0")

	require.Error(t, err)
	assert.Equal(t, "InvalidBars: bars must be between 1 and 256, got 0", err.Error())
	assert.Empty(t, out)

	out, err = run(t, "generate", "-voicing", "wide", "-json")
	require.Error(t, err)
	assert.Contains(t, out, `"error": "InvalidVoicing"`)
}

func TestGenerate_ScheduleFlags(t *testing.T) {
	out, err := run(t, "generate", "-seed", "42", "-bars", "2", "-playback", "arpeggio",
		"-arp-spread", "0.5", "-note-length", "2", "-velocity", "100", "-json")
	require.NoError(t, err)

	var resp models.EngineResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Events, 6)
	assert.Equal(t, 0.5, resp.Events[1].StartBeats)
	assert.Equal(t, 2.0, resp.Events[1].DurationBeats)
	assert.Equal(t, 100, resp.Events[1].Velocity)

	_, err = run(t, "generate", "-velocity", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "velocity must be between 1 and 127")
}

func TestGenerate_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chordgen.conf")
	require.NoError(t, os.WriteFile(path, []byte("key D\nbars 2\nseed 5\ncadence plagal\n"), 0o600))

	out, err := run(t, "generate", "-config", path, "-json")
	require.NoError(t, err)

	var resp models.EngineResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Chords, 2)
	assert.Equal(t, "G", resp.Chords[0].Symbol)
	assert.Equal(t, "D", resp.Chords[1].Symbol)
}

func TestTheory(t *testing.T) {
	out, err := run(t, "theory", "-key", "F", "-sevenths")
	require.NoError(t, err)

	assert.Contains(t, out, "F major")
	assert.Contains(t, out, "C7")
	assert.Contains(t, out, "Em7b5")

	_, err = run(t, "theory", "-scale", "enigmatic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidScale")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestSeedFlag(t *testing.T) {
	var s seedFlag
	assert.Equal(t, "", s.String())
	require.NoError(t, s.Set("99"))
	assert.Equal(t, "99", s.String())
	assert.Error(t, s.Set("abc"))
}
