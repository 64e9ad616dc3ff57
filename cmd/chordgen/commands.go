package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"runtime/debug"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Conceptual-Machines/chordgen-api/internal/engine"
	"github.com/Conceptual-Machines/chordgen-api/internal/models"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

func newCommand(out io.Writer) *ffcli.Command {
	fs := flag.NewFlagSet("chordgen", flag.ExitOnError)

	return &ffcli.Command{
		ShortUsage: "chordgen [flags] <subcommand>",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newVersionCommand(out),
			newGenerateCommand(out),
			newTheoryCommand(out),
		},
	}
}

func newVersionCommand(out io.Writer) *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "chordgen version",
		ShortHelp:  "print version",
		Exec: func(ctx context.Context, args []string) error {
			v := version
			if v == "" {
				if buildInfo, ok := debug.ReadBuildInfo(); ok {
					v = buildInfo.Main.Version
				}
			}
			if v == "" || v == "(devel)" {
				v = "dev"
			}
			versionFields := []string{v}
			if commit != "" {
				versionFields = append(versionFields, commit)
			}
			if date != "" {
				versionFields = append(versionFields, date)
			}
			fmt.Fprintln(out, strings.Join(versionFields, " "))
			return nil
		},
	}
}

// seedFlag is an optional int64 flag; unset means the engine picks a seed.
type seedFlag struct {
	value *int64
}

func (s *seedFlag) String() string {
	if s.value == nil {
		return ""
	}
	return strconv.FormatInt(*s.value, 10)
}

func (s *seedFlag) Set(v string) error {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seed %q: %w", v, err)
	}
	s.value = &n
	return nil
}

func newGenerateCommand(out io.Writer) *ffcli.Command {
	cmd := "generate"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	req := models.EngineRequest{}
	seed := &seedFlag{}
	fs.StringVar(&req.Key, "key", "C", "tonic pitch class (C, F#, Eb...)")
	fs.StringVar(&req.Scale, "scale", "major", "scale identifier")
	fs.IntVar(&req.Bars, "bars", 4, "number of bars, one chord per bar")
	fs.Var(seed, "seed", "seed for reproducible output (random when unset)")
	fs.StringVar(&req.Cadence, "cadence", "authentic", "authentic, half, plagal, deceptive or none")
	fs.BoolVar(&req.Sevenths, "sevenths", false, "use seventh chords")
	fs.StringVar(&req.Voicing, "voicing", "close", "close, open or drop-2")
	fs.StringVar(&req.Inversion, "inversion", "root-position-only", "root-position-only, free, specific-pattern or smooth")
	fs.StringVar(&req.Playback, "playback", "", "simultaneous or arpeggio (adds note events)")
	sched := engine.DefaultSchedule
	fs.Float64Var(&sched.ArpeggioSpread, "arp-spread", sched.ArpeggioSpread, "beats between arpeggio notes")
	fs.Float64Var(&sched.NoteLength, "note-length", sched.NoteLength, "beats each note is held (0 holds to the bar line)")
	fs.IntVar(&sched.Velocity, "velocity", sched.Velocity, "note velocity (1-127)")
	maxBars := fs.Int("max-bars", engine.DefaultMaxBars, "maximum accepted bars")
	asJSON := fs.Bool("json", false, "print the JSON response")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("chordgen %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithEnvVarPrefix("CHORDGEN"),
		},
		ShortHelp: "generate a chord progression",
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := sched.Validate(); err != nil {
				return err
			}
			req.Seed = seed.value
			resp := engine.New(engine.WithMaxBars(*maxBars), engine.WithSchedule(sched)).Generate(req)
			if *asJSON {
				if err := writeJSON(out, resp); err != nil {
					return err
				}
			} else if resp.OK {
				writeProgression(out, resp)
			}
			if !resp.OK {
				return fmt.Errorf("%s: %s", resp.Error, resp.Message)
			}
			return nil
		},
	}
}

func newTheoryCommand(out io.Writer) *ffcli.Command {
	cmd := "theory"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)

	var key, scale string
	var sevenths, asJSON bool
	fs.StringVar(&key, "key", "C", "tonic pitch class")
	fs.StringVar(&scale, "scale", "major", "scale identifier")
	fs.BoolVar(&sevenths, "sevenths", false, "seventh chords instead of triads")
	fs.BoolVar(&asJSON, "json", false, "print JSON")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("chordgen %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithEnvVarPrefix("CHORDGEN"),
		},
		ShortHelp: "print the diatonic chords of a key",
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			table, err := engine.DiatonicTable(key, scale, sevenths)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, table)
			}
			writeDiatonicTable(out, table)
			return nil
		},
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeProgression(out io.Writer, resp models.EngineResponse) {
	req := resp.Request
	fmt.Fprintf(out, "%s %s, %d bars, cadence %s, seed %d\n", req.Key, req.Scale, req.Bars, req.Cadence, *resp.Seed)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BAR\tROMAN\tCHORD\tINV\tPITCHES")
	for _, c := range resp.Chords {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", c.Bar+1, c.Roman, c.Symbol, c.Inversion, strings.Join(c.PitchNames, " "))
	}
	_ = tw.Flush()

	fmt.Fprintln(out, resp.Summary)
}

func writeDiatonicTable(out io.Writer, table models.DiatonicTable) {
	fmt.Fprintf(out, "%s %s\n", table.Key, table.Scale)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DEGREE\tROMAN\tCHORD\tQUALITY\tNOTES")
	for _, c := range table.Chords {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.Degree, c.Roman, c.Symbol, c.Quality, strings.Join(c.Notes, " "))
	}
	_ = tw.Flush()
}
