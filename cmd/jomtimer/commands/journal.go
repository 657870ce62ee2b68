// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/jomtimer/jomtimer/cmd/jomtimer/cli"
	"github.com/jomtimer/jomtimer/lib/codec"
	"github.com/jomtimer/jomtimer/lib/journal"
	"github.com/jomtimer/jomtimer/lib/timer"
)

func journalCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:    "journal",
		Summary: "Inspect recorded timer events",
		Description: `Read event journals written by "jomtimer demo" and "jomtimer run".

A journal is a sequence of CBOR records, one per alarm or timeout,
compressed with zstd (.zst) or LZ4 (.lz4) or stored raw.`,
		Subcommands: []*cli.Command{
			journalDumpCommand(env),
		},
	}
}

type journalDumpParams struct {
	cli.JSONOutput
	Diagnostic bool `json:"diagnostic" flag:"diagnostic" desc:"print each record in CBOR diagnostic notation"`
}

func journalDumpCommand(env *environment) *cli.Command {
	var params journalDumpParams
	return &cli.Command{
		Name:    "dump",
		Summary: "Print every event in a journal",
		Description: `Print the events recorded in FILE, oldest first.

--diagnostic shows each record's exact CBOR encoding in RFC 8949
diagnostic notation instead of decoding it.`,
		Usage: "jomtimer journal dump FILE [--json | --diagnostic]",
		Examples: []cli.Example{
			{
				Description: "List events",
				Command:     "jomtimer journal dump events.cbor.zst",
			},
			{
				Description: "Inspect the wire form",
				Command:     "jomtimer journal dump events.cbor --diagnostic",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("journal dump", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("journal dump takes exactly one FILE argument, got %d", len(args))
			}
			if params.Diagnostic && params.OutputJSON {
				return cli.Validation("--diagnostic and --json cannot be combined")
			}
			return env.dumpJournal(args[0], &params)
		},
	}
}

func (env *environment) dumpJournal(path string, params *journalDumpParams) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cli.NotFound("journal %s does not exist", path)
		}
		return cli.Internal("checking journal: %w", err)
	}
	reader, err := journal.Open(path)
	if err != nil {
		return cli.Internal("opening journal: %w", err)
	}
	defer reader.Close()

	if params.Diagnostic {
		return dumpDiagnostic(env.stdout, reader)
	}

	events, err := reader.All()
	if err != nil {
		return cli.Internal("reading %s: %w", path, err)
	}
	if done, err := params.EmitJSON(env.stdout, events); done {
		return err
	}

	writer := tabwriter.NewWriter(env.stdout, 0, 4, 2, ' ', 0)
	for _, event := range events {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			event.At.UTC().Format(time.RFC3339), event.TimerID, event.Kind, describeEvent(event))
	}
	return writer.Flush()
}

func dumpDiagnostic(w io.Writer, reader *journal.Reader) error {
	for index := 0; ; index++ {
		raw, err := reader.NextRaw()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return cli.Internal("reading record %d: %w", index, err)
		}
		notation, _, err := codec.Diagnose(raw)
		if err != nil {
			return cli.Internal("diagnosing record %d: %w", index, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
	}
}

func describeEvent(event timer.Event) string {
	switch event.Kind {
	case timer.EventAlarm:
		return event.Time
	case timer.EventTimeout:
		return fmt.Sprintf("%ds (started %s)", event.SecondsExpired, event.StartedAt)
	default:
		return ""
	}
}
