// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/pflag"

	"github.com/jomtimer/jomtimer/cmd/jomtimer/cli"
	"github.com/jomtimer/jomtimer/lib/journal"
	"github.com/jomtimer/jomtimer/lib/timer"
)

type runParams struct {
	cli.JSONOutput
	Time     string        `json:"time" flag:"time,t" desc:"initial display (H:M:S)" default:"00:00:00"`
	Alarm    string        `json:"alarm" flag:"alarm,a" desc:"stop when the display reaches this time (H:M:S)"`
	For      time.Duration `json:"for" flag:"for" desc:"stop after this long (0 waits for the alarm or an interrupt)"`
	Interval time.Duration `json:"interval" flag:"interval" desc:"tick period; every tick advances the display one second" default:"1s"`
	Journal  string        `json:"journal" flag:"journal" desc:"append events to this file (.zst or .lz4 to compress)"`
	LogLevel string        `json:"log_level" flag:"log-level" desc:"log level (debug, info, warn, error)" default:"warn"`
}

func runCommand(env *environment) *cli.Command {
	var params runParams
	return &cli.Command{
		Name:    "run",
		Summary: "Run one timer and print every tick",
		Description: `Start a single timer and print its display after every tick.

The command ends when the alarm fires (the timer is stopped first),
when --for has elapsed, or on interrupt. The final line reports the
display the timer stopped at and why.`,
		Usage: "jomtimer run [--time H:M:S] [--alarm H:M:S] [--for DURATION] [flags]",
		Examples: []cli.Example{
			{
				Description: "Watch midnight roll over",
				Command:     "jomtimer run --time 23:59:55 --alarm 0:0:2",
			},
			{
				Description: "Run ten times faster than wall time for three seconds",
				Command:     "jomtimer run --interval 100ms --for 3s --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("run", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("run takes no positional arguments, got %q", args[0])
			}
			return env.runTimer(&params)
		},
	}
}

// runRecord is one line of run output.
type runRecord struct {
	Kind   string    `json:"kind"`
	Time   string    `json:"time"`
	Reason string    `json:"reason,omitempty"`
	At     time.Time `json:"at"`
}

const (
	stopReasonAlarm       = "alarm"
	stopReasonDeadline    = "deadline"
	stopReasonInterrupted = "interrupted"
)

func (env *environment) runTimer(params *runParams) error {
	if _, err := timer.Parse(params.Time); err != nil {
		return cli.Validation("--time %q: %w", params.Time, err)
	}
	if params.Alarm != "" {
		if _, err := timer.Parse(params.Alarm); err != nil {
			return cli.Validation("--alarm %q: %w", params.Alarm, err)
		}
	}
	if params.Interval <= 0 {
		return cli.Validation("--interval must be positive, got %s", params.Interval)
	}
	if params.For < 0 {
		return cli.Validation("--for must not be negative, got %s", params.For)
	}
	level, err := parseLogLevel(params.LogLevel)
	if err != nil {
		return err
	}
	logger := env.logger(level).With("command", "run")

	ctx, cancel := env.context()
	defer cancel()

	output := &recordWriter{writer: env.stdout, json: params.OutputJSON}
	done := make(chan string, 1)
	finish := func(reason string) {
		select {
		case done <- reason:
		default:
		}
	}

	t := timer.New(timer.Config{ID: "run", Time: params.Time, Alarm: params.Alarm},
		timer.WithClock(env.clock),
		timer.WithLogger(logger),
		timer.WithInterval(params.Interval),
		timer.WithTickFunc(func(display timer.TimeOfDay) {
			output.write(runRecord{Kind: "tick", Time: display.String(), At: env.clock.Now()})
		}),
	)

	var events *journal.Writer
	if params.Journal != "" {
		events, err = journal.Create(params.Journal, journal.WithLogger(logger))
		if err != nil {
			return cli.Internal("opening journal: %w", err)
		}
		defer events.Close()
		// Ahead of the alarm listener, which ends the command.
		t.Subscribe(events.Listener())
	}

	t.Subscribe(func(event timer.Event) {
		if event.Kind != timer.EventAlarm {
			return
		}
		t.Stop()
		output.write(runRecord{Kind: "alarm", Time: event.Time, At: event.At})
		finish(stopReasonAlarm)
	})

	if err := t.Run(); err != nil {
		return cli.Internal("starting timer: %w", err)
	}
	if params.For > 0 {
		deadline := env.clock.AfterFunc(params.For, func() { finish(stopReasonDeadline) })
		defer deadline.Stop()
	}
	logger.Info("timer running", "time", params.Time, "alarm", params.Alarm, "interval", params.Interval)

	var reason string
	select {
	case reason = <-done:
	case <-ctx.Done():
		reason = stopReasonInterrupted
	}
	t.Detach()

	final := t.Snapshot()
	output.finish(runRecord{Kind: "stopped", Time: final.Time, Reason: reason, At: env.clock.Now()})
	logger.Info("timer stopped", "time", final.Time, "reason", reason)

	if err := output.err(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if events != nil {
		if err := events.Close(); err != nil {
			return cli.Internal("closing journal: %w", err)
		}
	}
	return nil
}

// recordWriter serializes run output from the clock goroutine and the
// command goroutine. The first write error is kept and later writes
// are dropped, as is anything written after finish.
type recordWriter struct {
	writer io.Writer
	json   bool

	mu       sync.Mutex
	writeErr error
	finished bool
}

// finish writes the last record. A tick already past the timer's
// lock when the command stopped it may still call write; it is
// dropped.
func (w *recordWriter) finish(record runRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeLocked(record)
	w.finished = true
}

func (w *recordWriter) write(record runRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeLocked(record)
}

func (w *recordWriter) writeLocked(record runRecord) {
	if w.writeErr != nil || w.finished {
		return
	}
	if w.json {
		w.writeErr = cli.WriteJSONLine(w.writer, record)
		return
	}
	var err error
	switch record.Kind {
	case "tick":
		_, err = fmt.Fprintln(w.writer, record.Time)
	case "alarm":
		_, err = fmt.Fprintf(w.writer, "alarm %s\n", record.Time)
	default:
		_, err = fmt.Fprintf(w.writer, "stopped at %s: %s\n", record.Time, record.Reason)
	}
	w.writeErr = err
}

func (w *recordWriter) err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeErr
}
