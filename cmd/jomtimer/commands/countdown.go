// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/jomtimer/jomtimer/cmd/jomtimer/cli"
	"github.com/jomtimer/jomtimer/lib/timer"
)

type countdownParams struct {
	cli.JSONOutput
	Interval time.Duration `json:"interval" flag:"interval" desc:"tick period; every tick takes one second off the countdown" default:"1s"`
	LogLevel string        `json:"log_level" flag:"log-level" desc:"log level (debug, info, warn, error)" default:"warn"`
}

func countdownCommand(env *environment) *cli.Command {
	var params countdownParams
	return &cli.Command{
		Name:    "countdown",
		Summary: "Wait for a countdown to reach zero",
		Description: `Arm a countdown and wait for its timeout.

DURATION is a number of seconds ("90") or an H:M:S time ("0:1:30").
The command prints the timeout once the countdown reaches zero. An
interrupt halts the countdown and reports the seconds left.`,
		Usage: "jomtimer countdown DURATION [flags]",
		Examples: []cli.Example{
			{
				Description: "Wait a minute and a half",
				Command:     "jomtimer countdown 0:1:30",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("countdown", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("countdown takes exactly one DURATION argument, got %d", len(args))
			}
			return env.countDown(args[0], &params)
		},
	}
}

// countdownResult is the countdown command's JSON output.
type countdownResult struct {
	Seconds     int       `json:"seconds"`
	StartedAt   string    `json:"started_at"`
	Remaining   int       `json:"remaining"`
	Interrupted bool      `json:"interrupted,omitempty"`
	At          time.Time `json:"at"`
}

func (env *environment) countDown(input string, params *countdownParams) error {
	if params.Interval <= 0 {
		return cli.Validation("--interval must be positive, got %s", params.Interval)
	}
	level, err := parseLogLevel(params.LogLevel)
	if err != nil {
		return err
	}
	logger := env.logger(level).With("command", "countdown")

	ctx, cancel := env.context()
	defer cancel()

	t := timer.New(timer.Config{ID: "countdown"},
		timer.WithClock(env.clock),
		timer.WithLogger(logger),
		timer.WithInterval(params.Interval),
	)
	defer t.Detach()

	timeouts := make(chan timer.Event, 1)
	t.Subscribe(func(event timer.Event) {
		if event.Kind == timer.EventTimeout {
			timeouts <- event
		}
	})

	if err := t.CountDown(input); err != nil {
		if errors.Is(err, timer.ErrDisabled) {
			return cli.Internal("arming countdown: %w", err)
		}
		return cli.Validation("countdown %q: %w", input, err)
	}
	if !t.CountingDown() {
		return cli.Validation("countdown %q does not arm a countdown", input)
	}
	logger.Info("countdown armed", "seconds", t.CountDownRemaining())

	var result countdownResult
	select {
	case event := <-timeouts:
		result = countdownResult{
			Seconds:   event.SecondsExpired,
			StartedAt: event.StartedAt,
			At:        event.At,
		}
	case <-ctx.Done():
		t.StopCountDown()
		state := t.Snapshot()
		result = countdownResult{
			Remaining:   state.Remaining,
			Interrupted: true,
			At:          env.clock.Now(),
		}
	}

	if done, err := params.EmitJSON(env.stdout, result); done {
		return err
	}
	if result.Interrupted {
		_, err = fmt.Fprintf(env.stdout, "interrupted with %ds remaining\n", result.Remaining)
		return err
	}
	_, err = fmt.Fprintf(env.stdout, "timeout after %ds (started %s)\n", result.Seconds, result.StartedAt)
	return err
}
