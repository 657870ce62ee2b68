// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jomtimer/jomtimer/cmd/jomtimer/cli"
	"github.com/jomtimer/jomtimer/lib/clock"
)

// environment is what commands reach outside the process through.
type environment struct {
	stdout io.Writer
	stderr io.Writer
	clock  clock.Clock

	// context returns the context blocking commands wait on.
	context func() (context.Context, context.CancelFunc)

	// logger builds a command logger at level.
	logger func(level slog.Leveler) *slog.Logger
}

func defaultEnvironment() *environment {
	return &environment{
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  clock.Real(),
		context: func() (context.Context, context.CancelFunc) {
			return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		},
		logger: cli.NewCommandLogger,
	}
}

// Root builds the jomtimer command tree bound to the process's
// standard streams, the wall clock, and SIGINT/SIGTERM.
func Root() *cli.Command {
	return newRoot(defaultEnvironment())
}

func newRoot(env *environment) *cli.Command {
	return &cli.Command{
		Name: "jomtimer",
		Description: `jomtimer: second-resolution clock timers with alarms and countdowns.

A timer displays a 24-hour time of day that advances one second per
tick. It raises an alarm when the display reaches its alarm time and a
timeout when its countdown reaches zero.`,
		HelpOutput: env.stderr,
		Subcommands: []*cli.Command{
			demoCommand(env),
			runCommand(env),
			countdownCommand(env),
			validateCommand(env),
			journalCommand(env),
			versionCommand(env),
		},
		Examples: []cli.Example{
			{
				Description: "Open the interactive timer board",
				Command:     "jomtimer demo --start 12:00:00 --alarm 12:00:10",
			},
			{
				Description: "Run one timer until its alarm, printing each tick",
				Command:     "jomtimer run --time 23:59:50 --alarm 0:0:5",
			},
			{
				Description: "Wait out a 90 second countdown",
				Command:     "jomtimer countdown 0:1:30",
			},
			{
				Description: "Check time strings",
				Command:     "jomtimer validate 1:2:3 24:00:00",
			},
			{
				Description: "Show a recorded event journal",
				Command:     "jomtimer journal dump events.cbor.zst",
			},
		},
	}
}

// parseLogLevel accepts the slog level names (debug, info, warn, error).
func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, cli.Validation("--log-level %q: %w", name, err)
	}
	return level, nil
}
