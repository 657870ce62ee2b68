// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jomtimer/jomtimer/cmd/jomtimer/cli"
	"github.com/jomtimer/jomtimer/lib/board"
	"github.com/jomtimer/jomtimer/lib/boardui"
	"github.com/jomtimer/jomtimer/lib/config"
	"github.com/jomtimer/jomtimer/lib/journal"
	"github.com/jomtimer/jomtimer/lib/timer"
)

// eventFeedBuffer is how many timer events the board view may lag
// behind before events are dropped.
const eventFeedBuffer = 64

type demoParams struct {
	Config   string        `json:"config" flag:"config,c" desc:"configuration file (YAML, or JSONC for .json/.jsonc); defaults to $JOMTIMER_CONFIG"`
	Start    string        `json:"start" flag:"start" desc:"initial display of new timers (H:M:S)"`
	Alarm    string        `json:"alarm" flag:"alarm" desc:"alarm for every new timer (H:M:S)"`
	Max      int           `json:"max" flag:"max" desc:"how many timers the board may create (0 keeps the configured cap)"`
	Interval time.Duration `json:"interval" flag:"interval" desc:"tick period (0 keeps the configured interval)"`
	Journal  string        `json:"journal" flag:"journal" desc:"append events to this file (.zst or .lz4 to compress)"`
	NoColor  bool          `json:"no_color" flag:"no-color" desc:"render without colors"`
}

func demoCommand(env *environment) *cli.Command {
	var params demoParams
	return &cli.Command{
		Name:    "demo",
		Summary: "Open the interactive timer board",
		Description: `Open a terminal board of running timers.

Press n to create a timer (up to the configured cap), space to pause or
resume the selected one, a to set its alarm, c to start a countdown and
x to stop it. A timer whose alarm fires stops and turns red.

Timers listed in the configuration file are mounted at startup and do
not count against the cap.`,
		Usage: "jomtimer demo [--config FILE] [flags]",
		Examples: []cli.Example{
			{
				Description: "Board whose new timers ring ten seconds after noon",
				Command:     "jomtimer demo --start 12:00:00 --alarm 12:00:10",
			},
			{
				Description: "Board from a config file, recording events",
				Command:     "jomtimer demo --config jomtimer.yaml --journal events.cbor.zst",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("demo", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("demo takes no positional arguments, got %q", args[0])
			}
			return env.runDemo(&params)
		},
	}
}

// demoSession is a board wired to its view, ready for a tea.Program.
type demoSession struct {
	board   *board.Board
	model   boardui.Model
	handler *boardui.TUILogHandler
	journal *journal.Writer
}

// Close stops every timer and flushes the journal.
func (session *demoSession) Close() error {
	session.board.Close()
	if session.journal != nil {
		return session.journal.Close()
	}
	return nil
}

func (env *environment) runDemo(params *demoParams) error {
	session, err := env.prepareDemo(params)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx, cancel := env.context()
	defer cancel()

	program := tea.NewProgram(session.model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(env.stdout),
	)

	// Records logged before this point are dropped; the board is not
	// rendering yet.
	session.handler.SetProgram(program)

	_, err = program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return cli.Internal("board: %w", err)
	}
	return session.Close()
}

func (env *environment) prepareDemo(params *demoParams) (*demoSession, error) {
	cfg, err := loadDemoConfig(params)
	if err != nil {
		return nil, err
	}
	interval, err := cfg.Interval()
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	_, theme := boardui.ConfigureColor(env.stdout, params.NoColor)
	handler := boardui.NewTUILogHandler(level)
	logger := slog.New(handler).With("command", "demo")

	listener, events := boardui.EventFeed(eventFeedBuffer)
	options := []board.Option{
		board.WithClock(env.clock),
		board.WithLogger(logger),
		board.WithInterval(interval),
		board.WithListener(listener),
	}

	session := &demoSession{handler: handler}
	if cfg.Journal.Path != "" {
		session.journal, err = journal.Create(cfg.Journal.Path, journal.WithLogger(logger))
		if err != nil {
			return nil, cli.Internal("opening journal: %w", err)
		}
		options = append(options, board.WithListener(session.journal.Listener()))
	}

	session.board = board.New(board.Config{
		MaxTimers: cfg.Board.MaxTimers,
		Alarm:     cfg.Board.Alarm,
	}, options...)

	for _, timerConfig := range cfg.TimerConfigs() {
		if _, err := session.board.Mount(timerConfig); err != nil {
			session.Close()
			return nil, cli.Validation("mounting timer %q: %w", timerConfig.ID, err)
		}
	}

	session.model = boardui.NewModel(session.board,
		boardui.WithTheme(theme),
		boardui.WithStartTime(startTimeOrDefault(cfg)),
		boardui.WithEvents(events),
		boardui.WithNow(env.clock.Now),
	)
	return session, nil
}

// loadDemoConfig reads --config, then $JOMTIMER_CONFIG, then falls back
// to the defaults, applies flag overrides, and validates the result.
func loadDemoConfig(params *demoParams) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case params.Config != "":
		cfg, err = config.LoadFile(params.Config)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("%w", err)
		}
		return nil, cli.Validation("%w", err)
	}

	if params.Start != "" {
		cfg.Board.StartTime = params.Start
	}
	if params.Alarm != "" {
		cfg.Board.Alarm = params.Alarm
	}
	if params.Max != 0 {
		cfg.Board.MaxTimers = params.Max
	}
	if params.Interval != 0 {
		cfg.TickInterval = params.Interval.String()
	}
	if params.Journal != "" {
		cfg.Journal.Path = params.Journal
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("%w", err)
	}
	return cfg, nil
}

// startTimeOrDefault is the display new timers begin at.
func startTimeOrDefault(cfg *config.Config) string {
	if cfg.Board.StartTime == "" {
		return timer.TimeOfDay{}.String()
	}
	return cfg.Board.StartTime
}
