// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/jomtimer/jomtimer/lib/board"
	"github.com/jomtimer/jomtimer/lib/timer"
)

// EnvironmentVariable names the variable Load reads the config path from.
const EnvironmentVariable = "JOMTIMER_CONFIG"

// Config is the jomtimer configuration.
type Config struct {
	// TickInterval is how often running timers advance, as a Go
	// duration string. Default: 1s.
	TickInterval string `yaml:"tick_interval" json:"tick_interval"`

	// Board configures the demo board.
	Board BoardConfig `yaml:"board" json:"board"`

	// Timers are mounted on the board at startup, outside the
	// max_timers cap.
	Timers []TimerConfig `yaml:"timers" json:"timers"`

	// Log configures logging.
	Log LogConfig `yaml:"log" json:"log"`

	// Journal configures the event journal.
	Journal JournalConfig `yaml:"journal" json:"journal"`
}

// BoardConfig configures the demo board.
type BoardConfig struct {
	// MaxTimers caps how many timers the board creates.
	// Default: 10
	MaxTimers int `yaml:"max_timers" json:"max_timers"`

	// StartTime is the initial display of created timers.
	// Default: 00:00:00
	StartTime string `yaml:"start_time" json:"start_time"`

	// Alarm is applied to every created timer when set.
	Alarm string `yaml:"alarm" json:"alarm"`
}

// TimerConfig describes one named timer.
type TimerConfig struct {
	ID        string `yaml:"id" json:"id"`
	Time      string `yaml:"time" json:"time"`
	Alarm     string `yaml:"alarm" json:"alarm"`
	Autostart bool   `yaml:"autostart" json:"autostart"`
	Disabled  bool   `yaml:"disabled" json:"disabled"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level" json:"level"`
}

// JournalConfig configures the event journal.
type JournalConfig struct {
	// Path is where events are recorded. Empty disables the journal.
	// The extension picks compression (.zst, .lz4, or none).
	Path string `yaml:"path" json:"path"`
}

// Default returns the configuration used when no file is given. It is
// also the base a loaded file is merged over.
func Default() *Config {
	return &Config{
		TickInterval: timer.DefaultInterval.String(),
		Board: BoardConfig{
			MaxTimers: board.DefaultMaxTimers,
			StartTime: "00:00:00",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load loads configuration from the file named by JOMTIMER_CONFIG.
// It fails when the variable is not set.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your jomtimer.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path over Default. The result is
// not validated; call Validate.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if isJSON(path) {
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.expandVariables()
	return cfg, nil
}

func isJSON(path string) bool {
	return strings.HasSuffix(path, ".jsonc") || strings.HasSuffix(path, ".json")
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Journal.Path = expandVars(c.Journal.Path, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Interval parses TickInterval.
func (c *Config) Interval() (time.Duration, error) {
	interval, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("tick_interval: %w", err)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	return interval, nil
}

// LogLevel parses Log.Level. Empty means info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// TimerConfigs converts the configured named timers for board.Mount.
func (c *Config) TimerConfigs() []timer.Config {
	configs := make([]timer.Config, len(c.Timers))
	for index, t := range c.Timers {
		configs[index] = timer.Config{
			ID:        t.ID,
			Time:      t.Time,
			Alarm:     t.Alarm,
			Autostart: t.Autostart,
			Disabled:  t.Disabled,
		}
	}
	return configs
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Interval(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if c.Board.MaxTimers <= 0 {
		errs = append(errs, fmt.Errorf("board.max_timers must be positive, got %d", c.Board.MaxTimers))
	}
	if c.Board.StartTime != "" {
		if _, err := timer.Parse(c.Board.StartTime); err != nil {
			errs = append(errs, fmt.Errorf("board.start_time: %w", err))
		}
	}
	if c.Board.Alarm != "" {
		if _, err := timer.Parse(c.Board.Alarm); err != nil {
			errs = append(errs, fmt.Errorf("board.alarm: %w", err))
		}
	}

	seen := make(map[string]bool, len(c.Timers))
	for index, t := range c.Timers {
		field := fmt.Sprintf("timers[%d]", index)
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", field))
		} else if seen[t.ID] {
			errs = append(errs, fmt.Errorf("%s.id %q is used more than once", field, t.ID))
		} else if strings.HasPrefix(t.ID, board.CreatedIDPrefix) {
			errs = append(errs, fmt.Errorf("%s.id %q: prefix %q is reserved for created timers", field, t.ID, board.CreatedIDPrefix))
		}
		seen[t.ID] = true
		if t.Time != "" {
			if _, err := timer.Parse(t.Time); err != nil {
				errs = append(errs, fmt.Errorf("%s.time: %w", field, err))
			}
		}
		if t.Alarm != "" {
			if _, err := timer.Parse(t.Alarm); err != nil {
				errs = append(errs, fmt.Errorf("%s.alarm: %w", field, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %w", errors.Join(errs...))
	}
	return nil
}
