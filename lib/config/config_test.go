// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jomtimer/jomtimer/lib/timer"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Board.MaxTimers != 10 {
		t.Errorf("expected max_timers=10, got %d", cfg.Board.MaxTimers)
	}
	if cfg.Board.StartTime != "00:00:00" {
		t.Errorf("expected start_time=00:00:00, got %s", cfg.Board.StartTime)
	}
	interval, err := cfg.Interval()
	if err != nil || interval != time.Second {
		t.Errorf("Interval() = %v, %v; want 1s", interval, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_RequiresJomtimerConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when JOMTIMER_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "JOMTIMER_CONFIG environment variable not set") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "jomtimer.yaml", `
tick_interval: 250ms
board:
  max_timers: 4
  alarm: "0:1:0"
timers:
  - id: kitchen
    time: "12:00:00"
    alarm: "12:30:00"
    autostart: true
  - id: spare
    disabled: true
log:
  level: debug
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	if cfg.Board.MaxTimers != 4 || cfg.Board.Alarm != "0:1:0" {
		t.Errorf("board = %+v", cfg.Board)
	}
	// Unset fields keep their defaults.
	if cfg.Board.StartTime != "00:00:00" {
		t.Errorf("expected default start_time, got %q", cfg.Board.StartTime)
	}
	if interval, _ := cfg.Interval(); interval != 250*time.Millisecond {
		t.Errorf("Interval() = %v, want 250ms", interval)
	}
	if level, _ := cfg.LogLevel(); level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", level)
	}

	timers := cfg.TimerConfigs()
	if len(timers) != 2 {
		t.Fatalf("TimerConfigs() returned %d, want 2", len(timers))
	}
	want := timer.Config{ID: "kitchen", Time: "12:00:00", Alarm: "12:30:00", Autostart: true}
	if timers[0] != want {
		t.Errorf("timers[0] = %+v, want %+v", timers[0], want)
	}
	if !timers[1].Disabled {
		t.Error("timers[1] should be disabled")
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "jomtimer.jsonc", `{
  // Faster ticks for the kiosk.
  "tick_interval": "500ms",
  "board": {"max_timers": 3,},
  "timers": [
    {"id": "tea", "time": "0:0:0", "autostart": true},
  ],
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Board.MaxTimers != 3 {
		t.Errorf("max_timers = %d, want 3", cfg.Board.MaxTimers)
	}
	if len(cfg.Timers) != 1 || cfg.Timers[0].ID != "tea" || !cfg.Timers[0].Autostart {
		t.Errorf("timers = %+v", cfg.Timers)
	}
	if interval, _ := cfg.Interval(); interval != 500*time.Millisecond {
		t.Errorf("Interval() = %v, want 500ms", interval)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
	path := writeConfig(t, "broken.yaml", "board: [unterminated")
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error for malformed YAML")
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("JOMTIMER_TEST_DIR", "/srv/timers")
	vars := map[string]string{"HOME": "/home/test"}

	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/events.cbor", "/home/test/events.cbor"},
		{"${JOMTIMER_TEST_DIR}/events.cbor.zst", "/srv/timers/events.cbor.zst"},
		{"${JOMTIMER_UNSET_VAR:-/tmp}/events.cbor", "/tmp/events.cbor"},
		{"${JOMTIMER_UNSET_VAR}", ""},
		{"no/vars/here", "no/vars/here"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestLoadFile_ExpandsJournalPath(t *testing.T) {
	t.Setenv("HOME", "/home/test")
	path := writeConfig(t, "jomtimer.yaml", "journal:\n  path: ${HOME}/events.cbor.zst\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Journal.Path != "/home/test/events.cbor.zst" {
		t.Errorf("journal.path = %q", cfg.Journal.Path)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.TickInterval = "fast"
	cfg.Board.MaxTimers = 0
	cfg.Board.Alarm = "25:00:00"
	cfg.Log.Level = "loud"
	cfg.Timers = []TimerConfig{
		{ID: "a", Time: "x:y:z"},
		{ID: "a"},
		{Alarm: "00:61:00"},
		{ID: "tmrCreated1"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, fragment := range []string{
		"tick_interval",
		"log.level",
		"board.max_timers",
		"board.alarm",
		"timers[0].time",
		`timers[1].id "a" is used more than once`,
		"timers[2].id is required",
		"timers[2].alarm",
		`timers[3].id "tmrCreated1": prefix "tmrCreated" is reserved`,
	} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q does not mention %q", err, fragment)
		}
	}
	if !errors.Is(err, timer.ErrOutOfRange) {
		t.Error("expected errors.Is(err, timer.ErrOutOfRange)")
	}
	if !errors.Is(err, timer.ErrMalformedTime) {
		t.Error("expected errors.Is(err, timer.ErrMalformedTime)")
	}
}

func TestIntervalRejectsNonPositive(t *testing.T) {
	cfg := Default()
	cfg.TickInterval = "0s"
	if _, err := cfg.Interval(); err == nil {
		t.Fatal("Interval() should reject 0s")
	}
}
