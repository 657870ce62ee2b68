// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jomtimer/jomtimer/cmd/jomtimer/cli"
	"github.com/jomtimer/jomtimer/lib/board"
	"github.com/jomtimer/jomtimer/lib/boardui"
	"github.com/jomtimer/jomtimer/lib/config"
	"github.com/jomtimer/jomtimer/lib/journal"
	"github.com/jomtimer/jomtimer/lib/timer"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPrepareDemoDefaults(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	env := newTestEnvironment(t)
	session, err := env.prepareDemo(&demoParams{NoColor: true})
	if err != nil {
		t.Fatalf("prepareDemo error: %v", err)
	}
	defer session.Close()

	if got := session.board.MaxTimers(); got != board.DefaultMaxTimers {
		t.Errorf("MaxTimers() = %d, want %d", got, board.DefaultMaxTimers)
	}
	if entries := session.board.Entries(); len(entries) != 0 {
		t.Errorf("Entries() = %d, want an empty board", len(entries))
	}
}

func TestPrepareDemoFromConfigFile(t *testing.T) {
	path := writeFile(t, "jomtimer.yaml", `
tick_interval: 500ms
board:
  max_timers: 3
  start_time: "12:00:00"
timers:
  - id: tea
    time: "0:0:0"
    alarm: "0:0:1"
    autostart: true
  - id: parked
    time: "8:30:0"
`)
	env := newTestEnvironment(t)
	session, err := env.prepareDemo(&demoParams{Config: path, Max: 2, NoColor: true})
	if err != nil {
		t.Fatalf("prepareDemo error: %v", err)
	}
	defer session.Close()

	if got := session.board.MaxTimers(); got != 2 {
		t.Errorf("MaxTimers() = %d, want the --max override 2", got)
	}
	entries := session.board.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() = %+v, want the two configured timers", entries)
	}
	if entries[0].State.ID != "tea" || entries[0].Status != board.StatusRunning {
		t.Errorf("entries[0] = %+v, want tea running", entries[0])
	}
	if entries[1].State.ID != "parked" || entries[1].Status != board.StatusPaused || entries[1].State.Time != "08:30:00" {
		t.Errorf("entries[1] = %+v, want parked paused at 08:30:00", entries[1])
	}

	// The configured 500ms interval drives the board's fake clock.
	env.fake.Advance(500 * time.Millisecond)
	view, err := session.board.Entry("tea")
	if err != nil {
		t.Fatal(err)
	}
	if view.Status != board.StatusAlerted {
		t.Errorf("tea status = %s after one tick, want alerted", view.Status)
	}
}

func TestPrepareDemoCreatesWithFlags(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	journalPath := filepath.Join(t.TempDir(), "demo.cbor.lz4")
	env := newTestEnvironment(t)
	session, err := env.prepareDemo(&demoParams{
		Start:   "23:59:59",
		Alarm:   "0:0:0",
		Journal: journalPath,
		NoColor: true,
	})
	if err != nil {
		t.Fatalf("prepareDemo error: %v", err)
	}

	updated, _ := session.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	session.model = updated.(boardui.Model)
	entries := session.board.Entries()
	if len(entries) != 1 || entries[0].State.Time != "23:59:59" {
		t.Fatalf("Entries() = %+v, want one timer at 23:59:59", entries)
	}

	env.fake.Advance(time.Second)
	if err := session.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	reader, err := journal.Open(journalPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()
	events, err := reader.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(events) != 1 || events[0].Kind != timer.EventAlarm || events[0].TimerID != "tmrCreated1" {
		t.Fatalf("journal = %+v, want the midnight alarm of tmrCreated1", events)
	}
}

func TestPrepareDemoRejectsBadConfig(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	env := newTestEnvironment(t)

	_, err := env.prepareDemo(&demoParams{Alarm: "25:00:00", NoColor: true})
	if cli.CategoryOf(err) != cli.CategoryValidation {
		t.Errorf("bad --alarm error = %v, want validation", err)
	}

	_, err = env.prepareDemo(&demoParams{Config: filepath.Join(t.TempDir(), "absent.yaml")})
	if cli.CategoryOf(err) != cli.CategoryNotFound {
		t.Errorf("missing config error = %v, want not found", err)
	}

	duplicate := writeFile(t, "dup.yaml", `
timers:
  - id: a
  - id: a
`)
	_, err = env.prepareDemo(&demoParams{Config: duplicate, NoColor: true})
	if cli.CategoryOf(err) != cli.CategoryValidation {
		t.Errorf("duplicate timer error = %v, want validation", err)
	}
}

func TestPrepareDemoUsesEnvironmentConfig(t *testing.T) {
	path := writeFile(t, "env.jsonc", `{
  // two timers at most
  "board": {"max_timers": 2}
}`)
	t.Setenv(config.EnvironmentVariable, path)
	env := newTestEnvironment(t)
	session, err := env.prepareDemo(&demoParams{NoColor: true})
	if err != nil {
		t.Fatalf("prepareDemo error: %v", err)
	}
	defer session.Close()
	if got := session.board.MaxTimers(); got != 2 {
		t.Errorf("MaxTimers() = %d, want 2 from %s", got, config.EnvironmentVariable)
	}
}

func TestDemoRejectsArguments(t *testing.T) {
	env := newTestEnvironment(t)
	err := env.execute("demo", "extra")
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryValidation {
		t.Fatalf("error = %v, want validation error", err)
	}
}
