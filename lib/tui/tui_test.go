// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestHeatDecay(t *testing.T) {
	tracker := NewHeatTracker()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if heat := tracker.Heat("tmrCreated1", start); heat != 0 {
		t.Fatalf("Heat before Ignite = %v, want 0", heat)
	}

	tracker.Ignite("tmrCreated1", HeatAlarm, start)
	if heat := tracker.Heat("tmrCreated1", start); heat != 1 {
		t.Fatalf("Heat at ignition = %v, want 1", heat)
	}
	half := tracker.Heat("tmrCreated1", start.Add(AlarmGlow/2))
	if half < 0.49 || half > 0.51 {
		t.Fatalf("Heat at half decay = %v, want 0.5", half)
	}
	if tracker.Kind("tmrCreated1") != HeatAlarm {
		t.Fatalf("Kind = %v, want HeatAlarm", tracker.Kind("tmrCreated1"))
	}

	if !tracker.HasHot(start.Add(time.Second)) {
		t.Fatal("HasHot should be true during decay")
	}
	if tracker.HasHot(start.Add(AlarmGlow)) {
		t.Fatal("HasHot should be false after decay")
	}
	if tracker.Kind("tmrCreated1") != HeatChange {
		t.Fatal("decayed entries should be dropped by HasHot")
	}
}

func TestHeatGlowDependsOnKind(t *testing.T) {
	tracker := NewHeatTracker()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tracker.Ignite("tmrCreated1", HeatChange, start)
	tracker.Ignite("tmrCreated2", HeatTimeout, start)

	later := start.Add(ChangeGlow)
	if heat := tracker.Heat("tmrCreated1", later); heat != 0 {
		t.Errorf("change row Heat after %v = %v, want 0", ChangeGlow, heat)
	}
	if heat := tracker.Heat("tmrCreated2", later); heat <= 0 {
		t.Errorf("timeout row Heat after %v = %v, want > 0", ChangeGlow, heat)
	}
	if !tracker.HasHot(later) {
		t.Fatal("HasHot should be true while the timeout row glows")
	}
	if tracker.Kind("tmrCreated1") != HeatChange || tracker.Heat("tmrCreated1", later) != 0 {
		t.Error("dark change row should be swept")
	}
	if tracker.HasHot(start.Add(TimeoutGlow)) {
		t.Error("HasHot should be false once every row is dark")
	}
}

func TestHeatChangeKeepsAlarmGlow(t *testing.T) {
	tracker := NewHeatTracker()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tracker.Ignite("tmrCreated1", HeatAlarm, start)
	tracker.Ignite("tmrCreated1", HeatChange, start.Add(time.Second))
	if kind := tracker.Kind("tmrCreated1"); kind != HeatAlarm {
		t.Fatalf("Kind after change over live alarm = %v, want HeatAlarm", kind)
	}

	// Once the alarm glow is gone a change lights the row again.
	after := start.Add(AlarmGlow)
	tracker.Ignite("tmrCreated1", HeatChange, after)
	if kind := tracker.Kind("tmrCreated1"); kind != HeatChange {
		t.Fatalf("Kind after alarm faded = %v, want HeatChange", kind)
	}
	if heat := tracker.Heat("tmrCreated1", after); heat != 1 {
		t.Fatalf("Heat at re-ignite = %v, want 1", heat)
	}

	// A new alarm always restarts the glow.
	tracker.Ignite("tmrCreated1", HeatAlarm, after.Add(time.Second))
	if kind := tracker.Kind("tmrCreated1"); kind != HeatAlarm {
		t.Fatalf("Kind after new alarm = %v, want HeatAlarm", kind)
	}
}

func TestStatusColor(t *testing.T) {
	theme := DefaultTheme
	if theme.StatusColor("alerted") != theme.StatusAlerted {
		t.Error("alerted should map to StatusAlerted")
	}
	if theme.StatusColor("running") != theme.StatusRunning {
		t.Error("running should map to StatusRunning")
	}
	if theme.StatusColor("bogus") != theme.FaintText {
		t.Error("unknown status should map to FaintText")
	}
	if theme.HeatColor(HeatTimeout) != theme.HotAccentTimeout {
		t.Error("HeatTimeout should map to HotAccentTimeout")
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	got := SpliceOverlay(view, []string{"XX"}, 3, 1)
	lines := strings.Split(got, "\n")
	if lines[0] != "aaaaaaaaaa" || lines[2] != "cccccccccc" {
		t.Fatalf("untouched lines changed: %q", got)
	}
	if plain := ansi.Strip(lines[1]); plain != "bbbXXbbbbb" {
		t.Fatalf("spliced line = %q, want bbbXXbbbbb", plain)
	}

	// Lines shorter than the anchor are padded.
	short := ansi.Strip(SpliceOverlay("ab", []string{"Z"}, 4, 0))
	if short != "ab  Z" {
		t.Fatalf("short line splice = %q, want %q", short, "ab  Z")
	}

	if SpliceOverlay(view, nil, 0, 0) != view {
		t.Fatal("empty overlay should leave the view unchanged")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("tmrCreated10", 20); got != "tmrCreated10" {
		t.Errorf("Truncate wide = %q", got)
	}
	got := Truncate("tmrCreated10", 6)
	if ansi.StringWidth(got) != 6 || !strings.HasSuffix(got, "…") {
		t.Errorf("Truncate narrow = %q, want 6 columns ending in …", got)
	}
	if Truncate("x", 0) != "" {
		t.Error("Truncate to zero width should be empty")
	}
}

func TestRenderScrollbar(t *testing.T) {
	if RenderScrollbar(DefaultTheme, 0, 10, 5, 0) != "" {
		t.Fatal("zero height should render nothing")
	}
	lines := strings.Split(ansi.Strip(RenderScrollbar(DefaultTheme, 4, 8, 4, 4)), "\n")
	if len(lines) != 4 {
		t.Fatalf("rendered %d lines, want 4", len(lines))
	}
	if lines[0] != "│" || lines[3] != "┃" {
		t.Fatalf("scrolled to bottom: %q, want thumb at the end", lines)
	}
}
