// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"
)

// Glow durations per [HeatKind]. A row lit by a user action fades
// quickly; alarms and expired countdowns stay lit long enough to be
// noticed from across the room.
const (
	ChangeGlow  = 2 * time.Second
	AlarmGlow   = 6 * time.Second
	TimeoutGlow = 6 * time.Second
)

// HeatTickInterval is the re-render interval while any row is lit.
// 100ms is about 10fps, enough for a smooth fade.
const HeatTickInterval = 100 * time.Millisecond

// HeatKind names what lit a timer row. It picks both the accent
// color (see [Theme.HeatColor]) and how long the row glows.
type HeatKind int

const (
	// HeatChange is a user action: a timer was created, toggled, or
	// had its countdown or alarm changed.
	HeatChange HeatKind = iota
	// HeatAlarm is a time-of-day alarm going off.
	HeatAlarm
	// HeatTimeout is a countdown reaching zero.
	HeatTimeout
)

// Glow returns how long a row lit with this kind stays visible.
// Unknown kinds glow for [ChangeGlow].
func (kind HeatKind) Glow() time.Duration {
	switch kind {
	case HeatAlarm:
		return AlarmGlow
	case HeatTimeout:
		return TimeoutGlow
	default:
		return ChangeGlow
	}
}

type glow struct {
	litAt time.Time
	kind  HeatKind
}

// remaining reports the fraction of the glow left at now, in [0, 1].
func (g glow) remaining(now time.Time) float64 {
	span := g.kind.Glow()
	elapsed := now.Sub(g.litAt)
	if elapsed >= span {
		return 0
	}
	if elapsed <= 0 {
		return 1
	}
	return 1 - float64(elapsed)/float64(span)
}

// HeatTracker remembers which timer rows are lit and when. The board
// model owns one and reads it on every render, so it carries no lock.
type HeatTracker struct {
	rows map[string]glow
}

// NewHeatTracker returns a tracker with no lit rows.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{rows: make(map[string]glow)}
}

// Ignite lights the row for timerID. A fresh user action never dims
// a row that an alarm or timeout is still lighting; any other ignite
// restarts the glow.
func (tracker *HeatTracker) Ignite(timerID string, kind HeatKind, now time.Time) {
	if current, lit := tracker.rows[timerID]; lit && kind == HeatChange &&
		current.kind != HeatChange && current.remaining(now) > 0 {
		return
	}
	tracker.rows[timerID] = glow{litAt: now, kind: kind}
}

// Heat returns the intensity of a row: 1 when lit, falling linearly
// to 0 over its kind's [HeatKind.Glow]. Unlit rows return 0.
func (tracker *HeatTracker) Heat(timerID string, now time.Time) float64 {
	row, lit := tracker.rows[timerID]
	if !lit {
		return 0
	}
	return row.remaining(now)
}

// Kind returns what lit a row, or [HeatChange] for a row that was
// never lit or has been swept by [HeatTracker.HasHot].
func (tracker *HeatTracker) Kind(timerID string) HeatKind {
	if row, lit := tracker.rows[timerID]; lit {
		return row.kind
	}
	return HeatChange
}

// HasHot reports whether any row is still lit at now. Rows that have
// gone dark are forgotten; the board stops its heat tick on false.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for timerID, row := range tracker.rows {
		if row.remaining(now) > 0 {
			hot = true
			continue
		}
		delete(tracker.rows, timerID)
	}
	return hot
}
