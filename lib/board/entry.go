// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package board

import "github.com/jomtimer/jomtimer/lib/timer"

// Status is the display state of a timer on the board.
type Status string

const (
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
	StatusAlerted Status = "alerted"
)

// ButtonState is the face of a timer's pause/resume button.
type ButtonState struct {
	Label  string `json:"label"`
	Title  string `json:"title"`
	Paused bool   `json:"paused"`
}

var (
	// PauseButton is shown while the timer runs.
	PauseButton = ButtonState{Label: "II", Title: "pause timer"}

	// ResumeButton is shown while the timer is paused.
	ResumeButton = ButtonState{Label: "▶", Title: "resume timer", Paused: true}
)

// entry pairs a timer with its button. Fields other than timer are
// guarded by the board's mutex.
type entry struct {
	number           int
	timer            *timer.Timer
	button           ButtonState
	status           Status
	countdownExpired bool
	lastEvent        *timer.Event
}

// View is a snapshot of one board entry.
type View struct {
	// Number is the creation ordinal (1-based) for created timers and
	// 0 for mounted ones.
	Number int `json:"number"`

	State  timer.State `json:"state"`
	Status Status      `json:"status"`
	Button ButtonState `json:"button"`

	CountdownExpired bool `json:"countdown_expired,omitempty"`

	// LastEvent is the most recent alarm or timeout, if any.
	LastEvent *timer.Event `json:"last_event,omitempty"`
}

// viewLocked must be called with the board's mutex held.
func (e *entry) viewLocked() View {
	view := View{
		Number:           e.number,
		State:            e.timer.Snapshot(),
		Status:           e.status,
		Button:           e.button,
		CountdownExpired: e.countdownExpired,
	}
	if e.lastEvent != nil {
		event := *e.lastEvent
		view.LastEvent = &event
	}
	return view
}
