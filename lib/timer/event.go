// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package timer

import "time"

// EventKind names a notification raised by a Timer.
type EventKind string

const (
	// EventAlarm is raised when a running timer's display reaches its
	// alarm time.
	EventAlarm EventKind = "alarm"

	// EventTimeout is raised when a countdown reaches zero.
	EventTimeout EventKind = "timeout"
)

// Event is a notification delivered to listeners. Fields not relevant
// to the kind are left zero.
type Event struct {
	Kind    EventKind `json:"kind"`
	TimerID string    `json:"timer_id"`

	// Time is the matched alarm time ("HH:MM:SS") for alarm events.
	Time string `json:"time,omitempty"`

	// StartedAt is the wall-clock reading ("HH:MM:SS") when the
	// countdown was armed. Timeout events only.
	StartedAt string `json:"started_at,omitempty"`

	// SecondsExpired is the armed countdown length. Timeout events only.
	SecondsExpired int `json:"seconds_expired,omitempty"`

	// At is the clock reading when the event was raised.
	At time.Time `json:"at"`
}

// Listener receives timer events. Listeners run on the goroutine that
// drives the clock (the ticker goroutine for the real clock, the
// caller of Advance for the fake clock) with no timer lock held, so
// they may call back into the timer.
type Listener func(Event)

type subscription struct {
	id       uint64
	listener Listener
}

// Subscribe registers listener for alarm and timeout events and
// returns a function that removes it. Calling the returned function
// more than once is harmless.
func (t *Timer) Subscribe(listener Listener) (cancel func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextSubscription++
	id := t.nextSubscription
	t.subscriptions = append(t.subscriptions, subscription{id: id, listener: listener})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for index, entry := range t.subscriptions {
			if entry.id == id {
				t.subscriptions = append(t.subscriptions[:index], t.subscriptions[index+1:]...)
				return
			}
		}
	}
}

// listenersLocked snapshots the listener list so events can be
// delivered after the lock is released. Must be called with t.mu held.
func (t *Timer) listenersLocked() []Listener {
	listeners := make([]Listener, len(t.subscriptions))
	for index, entry := range t.subscriptions {
		listeners[index] = entry.listener
	}
	return listeners
}

func deliver(listeners []Listener, event Event) {
	for _, listener := range listeners {
		listener(event)
	}
}
