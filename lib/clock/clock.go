// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the scheduler a timer engine ticks on. Production code
// injects Real(); tests inject Fake() and drive time with Advance.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for duration d, then calls f once. If d <= 0, f
	// is called immediately in a new goroutine (real) or synchronously
	// (fake).
	AfterFunc(d time.Duration, f func()) *Timer

	// Every calls f once per interval d until the returned Ticker is
	// stopped. Ticks missed while f is still running are dropped, not
	// queued. Panics if d <= 0.
	Every(d time.Duration, f func()) *Ticker
}

// Ticker is a periodic callback registration returned by Every.
type Ticker struct {
	stopFunc func() bool
}

// Stop cancels the periodic callback. Returns true if the ticker was
// active. A callback already executing when Stop is called runs to
// completion; no further callbacks start after Stop returns.
func (t *Ticker) Stop() bool { return t.stopFunc() }

// Timer is a one-shot callback registration returned by AfterFunc.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the Timer from firing. Returns true if the call stops
// the timer, false if the timer has already fired or been stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }
