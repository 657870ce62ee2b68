// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package timer

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// MaxCountdownSeconds bounds the length of a countdown. Longer
// inputs are rejected with ErrOutOfRange.
const MaxCountdownSeconds = math.MaxInt32

// StopToken is the countdown input that halts a running countdown,
// equivalent to passing false.
const StopToken = "stop"

var (
	// ErrUnrecognizedCountdown is returned by CountDown for input that
	// is neither a duration nor a stop request.
	ErrUnrecognizedCountdown = errors.New("unrecognized countdown input")

	// ErrEmptyCountdown is returned by CountDown for a duration of zero
	// seconds or less. Nothing is armed.
	ErrEmptyCountdown = errors.New("countdown duration must be positive")
)

// CountDown drives the countdown state machine. spec selects the mode:
//
//   - an integer, an integral float, a time.Duration, a numeric string
//     ("90") or an "H:M:S" string ("0:1:30") arms a countdown of that
//     many seconds and starts it, replacing any countdown in progress;
//   - false or "stop" halts the countdown;
//   - anything else returns ErrUnrecognizedCountdown and changes
//     nothing.
//
// When the remaining seconds reach zero the timer raises one timeout
// event and the countdown halts itself. The countdown is independent
// of Run and Stop.
func (t *Timer) CountDown(spec any) error {
	seconds, stop, err := countdownSeconds(spec)
	if err != nil {
		t.logger.Debug("countdown rejected", "input", spec, "error", err)
		return err
	}
	if stop {
		t.StopCountDown()
		return nil
	}
	return t.CountDownSeconds(seconds)
}

// CountDownSeconds arms and starts a countdown of the given length.
func (t *Timer) CountDownSeconds(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("%d seconds: %w", seconds, ErrEmptyCountdown)
	}
	if seconds > MaxCountdownSeconds {
		return fmt.Errorf("%d seconds: %w", seconds, ErrOutOfRange)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disabled {
		return ErrDisabled
	}

	t.stopCountDownLocked()
	t.secondsRemaining = seconds
	t.countdownSeconds = seconds
	t.countdownStartedAt = t.clock.Now().Format("15:04:05")
	t.countdownGeneration++
	generation := t.countdownGeneration
	t.countdown = t.clock.Every(t.interval, func() { t.countdownTick(generation) })
	return nil
}

// StopCountDown halts the countdown, keeping the remaining seconds.
// Stopping when no countdown runs does nothing.
func (t *Timer) StopCountDown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopCountDownLocked()
}

func (t *Timer) stopCountDownLocked() {
	if t.countdown == nil {
		return
	}
	t.countdown.Stop()
	t.countdown = nil
}

// CountDownRemaining returns the seconds left on the countdown.
func (t *Timer) CountDownRemaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.secondsRemaining
}

// CountingDown reports whether a countdown loop is active.
func (t *Timer) CountingDown() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countdown != nil
}

func (t *Timer) countdownTick(generation uint64) {
	t.mu.Lock()
	if t.countdown == nil || generation != t.countdownGeneration {
		t.mu.Unlock()
		return
	}
	t.secondsRemaining--
	if t.secondsRemaining > 0 {
		t.mu.Unlock()
		return
	}
	t.secondsRemaining = 0
	t.stopCountDownLocked()
	event := Event{
		Kind:           EventTimeout,
		TimerID:        t.id,
		StartedAt:      t.countdownStartedAt,
		SecondsExpired: t.countdownSeconds,
		At:             t.clock.Now(),
	}
	listeners := t.listenersLocked()
	t.mu.Unlock()

	t.logger.Debug("countdown expired", "seconds", event.SecondsExpired)
	deliver(listeners, event)
}

// countdownSeconds classifies a CountDown argument. It returns the
// duration in seconds, or stop=true for a stop request.
func countdownSeconds(spec any) (seconds int, stop bool, err error) {
	switch value := spec.(type) {
	case bool:
		if !value {
			return 0, true, nil
		}
		return 0, false, fmt.Errorf("%v: %w", value, ErrUnrecognizedCountdown)
	case string:
		return countdownString(value)
	case time.Duration:
		seconds := value / time.Second
		if seconds > MaxCountdownSeconds {
			return 0, false, fmt.Errorf("%v: %w", value, ErrOutOfRange)
		}
		return int(seconds), false, nil
	}
	if integer, ok := toInt(spec); ok {
		return integer, false, nil
	}
	return 0, false, fmt.Errorf("%T: %w", spec, ErrUnrecognizedCountdown)
}

// countdownString accepts "stop", a bare number of seconds, or an
// "H:M:S" duration. Duration fields are not range-checked; "0:90:0"
// counts down ninety minutes.
func countdownString(value string) (int, bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == StopToken {
		return 0, true, nil
	}
	fields, err := parseFields(trimmed)
	if err != nil {
		return 0, false, err
	}
	if fields[0] < 0 || fields[1] < 0 || fields[2] < 0 {
		return 0, false, fmt.Errorf("%q: %w", value, ErrOutOfRange)
	}
	if fields[0] > MaxCountdownSeconds/(minutesPerHour*secondsPerMinute) ||
		fields[1] > MaxCountdownSeconds/secondsPerMinute ||
		fields[2] > MaxCountdownSeconds {
		return 0, false, fmt.Errorf("%q: %w", value, ErrOutOfRange)
	}
	if !strings.Contains(trimmed, ":") {
		// A bare number is seconds, not hours.
		return fields[0], false, nil
	}
	total := fields[0]*minutesPerHour*secondsPerMinute + fields[1]*secondsPerMinute + fields[2]
	if total > MaxCountdownSeconds {
		return 0, false, fmt.Errorf("%q: %w", value, ErrOutOfRange)
	}
	return total, false, nil
}
