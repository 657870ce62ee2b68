// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package timer

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jomtimer/jomtimer/lib/clock"
)

// DefaultInterval is the tick period of a timer built without
// WithInterval.
const DefaultInterval = time.Second

// ErrDisabled is returned by Run and CountDown on a disabled timer.
var ErrDisabled = errors.New("timer is disabled")

// Config is the construction-time configuration of a Timer.
type Config struct {
	// ID identifies the timer in events and logs.
	ID string

	// Time is the initial display in "H:M:S" form. Invalid or empty
	// values leave the timer at 00:00:00.
	Time string

	// Alarm is the optional alarm time in "H:M:S" form. Invalid values
	// leave the alarm unset.
	Alarm string

	// Disabled prevents Run and CountDown until cleared.
	Disabled bool

	// Autostart makes Attach start the tick loop.
	Autostart bool
}

// Option customizes a Timer beyond its Config.
type Option func(*Timer)

// WithClock sets the clock the timer ticks on. The default is
// clock.Real().
func WithClock(c clock.Clock) Option {
	return func(t *Timer) { t.clock = c }
}

// WithLogger sets the logger for rejected input and lifecycle
// messages. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Timer) { t.logger = logger }
}

// WithInterval sets the tick period. Every tick advances the display
// by one second regardless of the period, so a shorter interval runs
// the clock faster than wall time. Non-positive values are ignored.
func WithInterval(interval time.Duration) Option {
	return func(t *Timer) {
		if interval > 0 {
			t.interval = interval
		}
	}
}

// WithTickFunc registers fn to run after every display tick with the
// new display, before any alarm the tick raises is delivered. It runs
// on the clock goroutine with no timer lock held.
func WithTickFunc(fn func(TimeOfDay)) Option {
	return func(t *Timer) { t.onTick = fn }
}

// Timer is a 24-hour clock display that counts up one second per tick
// and raises an alarm event when it reaches its alarm time. It also
// carries an independent countdown (see CountDown).
//
// All methods are safe for concurrent use.
type Timer struct {
	id       string
	clock    clock.Clock
	logger   *slog.Logger
	interval time.Duration
	onTick   func(TimeOfDay)

	mu        sync.Mutex
	display   TimeOfDay
	alarm     TimeOfDay
	hasAlarm  bool
	disabled  bool
	autostart bool
	attached  bool

	// ticker is non-nil while the clock is running. tickGeneration
	// increments on every Run so a tick already in flight from a
	// cancelled loop is discarded.
	ticker         *clock.Ticker
	tickGeneration uint64

	countdown           *clock.Ticker
	countdownGeneration uint64
	secondsRemaining    int
	countdownSeconds    int
	countdownStartedAt  string

	subscriptions    []subscription
	nextSubscription uint64
}

// New creates a stopped timer. Invalid Time or Alarm values are
// logged and ignored, leaving the defaults in place.
func New(config Config, options ...Option) *Timer {
	t := &Timer{
		id:        config.ID,
		clock:     clock.Real(),
		logger:    slog.New(slog.DiscardHandler),
		interval:  DefaultInterval,
		disabled:  config.Disabled,
		autostart: config.Autostart,
	}
	for _, option := range options {
		option(t)
	}
	t.logger = t.logger.With("timer", t.id)

	if config.Time != "" {
		if err := t.SetTime(config.Time); err != nil {
			t.logger.Warn("ignoring initial time", "time", config.Time, "error", err)
		}
	}
	if config.Alarm != "" {
		if err := t.SetAlarm(config.Alarm); err != nil {
			t.logger.Warn("ignoring initial alarm", "alarm", config.Alarm, "error", err)
		}
	}
	return t
}

// ID returns the identifier from Config.
func (t *Timer) ID() string { return t.id }

// Time returns the current display as "HH:MM:SS".
func (t *Timer) Time() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.display.String()
}

// SetTime replaces the display. On error the display is unchanged.
func (t *Timer) SetTime(s string) error {
	value, err := Parse(s)
	if err != nil {
		t.logger.Debug("time rejected", "input", s, "error", err)
		return err
	}
	t.mu.Lock()
	t.display = value
	t.mu.Unlock()
	return nil
}

// Alarm returns the alarm time in canonical form, and whether one is
// set.
func (t *Timer) Alarm() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.hasAlarm {
		return "", false
	}
	return t.alarm.String(), true
}

// SetAlarm sets the alarm time. On error the previous alarm (or its
// absence) is kept.
func (t *Timer) SetAlarm(s string) error {
	value, err := Parse(s)
	if err != nil {
		t.logger.Debug("alarm rejected", "input", s, "error", err)
		return err
	}
	t.mu.Lock()
	t.alarm = value
	t.hasAlarm = true
	t.mu.Unlock()
	return nil
}

// ClearAlarm removes the alarm.
func (t *Timer) ClearAlarm() {
	t.mu.Lock()
	t.hasAlarm = false
	t.mu.Unlock()
}

// Running reports whether the tick loop is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticker != nil
}

// Disabled reports whether the timer is disabled.
func (t *Timer) Disabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disabled
}

// Run starts the tick loop. Calling Run on a running timer does
// nothing: there is never more than one tick loop per timer.
func (t *Timer) Run() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runLocked()
}

func (t *Timer) runLocked() error {
	if t.disabled {
		return ErrDisabled
	}
	if t.ticker != nil {
		return nil
	}
	t.tickGeneration++
	generation := t.tickGeneration
	t.ticker = t.clock.Every(t.interval, func() { t.tick(generation) })
	return nil
}

// Stop halts the tick loop. Stopping a stopped or never-started timer
// does nothing.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Timer) stopLocked() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	t.ticker = nil
}

// tick advances the display by one second and raises the alarm when
// the new display matches it exactly.
func (t *Timer) tick(generation uint64) {
	t.mu.Lock()
	if t.ticker == nil || generation != t.tickGeneration {
		t.mu.Unlock()
		return
	}
	t.display = t.display.Next()
	display := t.display
	onTick := t.onTick
	if !t.hasAlarm || t.display != t.alarm {
		t.mu.Unlock()
		if onTick != nil {
			onTick(display)
		}
		return
	}
	event := Event{
		Kind:    EventAlarm,
		TimerID: t.id,
		Time:    t.alarm.String(),
		At:      t.clock.Now(),
	}
	listeners := t.listenersLocked()
	t.mu.Unlock()

	if onTick != nil {
		onTick(display)
	}
	t.logger.Debug("alarm reached", "time", event.Time)
	deliver(listeners, event)
}

// Attach marks the timer as mounted in its host and starts it when
// Config.Autostart was set.
func (t *Timer) Attach() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attached = true
	if t.autostart {
		return t.runLocked()
	}
	return nil
}

// Detach releases the timer from its host: both loops stop and all
// listeners are dropped. The display and alarm are kept, so a timer
// can be attached again.
func (t *Timer) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attached = false
	t.stopLocked()
	t.stopCountDownLocked()
	t.subscriptions = nil
}

// Attached reports whether the timer is between Attach and Detach.
func (t *Timer) Attached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attached
}

// State is a consistent snapshot of a timer for renderers.
type State struct {
	ID           string `json:"id"`
	Time         string `json:"time"`
	Alarm        string `json:"alarm,omitempty"`
	Running      bool   `json:"running"`
	CountingDown bool   `json:"counting_down"`
	Remaining    int    `json:"remaining,omitempty"`
	Disabled     bool   `json:"disabled,omitempty"`
}

// Snapshot returns the timer's state under a single lock acquisition.
func (t *Timer) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := State{
		ID:           t.id,
		Time:         t.display.String(),
		Running:      t.ticker != nil,
		CountingDown: t.countdown != nil,
		Remaining:    t.secondsRemaining,
		Disabled:     t.disabled,
	}
	if t.hasAlarm {
		state.Alarm = t.alarm.String()
	}
	return state
}
