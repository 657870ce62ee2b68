// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jomtimer/jomtimer/lib/clock"
	"github.com/jomtimer/jomtimer/lib/timer"
)

// DefaultMaxTimers caps how many timers Create will make.
const DefaultMaxTimers = 10

// CreatedIDPrefix starts the id of every timer Create makes
// ("tmrCreated1", "tmrCreated2", ...). Mount refuses ids with it.
const CreatedIDPrefix = "tmrCreated"

var (
	// ErrLimitReached is returned by Create once the cap is reached.
	ErrLimitReached = errors.New("timer limit reached")

	// ErrUnknownTimer is returned for an id the board does not hold.
	ErrUnknownTimer = errors.New("unknown timer")

	// ErrDuplicateTimer is returned by Mount for an id already in use.
	ErrDuplicateTimer = errors.New("duplicate timer id")

	// ErrReservedTimerID is returned by Mount for an id starting with
	// CreatedIDPrefix.
	ErrReservedTimerID = errors.New("timer id is reserved for created timers")

	// ErrClosed is returned by every mutator after Close.
	ErrClosed = errors.New("board is closed")
)

// Config configures a Board.
type Config struct {
	// MaxTimers caps Create. Zero means DefaultMaxTimers. Mounted
	// timers do not count against it.
	MaxTimers int

	// Alarm is applied to every created timer when non-empty.
	Alarm string
}

// Option customizes a Board.
type Option func(*Board)

// WithClock sets the clock every timer on the board ticks on.
func WithClock(c clock.Clock) Option {
	return func(b *Board) { b.clock = c }
}

// WithLogger sets the board's logger. Timers log through it too.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) { b.logger = logger }
}

// WithInterval sets the tick period of every timer on the board.
func WithInterval(interval time.Duration) Option {
	return func(b *Board) { b.interval = interval }
}

// WithListener subscribes listener to every timer the board creates
// or mounts, after the board's own handler. The event journal plugs in
// here.
func WithListener(listener timer.Listener) Option {
	return func(b *Board) { b.listeners = append(b.listeners, listener) }
}

// Board holds a set of timers, each paired with a pause/resume button.
// Alarms mark the timer alerted and stop it. All methods are safe for
// concurrent use; timer events arrive on clock goroutines.
type Board struct {
	clock     clock.Clock
	logger    *slog.Logger
	interval  time.Duration
	listeners []timer.Listener
	maxTimers int
	alarm     string

	mu      sync.Mutex
	created int
	entries []*entry
	byID    map[string]*entry
	closed  bool

	changes chan struct{}
}

// New creates an empty board.
func New(config Config, options ...Option) *Board {
	b := &Board{
		clock:     clock.Real(),
		logger:    slog.New(slog.DiscardHandler),
		interval:  timer.DefaultInterval,
		maxTimers: config.MaxTimers,
		alarm:     config.Alarm,
		byID:      make(map[string]*entry),
		changes:   make(chan struct{}, 1),
	}
	if b.maxTimers <= 0 {
		b.maxTimers = DefaultMaxTimers
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// Create makes a new running timer starting at startTime. An invalid
// start time is logged and the timer starts at 00:00:00. Once
// MaxTimers timers have been created every further call returns
// ErrLimitReached.
func (b *Board) Create(startTime string) (View, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return View{}, ErrClosed
	}
	if b.created >= b.maxTimers {
		b.mu.Unlock()
		b.logger.Warn("timer limit reached", "max", b.maxTimers)
		return View{}, fmt.Errorf("%d timers: %w", b.maxTimers, ErrLimitReached)
	}
	b.created++
	number := b.created
	b.mu.Unlock()

	config := timer.Config{
		ID:        fmt.Sprintf("%s%d", CreatedIDPrefix, number),
		Time:      startTime,
		Alarm:     b.alarm,
		Autostart: true,
	}
	view, err := b.add(number, config)
	if err != nil {
		// Give the slot back unless a later Create already took the
		// next number.
		b.mu.Lock()
		if b.created == number {
			b.created--
		}
		b.mu.Unlock()
		return View{}, err
	}
	b.logger.Info("timer created", "timer", view.State.ID, "time", view.State.Time)
	return view, nil
}

// Mount adds a timer described by config, outside the Create cap.
// Config.Autostart decides whether it starts running.
func (b *Board) Mount(config timer.Config) (View, error) {
	if config.ID == "" {
		return View{}, errors.New("mount: timer id is required")
	}
	if strings.HasPrefix(config.ID, CreatedIDPrefix) {
		return View{}, fmt.Errorf("mount %q: %w", config.ID, ErrReservedTimerID)
	}
	view, err := b.add(0, config)
	if err != nil {
		return View{}, err
	}
	b.logger.Info("timer mounted", "timer", config.ID, "time", view.State.Time, "running", view.State.Running)
	return view, nil
}

func (b *Board) add(number int, config timer.Config) (View, error) {
	t := timer.New(config,
		timer.WithClock(b.clock),
		timer.WithLogger(b.logger),
		timer.WithInterval(b.interval),
	)
	e := &entry{number: number, timer: t, button: PauseButton, status: StatusPaused}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return View{}, ErrClosed
	}
	if _, exists := b.byID[config.ID]; exists {
		b.mu.Unlock()
		return View{}, fmt.Errorf("%q: %w", config.ID, ErrDuplicateTimer)
	}
	b.entries = append(b.entries, e)
	b.byID[config.ID] = e
	b.mu.Unlock()

	t.Subscribe(func(event timer.Event) { b.handleEvent(e, event) })
	for _, listener := range b.listeners {
		t.Subscribe(listener)
	}

	if err := t.Attach(); err != nil {
		b.logger.Warn("timer did not start", "timer", config.ID, "error", err)
	}

	b.mu.Lock()
	if t.Running() {
		e.button = PauseButton
		e.status = StatusRunning
	} else {
		e.button = ResumeButton
		e.status = StatusPaused
	}
	view := e.viewLocked()
	b.mu.Unlock()

	b.notify()
	return view, nil
}

// Toggle flips the pause/resume button of the timer with the given id
// and stops or runs the timer to match. Returns the new button state.
func (b *Board) Toggle(id string) (ButtonState, error) {
	b.mu.Lock()
	e, err := b.lookupLocked(id)
	if err != nil {
		b.mu.Unlock()
		return ButtonState{}, err
	}
	pausing := !e.button.Paused
	b.mu.Unlock()

	if pausing {
		e.timer.Stop()
	} else if err := e.timer.Run(); err != nil {
		b.logger.Warn("timer did not resume", "timer", id, "error", err)
		return ButtonState{}, fmt.Errorf("resuming %s: %w", id, err)
	}

	b.mu.Lock()
	if pausing {
		e.button = ResumeButton
		e.status = StatusPaused
	} else {
		e.button = PauseButton
		e.status = StatusRunning
	}
	button := e.button
	b.mu.Unlock()

	b.logger.Info("timer toggled", "timer", id, "paused", button.Paused)
	b.notify()
	return button, nil
}

// SetAlarm sets the alarm of one timer.
func (b *Board) SetAlarm(id, alarm string) error {
	t, err := b.timer(id)
	if err != nil {
		return err
	}
	if err := t.SetAlarm(alarm); err != nil {
		return err
	}
	b.notify()
	return nil
}

// ClearAlarm removes the alarm of one timer.
func (b *Board) ClearAlarm(id string) error {
	t, err := b.timer(id)
	if err != nil {
		return err
	}
	t.ClearAlarm()
	b.notify()
	return nil
}

// CountDown passes spec to the CountDown of one timer.
func (b *Board) CountDown(id string, spec any) error {
	t, err := b.timer(id)
	if err != nil {
		return err
	}
	if err := t.CountDown(spec); err != nil {
		return err
	}
	b.mu.Lock()
	if e, ok := b.byID[id]; ok {
		e.countdownExpired = false
	}
	b.mu.Unlock()
	b.notify()
	return nil
}

// StopCountDown halts the countdown of one timer.
func (b *Board) StopCountDown(id string) error {
	t, err := b.timer(id)
	if err != nil {
		return err
	}
	t.StopCountDown()
	b.notify()
	return nil
}

// Timer returns the timer with the given id.
func (b *Board) Timer(id string) (*timer.Timer, error) {
	return b.timer(id)
}

func (b *Board) timer(id string) (*timer.Timer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	return e.timer, nil
}

func (b *Board) lookupLocked(id string) (*entry, error) {
	if b.closed {
		return nil, ErrClosed
	}
	e, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownTimer)
	}
	return e, nil
}

// handleEvent is every timer's first listener. An alarm marks the
// timer alerted and stops it; a timeout marks its countdown expired.
func (b *Board) handleEvent(e *entry, event timer.Event) {
	switch event.Kind {
	case timer.EventAlarm:
		e.timer.Stop()
		b.mu.Lock()
		e.status = StatusAlerted
		e.lastEvent = &event
		b.mu.Unlock()
		b.logger.Info("timer alarm", "timer", event.TimerID, "time", event.Time)
	case timer.EventTimeout:
		b.mu.Lock()
		e.countdownExpired = true
		e.lastEvent = &event
		b.mu.Unlock()
		b.logger.Info("timer countdown expired",
			"timer", event.TimerID,
			"started_at", event.StartedAt,
			"seconds", event.SecondsExpired,
		)
	}
	b.notify()
}

// Entries returns a snapshot of every timer in creation order.
func (b *Board) Entries() []View {
	b.mu.Lock()
	defer b.mu.Unlock()
	views := make([]View, len(b.entries))
	for index, e := range b.entries {
		views[index] = e.viewLocked()
	}
	return views
}

// Entry returns a snapshot of one timer.
func (b *Board) Entry(id string) (View, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.lookupLocked(id)
	if err != nil {
		return View{}, err
	}
	return e.viewLocked(), nil
}

// Created returns how many timers Create has made.
func (b *Board) Created() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created
}

// Remaining returns how many more timers Create will make.
func (b *Board) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxTimers - b.created
}

// MaxTimers returns the Create cap.
func (b *Board) MaxTimers() int { return b.maxTimers }

// Changes delivers a signal after any state change. Signals coalesce:
// a renderer that falls behind sees one pending signal, then reads the
// current state with Entries. The channel is closed by Close.
func (b *Board) Changes() <-chan struct{} { return b.changes }

func (b *Board) notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.changes <- struct{}{}:
	default:
	}
}

// Close detaches every timer and closes the Changes channel.
// Subsequent calls do nothing.
func (b *Board) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	entries := b.entries
	close(b.changes)
	b.mu.Unlock()

	for _, e := range entries {
		e.timer.Detach()
	}
}
