// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"errors"
	"testing"
	"time"

	"github.com/jomtimer/jomtimer/lib/clock"
	"github.com/jomtimer/jomtimer/lib/timer"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestBoard(t *testing.T, config Config, options ...Option) (*Board, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(epoch)
	b := New(config, append([]Option{WithClock(fake)}, options...)...)
	t.Cleanup(b.Close)
	return b, fake
}

func TestCreateStartsTimer(t *testing.T) {
	b, fake := newTestBoard(t, Config{})

	view, err := b.Create("1:2:3")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if view.Number != 1 || view.State.ID != "tmrCreated1" {
		t.Fatalf("Create() = %+v, want tmrCreated1", view)
	}
	if view.Status != StatusRunning || view.Button != PauseButton {
		t.Fatalf("new timer status=%s button=%+v, want running with pause button", view.Status, view.Button)
	}

	fake.Advance(2 * time.Second)
	got, err := b.Entry("tmrCreated1")
	if err != nil {
		t.Fatalf("Entry() error: %v", err)
	}
	if got.State.Time != "01:02:05" {
		t.Fatalf("Time = %s, want 01:02:05", got.State.Time)
	}
}

func TestCreateInvalidStartTimeStartsAtMidnight(t *testing.T) {
	b, _ := newTestBoard(t, Config{})
	view, err := b.Create("30:00:00")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if view.State.Time != "00:00:00" {
		t.Fatalf("Time = %s, want 00:00:00", view.State.Time)
	}
}

func TestCreateCapsAtMax(t *testing.T) {
	b, _ := newTestBoard(t, Config{})

	for index := 1; index <= DefaultMaxTimers; index++ {
		if _, err := b.Create("0:0:0"); err != nil {
			t.Fatalf("Create() #%d error: %v", index, err)
		}
	}
	if got := b.Remaining(); got != 0 {
		t.Fatalf("Remaining() = %d, want 0", got)
	}

	for range 3 {
		if _, err := b.Create("0:0:0"); !errors.Is(err, ErrLimitReached) {
			t.Fatalf("Create() past cap error = %v, want ErrLimitReached", err)
		}
	}
	if got := b.Created(); got != DefaultMaxTimers {
		t.Fatalf("Created() = %d, want %d", got, DefaultMaxTimers)
	}
	if got := len(b.Entries()); got != DefaultMaxTimers {
		t.Fatalf("len(Entries()) = %d, want %d", got, DefaultMaxTimers)
	}
}

func TestCustomMax(t *testing.T) {
	b, _ := newTestBoard(t, Config{MaxTimers: 2})
	b.Create("")
	b.Create("")
	if _, err := b.Create(""); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("third Create() error = %v, want ErrLimitReached", err)
	}
	if b.MaxTimers() != 2 {
		t.Fatalf("MaxTimers() = %d, want 2", b.MaxTimers())
	}
}

func TestToggle(t *testing.T) {
	b, fake := newTestBoard(t, Config{})
	b.Create("0:0:0")

	button, err := b.Toggle("tmrCreated1")
	if err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}
	if button != ResumeButton {
		t.Fatalf("Toggle() = %+v, want ResumeButton", button)
	}
	fake.Advance(5 * time.Second)

	view, _ := b.Entry("tmrCreated1")
	if view.State.Running || view.Status != StatusPaused || view.State.Time != "00:00:00" {
		t.Fatalf("paused entry = %+v", view)
	}

	button, err = b.Toggle("tmrCreated1")
	if err != nil {
		t.Fatalf("second Toggle() error: %v", err)
	}
	if button != PauseButton {
		t.Fatalf("Toggle() = %+v, want PauseButton", button)
	}
	fake.Advance(3 * time.Second)
	view, _ = b.Entry("tmrCreated1")
	if !view.State.Running || view.Status != StatusRunning || view.State.Time != "00:00:03" {
		t.Fatalf("resumed entry = %+v", view)
	}
}

func TestToggleUnknown(t *testing.T) {
	b, _ := newTestBoard(t, Config{})
	if _, err := b.Toggle("nope"); !errors.Is(err, ErrUnknownTimer) {
		t.Fatalf("Toggle(nope) error = %v, want ErrUnknownTimer", err)
	}
}

func TestAlarmMarksAlertedAndStops(t *testing.T) {
	b, fake := newTestBoard(t, Config{Alarm: "00:00:03"})
	b.Create("00:00:00")
	b.Create("00:00:10")

	fake.Advance(5 * time.Second)

	first, _ := b.Entry("tmrCreated1")
	if first.Status != StatusAlerted || first.State.Running {
		t.Fatalf("alarmed entry = %+v, want alerted and stopped", first)
	}
	if first.State.Time != "00:00:03" {
		t.Fatalf("alarmed entry Time = %s, want 00:00:03", first.State.Time)
	}
	if first.LastEvent == nil || first.LastEvent.Kind != timer.EventAlarm {
		t.Fatalf("LastEvent = %+v, want alarm", first.LastEvent)
	}

	second, _ := b.Entry("tmrCreated2")
	if second.Status != StatusRunning || second.State.Time != "00:00:15" {
		t.Fatalf("other entry = %+v, want untouched", second)
	}
}

func TestAlertedTimerToggles(t *testing.T) {
	b, fake := newTestBoard(t, Config{Alarm: "00:00:01"})
	b.Create("00:00:00")
	fake.Advance(time.Second)

	// The button still reads "II" after the alarm, so the first
	// toggle pauses and the second resumes.
	if button, _ := b.Toggle("tmrCreated1"); !button.Paused {
		t.Fatalf("first Toggle() after alarm = %+v, want paused", button)
	}
	if button, _ := b.Toggle("tmrCreated1"); button.Paused {
		t.Fatalf("second Toggle() after alarm = %+v, want running", button)
	}
	fake.Advance(2 * time.Second)
	view, _ := b.Entry("tmrCreated1")
	if view.State.Time != "00:00:03" || view.Status != StatusRunning {
		t.Fatalf("entry = %+v, want running at 00:00:03", view)
	}
}

func TestCountDownMarksExpired(t *testing.T) {
	b, fake := newTestBoard(t, Config{})
	b.Create("0:0:0")

	if err := b.CountDown("tmrCreated1", "0:0:2"); err != nil {
		t.Fatalf("CountDown() error: %v", err)
	}
	fake.Advance(2 * time.Second)

	view, _ := b.Entry("tmrCreated1")
	if !view.CountdownExpired {
		t.Fatal("CountdownExpired = false after timeout")
	}
	if view.LastEvent == nil || view.LastEvent.SecondsExpired != 2 {
		t.Fatalf("LastEvent = %+v, want timeout of 2s", view.LastEvent)
	}
	if view.Status != StatusRunning {
		t.Fatalf("Status = %s, countdown expiry should not stop the clock", view.Status)
	}

	if err := b.CountDown("tmrCreated1", 5); err != nil {
		t.Fatalf("re-arm CountDown() error: %v", err)
	}
	view, _ = b.Entry("tmrCreated1")
	if view.CountdownExpired {
		t.Fatal("re-arming should clear CountdownExpired")
	}

	if err := b.StopCountDown("tmrCreated1"); err != nil {
		t.Fatalf("StopCountDown() error: %v", err)
	}
	if err := b.CountDown("tmrCreated1", true); !errors.Is(err, timer.ErrUnrecognizedCountdown) {
		t.Fatalf("CountDown(true) error = %v, want ErrUnrecognizedCountdown", err)
	}
}

func TestSetAlarm(t *testing.T) {
	b, fake := newTestBoard(t, Config{})
	b.Create("0:0:0")
	if err := b.SetAlarm("tmrCreated1", "0:0:2"); err != nil {
		t.Fatalf("SetAlarm() error: %v", err)
	}
	if err := b.SetAlarm("tmrCreated1", "0:0:99"); !errors.Is(err, timer.ErrInvalidTime) {
		t.Fatalf("SetAlarm(invalid) error = %v, want ErrInvalidTime", err)
	}
	fake.Advance(2 * time.Second)
	view, _ := b.Entry("tmrCreated1")
	if view.Status != StatusAlerted {
		t.Fatalf("Status = %s, want alerted", view.Status)
	}
}

func TestClearAlarm(t *testing.T) {
	b, fake := newTestBoard(t, Config{Alarm: "0:0:1"})
	b.Create("0:0:0")
	if err := b.ClearAlarm("tmrCreated1"); err != nil {
		t.Fatalf("ClearAlarm() error: %v", err)
	}
	fake.Advance(2 * time.Second)
	view, _ := b.Entry("tmrCreated1")
	if view.Status != StatusRunning || view.State.Alarm != "" {
		t.Fatalf("entry = %+v, want running with no alarm", view)
	}
	if err := b.ClearAlarm("nope"); !errors.Is(err, ErrUnknownTimer) {
		t.Fatalf("ClearAlarm(nope) error = %v, want ErrUnknownTimer", err)
	}
}

func TestMount(t *testing.T) {
	b, fake := newTestBoard(t, Config{MaxTimers: 1})

	view, err := b.Mount(timer.Config{ID: "jomTimer", Time: "12:00:00", Autostart: true})
	if err != nil {
		t.Fatalf("Mount() error: %v", err)
	}
	if view.Number != 0 || view.Status != StatusRunning {
		t.Fatalf("Mount() = %+v, want running unnumbered entry", view)
	}

	idle, err := b.Mount(timer.Config{ID: "idle"})
	if err != nil {
		t.Fatalf("Mount(idle) error: %v", err)
	}
	if idle.Status != StatusPaused || idle.Button != ResumeButton {
		t.Fatalf("Mount(idle) = %+v, want paused", idle)
	}

	if _, err := b.Mount(timer.Config{ID: "jomTimer"}); !errors.Is(err, ErrDuplicateTimer) {
		t.Fatalf("duplicate Mount() error = %v, want ErrDuplicateTimer", err)
	}
	if _, err := b.Mount(timer.Config{}); err == nil {
		t.Fatal("Mount() without id should fail")
	}

	// Mounted timers do not use up the Create cap.
	if _, err := b.Create(""); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	fake.Advance(time.Second)
	view, _ = b.Entry("jomTimer")
	if view.State.Time != "12:00:01" {
		t.Fatalf("mounted Time = %s, want 12:00:01", view.State.Time)
	}
}

func TestMountReservedIDKeepsCreateCap(t *testing.T) {
	b, _ := newTestBoard(t, Config{MaxTimers: 2})

	if _, err := b.Mount(timer.Config{ID: "tmrCreated1"}); !errors.Is(err, ErrReservedTimerID) {
		t.Fatalf("Mount(tmrCreated1) error = %v, want ErrReservedTimerID", err)
	}
	for want := 1; want <= 2; want++ {
		view, err := b.Create("")
		if err != nil {
			t.Fatalf("Create() #%d error: %v", want, err)
		}
		if view.Number != want {
			t.Fatalf("Create() #%d Number = %d", want, view.Number)
		}
	}
	if _, err := b.Create(""); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("third Create() error = %v, want ErrLimitReached", err)
	}
	if entries := b.Entries(); len(entries) != 2 || b.Created() != 2 {
		t.Fatalf("entries = %d created = %d, want 2 and 2", len(entries), b.Created())
	}
}

func TestWithListenerReceivesEvents(t *testing.T) {
	var events []timer.Event
	b, fake := newTestBoard(t, Config{Alarm: "00:00:01"}, WithListener(func(event timer.Event) {
		events = append(events, event)
	}))
	b.Create("0:0:0")
	fake.Advance(3 * time.Second)

	if len(events) != 1 || events[0].TimerID != "tmrCreated1" {
		t.Fatalf("events = %+v, want one alarm from tmrCreated1", events)
	}
}

func TestChangesSignalAndClose(t *testing.T) {
	b, _ := newTestBoard(t, Config{})
	b.Create("")

	select {
	case <-b.Changes():
	default:
		t.Fatal("Create() did not signal Changes")
	}

	b.Close()
	b.Close()
	if _, ok := <-b.Changes(); ok {
		t.Fatal("Changes not closed after Close()")
	}
	if _, err := b.Create(""); !errors.Is(err, ErrClosed) {
		t.Fatalf("Create() after Close() error = %v, want ErrClosed", err)
	}
	if _, err := b.Toggle("tmrCreated1"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Toggle() after Close() error = %v, want ErrClosed", err)
	}
}

func TestCloseDetachesTimers(t *testing.T) {
	b, fake := newTestBoard(t, Config{})
	b.Create("")
	b.CountDown("tmrCreated1", 10)
	b.Close()

	if got := fake.PendingCount(); got != 0 {
		t.Fatalf("PendingCount() = %d after Close(), want 0", got)
	}
}
