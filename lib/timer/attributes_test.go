// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package timer

import (
	"errors"
	"testing"
	"time"
)

func TestAttributesList(t *testing.T) {
	got := Attributes()
	want := []Attribute{AttributeDisabled, AttributeTime, AttributeAlarm}
	if len(got) != len(want) {
		t.Fatalf("Attributes() = %v, want %v", got, want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("Attributes() = %v, want %v", got, want)
		}
	}
}

func TestSetAttributeRoundTrip(t *testing.T) {
	timer, _, _ := newTestTimer(t, Config{})

	tests := []struct {
		name  Attribute
		value string
		want  string
	}{
		{AttributeTime, "3:4:5", "03:04:05"},
		{AttributeAlarm, "6:7", "06:07:00"},
		{AttributeAlarm, "", ""},
		{AttributeDisabled, "", "true"},
		{AttributeDisabled, "false", "false"},
		{AttributeDisabled, "disabled", "true"},
	}
	for _, test := range tests {
		if err := timer.SetAttribute(test.name, test.value); err != nil {
			t.Fatalf("SetAttribute(%s, %q) error: %v", test.name, test.value, err)
		}
		got, err := timer.Attribute(test.name)
		if err != nil {
			t.Fatalf("Attribute(%s) error: %v", test.name, err)
		}
		if got != test.want {
			t.Errorf("SetAttribute(%s, %q); Attribute() = %q, want %q", test.name, test.value, got, test.want)
		}
	}
}

func TestSetAttributeErrors(t *testing.T) {
	timer, _, _ := newTestTimer(t, Config{Time: "01:00:00"})

	if err := timer.SetAttribute("colour", "red"); !errors.Is(err, ErrUnknownAttribute) {
		t.Errorf("SetAttribute(colour) error = %v, want ErrUnknownAttribute", err)
	}
	if _, err := timer.Attribute("colour"); !errors.Is(err, ErrUnknownAttribute) {
		t.Errorf("Attribute(colour) error = %v, want ErrUnknownAttribute", err)
	}
	if err := timer.SetAttribute(AttributeDisabled, "maybe"); !errors.Is(err, ErrInvalidAttributeValue) {
		t.Errorf("SetAttribute(disabled, maybe) error = %v, want ErrInvalidAttributeValue", err)
	}
	if err := timer.SetAttribute(AttributeTime, "25:00"); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("SetAttribute(time, 25:00) error = %v, want ErrInvalidTime", err)
	}
	if got := timer.Time(); got != "01:00:00" {
		t.Errorf("Time() = %s, want 01:00:00", got)
	}
}

func TestApplyIsAllOrNothing(t *testing.T) {
	timer, _, _ := newTestTimer(t, Config{Time: "01:00:00", Alarm: "02:00:00"})

	newTime := "05:00:00"
	badAlarm := "99:00:00"
	disabled := true
	err := timer.Apply(Update{Time: &newTime, Alarm: &badAlarm, Disabled: &disabled})
	if !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("Apply() error = %v, want ErrInvalidTime", err)
	}

	state := timer.Snapshot()
	if state.Time != "01:00:00" || state.Alarm != "02:00:00" || state.Disabled {
		t.Fatalf("state after rejected Apply() = %+v, want unchanged", state)
	}

	goodAlarm := "06:00:00"
	if err := timer.Apply(Update{Time: &newTime, Alarm: &goodAlarm}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	state = timer.Snapshot()
	if state.Time != "05:00:00" || state.Alarm != "06:00:00" {
		t.Fatalf("state after Apply() = %+v", state)
	}
}

func TestApplyDisableStopsRunningTimer(t *testing.T) {
	timer, fake, _ := newTestTimer(t, Config{})
	timer.Run()
	disabled := true
	if err := timer.Apply(Update{Disabled: &disabled}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	fake.Advance(3 * time.Second)
	if timer.Running() || timer.Time() != "00:00:00" {
		t.Fatal("disabling should stop the tick loop")
	}

	enabled := false
	timer.Apply(Update{Disabled: &enabled})
	if err := timer.Run(); err != nil {
		t.Fatalf("Run() after re-enable error: %v", err)
	}
}
