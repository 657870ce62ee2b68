// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package timer

import (
	"errors"
	"fmt"
)

// Attribute names a field a declarative host may set by string.
type Attribute string

const (
	AttributeDisabled Attribute = "disabled"
	AttributeTime     Attribute = "time"
	AttributeAlarm    Attribute = "alarm"
)

var (
	// ErrUnknownAttribute is returned for names outside Attributes().
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrInvalidAttributeValue is returned for a disabled value other
	// than "", "disabled", "true" or "false".
	ErrInvalidAttributeValue = errors.New("invalid attribute value")
)

// Attributes lists the configurable attributes in a fixed order.
func Attributes() []Attribute {
	return []Attribute{AttributeDisabled, AttributeTime, AttributeAlarm}
}

// Update is an explicit partial reconfiguration. Nil fields are left
// alone. An empty Alarm clears the alarm.
type Update struct {
	Time     *string
	Alarm    *string
	Disabled *bool
}

// Apply validates every field of update and then applies all of them,
// or none when any field is invalid. Disabling a timer stops its tick
// loop and its countdown.
func (t *Timer) Apply(update Update) error {
	var display, alarm TimeOfDay
	var errs []error
	if update.Time != nil {
		value, err := Parse(*update.Time)
		if err != nil {
			errs = append(errs, fmt.Errorf("time: %w", err))
		}
		display = value
	}
	if update.Alarm != nil && *update.Alarm != "" {
		value, err := Parse(*update.Alarm)
		if err != nil {
			errs = append(errs, fmt.Errorf("alarm: %w", err))
		}
		alarm = value
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		t.logger.Debug("update rejected", "error", err)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if update.Time != nil {
		t.display = display
	}
	if update.Alarm != nil {
		t.alarm = alarm
		t.hasAlarm = *update.Alarm != ""
	}
	if update.Disabled != nil {
		t.disabled = *update.Disabled
		if t.disabled {
			t.stopLocked()
			t.stopCountDownLocked()
		}
	}
	return nil
}

// SetAttribute sets one attribute from its string form. "time" and
// "alarm" take "H:M:S" values (an empty alarm clears it). "disabled"
// follows boolean attribute convention: "", "disabled" and "true"
// disable, "false" enables.
func (t *Timer) SetAttribute(name Attribute, value string) error {
	var update Update
	switch name {
	case AttributeTime:
		update.Time = &value
	case AttributeAlarm:
		update.Alarm = &value
	case AttributeDisabled:
		var disabled bool
		switch value {
		case "", "true", string(AttributeDisabled):
			disabled = true
		case "false":
			disabled = false
		default:
			return fmt.Errorf("%s=%q: %w", name, value, ErrInvalidAttributeValue)
		}
		update.Disabled = &disabled
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownAttribute)
	}
	return t.Apply(update)
}

// Attribute returns the string form of one attribute, as SetAttribute
// would accept it. An unset alarm reads as "".
func (t *Timer) Attribute(name Attribute) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch name {
	case AttributeTime:
		return t.display.String(), nil
	case AttributeAlarm:
		if !t.hasAlarm {
			return "", nil
		}
		return t.alarm.String(), nil
	case AttributeDisabled:
		if t.disabled {
			return "true", nil
		}
		return "false", nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownAttribute)
}
