// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package timer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidTime is the root of every time string rejection. Use
// errors.Is against it to detect any invalid input; the more specific
// sentinels below wrap it.
var ErrInvalidTime = errors.New("invalid time")

var (
	// ErrMalformedTime means a field was not an integer.
	ErrMalformedTime = fmt.Errorf("%w: field is not an integer", ErrInvalidTime)

	// ErrOutOfRange means a field parsed but fell outside its range:
	// hours [0,24), minutes [0,60), seconds [0,60).
	ErrOutOfRange = fmt.Errorf("%w: field out of range", ErrInvalidTime)
)

const (
	hoursPerDay      = 24
	minutesPerHour   = 60
	secondsPerMinute = 60
	secondsPerDay    = hoursPerDay * minutesPerHour * secondsPerMinute
)

// TimeOfDay is a wall-clock reading on a 24-hour dial. The zero value
// is midnight, "00:00:00".
type TimeOfDay struct {
	Hours   int
	Minutes int
	Seconds int
}

// Parse reads an "H:M:S" string. Missing or empty fields default to 0,
// so "5" is 05:00:00 and "1::3" is 01:00:03. Fields beyond the third
// are ignored. Each field must be a decimal integer within its range.
func Parse(s string) (TimeOfDay, error) {
	fields, err := parseFields(s)
	if err != nil {
		return TimeOfDay{}, err
	}
	return FromParts(fields[0], fields[1], fields[2])
}

// MustParse is Parse for literals known to be valid. Panics otherwise.
func MustParse(s string) TimeOfDay {
	value, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("timer.MustParse(%q): %v", s, err))
	}
	return value
}

// FromParts builds a TimeOfDay from discrete fields, rejecting any
// field outside its range.
func FromParts(hours, minutes, seconds int) (TimeOfDay, error) {
	if !inRange(hours, minutes, seconds) {
		return TimeOfDay{}, fmt.Errorf("%02d:%02d:%02d: %w", hours, minutes, seconds, ErrOutOfRange)
	}
	return TimeOfDay{Hours: hours, Minutes: minutes, Seconds: seconds}, nil
}

// FromSeconds converts seconds since midnight into a TimeOfDay,
// wrapping modulo one day. Negative input wraps backwards.
func FromSeconds(total int) TimeOfDay {
	total %= secondsPerDay
	if total < 0 {
		total += secondsPerDay
	}
	return TimeOfDay{
		Hours:   total / (minutesPerHour * secondsPerMinute),
		Minutes: total / secondsPerMinute % minutesPerHour,
		Seconds: total % secondsPerMinute,
	}
}

// String returns the zero-padded "HH:MM:SS" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// TotalSeconds returns the number of seconds since midnight.
func (t TimeOfDay) TotalSeconds() int {
	return t.Hours*minutesPerHour*secondsPerMinute + t.Minutes*secondsPerMinute + t.Seconds
}

// Next returns the reading one second later. Seconds carry into
// minutes, minutes into hours, and hours wrap at 24.
func (t TimeOfDay) Next() TimeOfDay {
	t.Seconds++
	if t.Seconds == secondsPerMinute {
		t.Seconds = 0
		t.Minutes++
		if t.Minutes == minutesPerHour {
			t.Minutes = 0
			t.Hours++
			if t.Hours == hoursPerDay {
				t.Hours = 0
			}
		}
	}
	return t
}

// Valid reports whether values describe a time of day. It accepts a
// single "H:M:S" string, a single three-element sequence ([3]int,
// []int of length 3, or a TimeOfDay), or three discrete integers. Any
// other shape is invalid.
func Valid(values ...any) bool {
	switch len(values) {
	case 1:
		switch value := values[0].(type) {
		case string:
			_, err := Parse(value)
			return err == nil
		case TimeOfDay:
			return inRange(value.Hours, value.Minutes, value.Seconds)
		case [3]int:
			return inRange(value[0], value[1], value[2])
		case []int:
			return len(value) == 3 && inRange(value[0], value[1], value[2])
		}
		return false
	case 3:
		var fields [3]int
		for index, value := range values {
			integer, ok := toInt(value)
			if !ok {
				return false
			}
			fields[index] = integer
		}
		return inRange(fields[0], fields[1], fields[2])
	}
	return false
}

func inRange(hours, minutes, seconds int) bool {
	return hours >= 0 && hours < hoursPerDay &&
		minutes >= 0 && minutes < minutesPerHour &&
		seconds >= 0 && seconds < secondsPerMinute
}

// parseFields splits s into hours, minutes and seconds without range
// checks. Countdown durations reuse it, since "0:90:0" is a valid
// ninety minute countdown even though it is not a time of day.
func parseFields(s string) ([3]int, error) {
	var fields [3]int
	parts := strings.Split(s, ":")
	if len(parts) > len(fields) {
		parts = parts[:len(fields)]
	}
	for index, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return fields, fmt.Errorf("%q: %w", s, ErrMalformedTime)
		}
		fields[index] = value
	}
	return fields, nil
}

// toInt converts the integer kinds and integral floats to int. Values
// outside ±math.MaxInt32 are rejected for every kind.
func toInt(value any) (int, bool) {
	switch number := value.(type) {
	case int:
		return boundedInt(int64(number))
	case int8:
		return int(number), true
	case int16:
		return int(number), true
	case int32:
		return int(number), true
	case int64:
		return boundedInt(number)
	case uint:
		return boundedUint(uint64(number))
	case uint8:
		return int(number), true
	case uint16:
		return int(number), true
	case uint32:
		return boundedUint(uint64(number))
	case uint64:
		return boundedUint(number)
	case float32:
		return integralFloat(float64(number))
	case float64:
		return integralFloat(number)
	}
	return 0, false
}

func boundedInt(number int64) (int, bool) {
	if number > math.MaxInt32 || number < -math.MaxInt32 {
		return 0, false
	}
	return int(number), true
}

func boundedUint(number uint64) (int, bool) {
	if number > math.MaxInt32 {
		return 0, false
	}
	return int(number), true
}

func integralFloat(number float64) (int, bool) {
	if math.IsNaN(number) || math.IsInf(number, 0) || number != math.Trunc(number) {
		return 0, false
	}
	if math.Abs(number) > math.MaxInt32 {
		return 0, false
	}
	return int(number), true
}
