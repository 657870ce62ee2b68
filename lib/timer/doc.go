// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package timer implements the clock engine behind a timer display.
//
// A [Timer] shows a 24-hour "HH:MM:SS" reading that advances one
// second per tick while running. Ticks are scheduled on an injected
// [clock.Clock], so tests drive them with clock.Fake and production
// uses clock.Real. When the reading reaches the configured alarm the
// timer raises an [EventAlarm]; a separate countdown raises an
// [EventTimeout] when it reaches zero.
//
// Invalid input never changes state. Every mutator returns an error
// (wrapping [ErrInvalidTime], [ErrUnrecognizedCountdown] and so on)
// which hosts that only need the "ignore bad input" behaviour can
// discard.
//
// State machine:
//
//	Idle --Run--> Running --Stop--> Idle
//	Idle --CountDown(n>0)--> CountingDown --zero | CountDown(false) | StopCountDown--> Idle
//
// The two loops are independent. Run and CountDown never schedule a
// second loop alongside an existing one.
//
// Declarative hosts configure a timer through a fixed attribute list
// ([Attributes]: disabled, time, alarm) with [Timer.SetAttribute], or
// through [Timer.Apply] with an [Update].
package timer
