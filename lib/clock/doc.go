// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the injectable scheduler that timers tick on.
//
// A timer never calls time.Now, time.AfterFunc or time.NewTicker
// directly. It holds a Clock and schedules its periodic tick through
// [Clock.Every]. In production, Real() runs each periodic callback on
// a goroutine driven by a time.Ticker. In tests, Fake() provides a
// virtual clock that only moves when Advance is called:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	t := timer.New(timer.Config{Time: "00:00:59"}, timer.WithClock(c))
//	t.Run()
//	c.Advance(60 * time.Second) // exactly 60 ticks, in order
//
// Fake callbacks run synchronously inside Advance, once per elapsed
// interval, in deadline order. There is no goroutine to wait for, so
// assertions can follow Advance directly.
package clock
