// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// recordingTB captures Fatalf instead of stopping the test.
type recordingTB struct {
	failure string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.failure = fmt.Sprintf(format, args...)
	panic(r)
}

// capture runs fn and returns the Fatalf message it produced, if any.
func capture(fn func(tb *recordingTB)) (failure string) {
	tb := &recordingTB{}
	defer func() {
		if recovered := recover(); recovered != nil && recovered != tb {
			panic(recovered)
		}
		failure = tb.failure
	}()
	fn(tb)
	return ""
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second); got != 7 {
		t.Fatalf("RequireReceive() = %d, want 7", got)
	}

	failure := capture(func(tb *recordingTB) {
		RequireReceive(tb, make(chan int), time.Millisecond, "waiting for %s", "nothing")
	})
	if failure != "timed out after 1ms: waiting for nothing" {
		t.Errorf("timeout failure = %q", failure)
	}

	closed := make(chan int)
	close(closed)
	failure = capture(func(tb *recordingTB) { RequireReceive(tb, closed, time.Second) })
	if failure != "channel closed without sending a value: (no message)" {
		t.Errorf("closed failure = %q", failure)
	}
}

func TestRequireEventually(t *testing.T) {
	var calls atomic.Int32
	RequireEventually(t, func() bool { return calls.Add(1) >= 3 }, time.Second)
	if calls.Load() != 3 {
		t.Errorf("condition called %d times, want 3", calls.Load())
	}

	failure := capture(func(tb *recordingTB) {
		RequireEventually(tb, func() bool { return false }, time.Millisecond, "never")
	})
	if failure != "condition not met after 1ms: never" {
		t.Errorf("failure = %q", failure)
	}
}
