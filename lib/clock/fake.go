// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called.
//
// FakeClock is safe for concurrent use by multiple goroutines.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for testing. Time advances only
// when Advance is called.
//
// Callbacks are invoked synchronously during Advance in deadline order,
// one at a time, with Now reporting the callback's own deadline. A
// callback may stop or register other waiters (including its own
// ticker); it must not call Advance.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*fakeWaiter
}

// fakeWaiter is a pending AfterFunc or Every registration.
type fakeWaiter struct {
	deadline time.Time
	callback func()

	// interval is non-zero for Every waiters. After firing, the waiter
	// is rescheduled at deadline + interval.
	interval time.Duration

	// stopped is set by Timer.Stop or Ticker.Stop.
	stopped bool

	// fired is set after a one-shot waiter fires.
	fired bool
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc schedules f to be called after duration d. If d <= 0, f is
// called synchronously before AfterFunc returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stopFunc: func() bool { return false }}
	}

	c.mu.Lock()
	waiter := &fakeWaiter{
		deadline: c.current.Add(d),
		callback: f,
	}
	c.waiters = append(c.waiters, waiter)
	c.mu.Unlock()

	return &Timer{stopFunc: c.stopper(waiter)}
}

// Every registers f to be called once per interval d. The first call
// happens d after registration. Panics if d <= 0.
func (c *FakeClock) Every(d time.Duration, f func()) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}

	c.mu.Lock()
	waiter := &fakeWaiter{
		deadline: c.current.Add(d),
		callback: f,
		interval: d,
	}
	c.waiters = append(c.waiters, waiter)
	c.mu.Unlock()

	return &Ticker{stopFunc: c.stopper(waiter)}
}

func (c *FakeClock) stopper(waiter *fakeWaiter) func() bool {
	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if waiter.stopped || waiter.fired {
			return false
		}
		waiter.stopped = true
		c.removeLocked(waiter)
		return true
	}
}

// Advance moves the clock forward by d, firing every callback whose
// deadline falls within the new time. A ticker whose interval elapses
// several times within d fires once per interval.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		waiter := c.nextExpiredLocked(target)
		if waiter == nil {
			c.current = target
			c.mu.Unlock()
			return
		}
		c.current = waiter.deadline
		if waiter.interval > 0 {
			waiter.deadline = waiter.deadline.Add(waiter.interval)
		} else {
			waiter.fired = true
			c.removeLocked(waiter)
		}
		callback := waiter.callback
		c.mu.Unlock()

		callback()
	}
}

// nextExpiredLocked returns the pending waiter with the earliest
// deadline not after target, or nil. Ties go to the earliest
// registration. Must be called with c.mu held.
func (c *FakeClock) nextExpiredLocked(target time.Time) *fakeWaiter {
	var earliest *fakeWaiter
	for _, waiter := range c.waiters {
		if waiter.deadline.After(target) {
			continue
		}
		if earliest == nil || waiter.deadline.Before(earliest.deadline) {
			earliest = waiter
		}
	}
	return earliest
}

// removeLocked drops waiter from the pending list. Must be called
// with c.mu held.
func (c *FakeClock) removeLocked(waiter *fakeWaiter) {
	for index, candidate := range c.waiters {
		if candidate == waiter {
			c.waiters = append(c.waiters[:index], c.waiters[index+1:]...)
			return
		}
	}
}

// PendingCount returns the number of registered callbacks that have
// neither fired (one-shot) nor been stopped. A running timer holds one
// ticker; a timer that is also counting down holds two.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}
