// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stopFunc: timer.Stop}
}

func (realClock) Every(d time.Duration, f func()) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}

	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// Stop may have raced with this tick.
				select {
				case <-done:
					return
				default:
				}
				f()
			}
		}
	}()

	var once sync.Once
	return &Ticker{
		stopFunc: func() bool {
			stopped := false
			once.Do(func() {
				close(done)
				stopped = true
			})
			return stopped
		},
	}
}
