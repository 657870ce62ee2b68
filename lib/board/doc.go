// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package board is the demo harness around lib/timer: a bounded set of
// running timers, each with a pause/resume button, that turn red and
// stop when their alarm fires.
//
// Create makes numbered timers ("tmrCreated1", "tmrCreated2", ...) up
// to the configured cap and starts them. Mount adds named timers from
// configuration without counting against the cap. Toggle flips a
// timer's button between "II" (running) and "▶" (paused).
//
// Renderers wait on Changes and then read Entries.
package board
