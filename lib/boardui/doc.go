// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package boardui renders a [board.Board] as an interactive bubbletea
// program: one row per timer showing its display, pause/resume button,
// alarm and countdown. Alerted timers turn red, and any timer that
// just raised an event glows briefly.
//
// The model re-reads the board on its Changes signal and on a short
// refresh tick (tick-driven display updates do not signal Changes).
// Timer events reach the model through [EventFeed], and slog records
// through [TUILogHandler], so nothing writes to the terminal behind
// bubbletea's back.
package boardui
