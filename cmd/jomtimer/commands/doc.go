// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the jomtimer command tree: the interactive
// timer board (demo), a single headless timer (run), a one-shot
// countdown (countdown), time validation (validate), and journal
// inspection (journal dump).
//
// Commands take their output streams, clock, and interrupt context from
// an environment so tests can drive them with a fake clock.
package commands
