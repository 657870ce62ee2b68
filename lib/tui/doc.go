// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal building blocks shared by
// jomtimer's interactive views: the color theme, the decaying "heat"
// highlight used to flash timers that just raised an event, a
// scrollbar, and ANSI-aware overlay splicing for prompts.
//
// Views built on bubbletea (see lib/boardui) own their data and layout
// and import this package for consistent look and behavior.
package tui
