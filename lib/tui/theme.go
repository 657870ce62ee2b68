// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for jomtimer's terminal UIs. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Timer status colors. StatusAlerted is the red an alarmed timer
	// turns.
	StatusRunning lipgloss.Color
	StatusPaused  lipgloss.Color
	StatusAlerted lipgloss.Color

	// Countdown indicator colors.
	CountdownActive  lipgloss.Color
	CountdownExpired lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status bar log records.
	LogWarn  lipgloss.Color
	LogError lipgloss.Color

	// Animation accents: background tint for timers that just raised
	// an event.
	HotAccentAlarm   lipgloss.Color
	HotAccentTimeout lipgloss.Color
	HotAccentChange  lipgloss.Color

	// Prompt overlay.
	PromptForeground lipgloss.Color
	PromptBackground lipgloss.Color
}

// StatusColor returns the color for a board status string (running,
// paused, alerted) and FaintText for unknown values.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case "running":
		return theme.StatusRunning
	case "paused":
		return theme.StatusPaused
	case "alerted":
		return theme.StatusAlerted
	default:
		return theme.FaintText
	}
}

// HeatColor returns the background accent for a heat kind.
func (theme Theme) HeatColor(kind HeatKind) lipgloss.Color {
	switch kind {
	case HeatAlarm:
		return theme.HotAccentAlarm
	case HeatTimeout:
		return theme.HotAccentTimeout
	default:
		return theme.HotAccentChange
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusRunning: lipgloss.Color("114"), // green
	StatusPaused:  lipgloss.Color("220"), // amber
	StatusAlerted: lipgloss.Color("196"), // red

	CountdownActive:  lipgloss.Color("75"),  // blue
	CountdownExpired: lipgloss.Color("141"), // light purple

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	LogWarn:  lipgloss.Color("220"),
	LogError: lipgloss.Color("196"),

	HotAccentAlarm:   lipgloss.Color("52"), // dark red background tint
	HotAccentTimeout: lipgloss.Color("54"), // dark purple background tint
	HotAccentChange:  lipgloss.Color("58"), // dark amber background tint

	PromptForeground: lipgloss.Color("252"),
	PromptBackground: lipgloss.Color("237"),
}

// MonochromeTheme renders everything in the terminal's default colors.
// Used with --no-color, where lipgloss drops color anyway but the
// theme keeps bold and layout intact.
var MonochromeTheme = Theme{}
