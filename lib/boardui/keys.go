// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package boardui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the board view.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// Board actions on the selected timer.
	New           key.Binding
	Toggle        key.Binding
	Alarm         key.Binding
	CountDown     key.Binding
	StopCountDown key.Binding

	// Prompt.
	Confirm key.Binding
	Cancel  key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new timer"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "p"),
		key.WithHelp("space", "pause/resume"),
	),
	Alarm: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "alarm"),
	),
	CountDown: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "countdown"),
	),
	StopCountDown: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "stop countdown"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown in the help bar.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Quit, keys.Down, keys.Up, keys.New, keys.Toggle, keys.Alarm, keys.CountDown, keys.StopCountDown}
}
