// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package boardui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jomtimer/jomtimer/lib/tui"
)

// ConfigureColor selects the lipgloss color profile for output and
// returns the theme to render with. noColor forces plain output;
// otherwise the profile is detected from the terminal, honoring
// NO_COLOR and CLICOLOR_FORCE.
func ConfigureColor(output io.Writer, noColor bool) (termenv.Profile, tui.Theme) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		return termenv.Ascii, tui.MonochromeTheme
	}
	profile := termenv.NewOutput(output).EnvColorProfile()
	lipgloss.SetColorProfile(profile)
	if profile == termenv.Ascii {
		return profile, tui.MonochromeTheme
	}
	return profile, tui.DefaultTheme
}
