// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package boardui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jomtimer/jomtimer/lib/board"
	"github.com/jomtimer/jomtimer/lib/tui"
)

// Column widths of a timer row.
const (
	numberWidth = 4
	idWidth     = 16
	timeWidth   = 8
)

// chromeHeight is the header plus the help bar.
const chromeHeight = 2

func (model Model) visibleHeight() int {
	return max(model.height-chromeHeight, 1)
}

func (model *Model) clampScroll() {
	if !model.ready {
		return
	}
	visible := model.visibleHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
	model.scrollOffset = max(0, min(model.scrollOffset, len(model.views)-visible))
}

// View renders the board.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	sections := []string{model.renderHeader(), model.renderRows(), model.renderHelp()}
	view := strings.Join(sections, "\n")

	if model.prompt != nil {
		lines := model.renderPrompt()
		anchorX := max((model.width-ansi.StringWidth(lines[0]))/2, 0)
		anchorY := max((model.height-len(lines))/2, 0)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	}
	return view
}

func (model Model) renderHeader() string {
	running := 0
	alerted := 0
	for _, view := range model.views {
		if view.State.Running {
			running++
		}
		if view.Status == board.StatusAlerted {
			alerted++
		}
	}
	header := fmt.Sprintf(" jomtimer  %d/%d created  %d running",
		model.board.Created(), model.board.MaxTimers(), running)
	if alerted > 0 {
		header += fmt.Sprintf("  %d alerted", alerted)
	}
	style := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	return style.Render(tui.Truncate(header, max(model.width, 1)))
}

func (model Model) renderRows() string {
	visible := model.visibleHeight()
	rowWidth := max(model.width-1, 1)
	now := model.now()

	var rows []string
	if len(model.views) == 0 {
		empty := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		rows = append(rows, empty.Render(tui.Truncate(" No timers. Press n to create one.", rowWidth)))
	}
	for index := model.scrollOffset; index < model.scrollOffset+visible && index < len(model.views); index++ {
		view := model.views[index]
		selected := index == model.cursor
		row := model.renderRow(view, selected, rowWidth)

		switch {
		case selected:
			row = lipgloss.NewStyle().
				Background(model.theme.SelectedBackground).
				Foreground(model.theme.SelectedForeground).
				Width(rowWidth).
				MaxWidth(rowWidth).
				Render(row)
		default:
			if heat := model.heatTracker.Heat(view.State.ID, now); heat > 0 {
				row = lipgloss.NewStyle().
					Background(model.theme.HeatColor(model.heatTracker.Kind(view.State.ID))).
					Width(rowWidth).
					MaxWidth(rowWidth).
					Render(row)
			}
		}
		rows = append(rows, row)
	}

	emptyStyle := lipgloss.NewStyle().Width(rowWidth)
	for len(rows) < visible {
		rows = append(rows, emptyStyle.Render(""))
	}

	scrollbar := tui.RenderScrollbar(model.theme, visible, len(model.views), visible, model.scrollOffset)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(rows, "\n"), scrollbar)
}

// renderRow renders one timer:
//
//	› #1  tmrCreated1      01:02:03  [II]  alarm 00:00:30  countdown 12s
func (model Model) renderRow(view board.View, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "› "
	}

	number := "·"
	if view.Number > 0 {
		number = fmt.Sprintf("#%d", view.Number)
	}

	statusStyle := lipgloss.NewStyle().Foreground(model.theme.StatusColor(string(view.Status)))
	if view.Status == board.StatusAlerted {
		statusStyle = statusStyle.Bold(true)
	}

	var parts []string
	parts = append(parts,
		marker+fmt.Sprintf("%-*s", numberWidth, number),
		fmt.Sprintf("%-*s", idWidth, tui.Truncate(view.State.ID, idWidth)),
		statusStyle.Render(fmt.Sprintf("%-*s", timeWidth, view.State.Time)),
		"["+view.Button.Label+"]",
	)

	if view.State.Disabled {
		parts = append(parts, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("disabled"))
	}
	if view.State.Alarm != "" {
		alarmStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		if view.Status == board.StatusAlerted {
			alarmStyle = statusStyle
		}
		parts = append(parts, alarmStyle.Render("alarm "+view.State.Alarm))
	}
	switch {
	case view.State.CountingDown:
		parts = append(parts, lipgloss.NewStyle().Foreground(model.theme.CountdownActive).
			Render(fmt.Sprintf("countdown %ds", view.State.Remaining)))
	case view.CountdownExpired && view.LastEvent != nil:
		parts = append(parts, lipgloss.NewStyle().Foreground(model.theme.CountdownExpired).
			Render(fmt.Sprintf("timeout %ds (from %s)", view.LastEvent.SecondsExpired, view.LastEvent.StartedAt)))
	}

	return ansi.Truncate(strings.Join(parts, "  "), width, "…")
}

func (model Model) renderHelp() string {
	width := max(model.width, 1)
	if model.notice != "" {
		color := model.theme.NormalText
		switch {
		case model.noticeLevel >= slog.LevelError:
			color = model.theme.LogError
		case model.noticeLevel >= slog.LevelWarn:
			color = model.theme.LogWarn
		}
		style := lipgloss.NewStyle().Foreground(color).Bold(true)
		return style.Render(tui.Truncate(" "+model.notice, width))
	}

	var hints []string
	bindings := model.keys.ShortHelp()
	if model.prompt != nil {
		bindings = []key.Binding{model.keys.Confirm, model.keys.Cancel}
	}
	for _, binding := range bindings {
		help := binding.Help()
		hints = append(hints, help.Key+" "+help.Desc)
	}
	help := " " + strings.Join(hints, "  ")
	if len(model.views) > 0 {
		help += fmt.Sprintf("  %d/%d", model.cursor+1, len(model.views))
	}
	if remaining := model.board.Remaining(); remaining <= 0 {
		help += "  (limit reached)"
	}
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	return style.Render(tui.Truncate(help, width))
}

func (model Model) renderPrompt() []string {
	title := model.prompt.title()
	input := model.prompt.input.View()
	innerWidth := max(ansi.StringWidth(title), ansi.StringWidth(input), 24)

	background := lipgloss.NewStyle().Background(model.theme.PromptBackground)
	titleStyle := background.Foreground(model.theme.PromptForeground).Bold(true)
	border := background.Foreground(model.theme.BorderColor)
	edge := border.Render(strings.Repeat("─", innerWidth+2))

	return []string{
		edge,
		tui.PadOverlayLine(titleStyle.Render(title), innerWidth, background),
		tui.PadOverlayLine(input, innerWidth, background),
		edge,
	}
}
