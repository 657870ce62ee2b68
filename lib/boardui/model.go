// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package boardui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jomtimer/jomtimer/lib/board"
	"github.com/jomtimer/jomtimer/lib/timer"
	"github.com/jomtimer/jomtimer/lib/tui"
)

// refreshInterval is how often the model re-reads the board so ticking
// displays stay current.
const refreshInterval = 200 * time.Millisecond

// boardChangedMsg is delivered when the board signals Changes.
type boardChangedMsg struct{}

// timerEventMsg carries one alarm or timeout from the event feed.
type timerEventMsg struct {
	event timer.Event
}

type refreshTickMsg struct{}

type heatTickMsg struct{}

// promptKind selects what a confirmed prompt does.
type promptKind int

const (
	promptAlarm promptKind = iota
	promptCountDown
)

// prompt is the single-line input overlay for alarm and countdown
// values.
type prompt struct {
	kind    promptKind
	timerID string
	input   textinput.Model
}

func (p *prompt) title() string {
	if p.kind == promptAlarm {
		return "Alarm for " + p.timerID + " (HH:MM:SS, empty clears)"
	}
	return "Countdown for " + p.timerID + " (seconds, H:M:S, or stop)"
}

// Option customizes a Model.
type Option func(*Model)

// WithTheme sets the color theme.
func WithTheme(theme tui.Theme) Option {
	return func(model *Model) { model.theme = theme }
}

// WithKeyMap replaces the key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(model *Model) { model.keys = keys }
}

// WithStartTime sets the initial display of timers created with the
// New key.
func WithStartTime(startTime string) Option {
	return func(model *Model) { model.startTime = startTime }
}

// WithEvents subscribes the model to a timer event channel, usually
// the one returned by EventFeed.
func WithEvents(events <-chan timer.Event) Option {
	return func(model *Model) { model.events = events }
}

// WithNow sets the time source used for heat animation.
func WithNow(now func() time.Time) Option {
	return func(model *Model) { model.now = now }
}

// Model is the bubbletea model for the board view.
type Model struct {
	board     *board.Board
	theme     tui.Theme
	keys      KeyMap
	startTime string
	now       func() time.Time

	views        []board.View
	cursor       int
	selectedID   string
	scrollOffset int

	width  int
	height int
	ready  bool

	prompt *prompt

	// Status bar notice from a log record or a failed action.
	notice           string
	noticeLevel      slog.Level
	noticeGeneration int

	changes <-chan struct{}
	events  <-chan timer.Event

	heatTracker *tui.HeatTracker
	tickRunning bool
}

// NewModel creates a Model over b.
func NewModel(b *board.Board, options ...Option) Model {
	model := Model{
		board:       b,
		theme:       tui.DefaultTheme,
		keys:        DefaultKeyMap,
		now:         time.Now,
		changes:     b.Changes(),
		heatTracker: tui.NewHeatTracker(),
	}
	for _, option := range options {
		option(&model)
	}
	model.refresh()
	return model
}

// EventFeed returns a listener for board.WithListener and the channel
// it forwards events to. When the channel is full events are dropped
// rather than blocking the timer's clock goroutine.
func EventFeed(buffer int) (timer.Listener, <-chan timer.Event) {
	channel := make(chan timer.Event, buffer)
	listener := func(event timer.Event) {
		select {
		case channel <- event:
		default:
		}
	}
	return listener, channel
}

// Init starts listening for board changes and timer events and starts
// the refresh tick.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("jomtimer"),
		listenForChanges(model.changes),
		listenForEvent(model.events),
		scheduleRefresh(),
	)
}

// listenForChanges blocks until the board signals a change. Returns
// nil once the board is closed.
func listenForChanges(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return boardChangedMsg{}
	}
}

func listenForEvent(events <-chan timer.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return timerEventMsg{event: event}
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func scheduleHeatTick() tea.Cmd {
	return tea.Tick(tui.HeatTickInterval, func(time.Time) tea.Msg {
		return heatTickMsg{}
	})
}

// Update handles a message and returns the updated model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.prompt != nil {
			return model.handlePromptKey(message)
		}
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.clampScroll()

	case boardChangedMsg:
		model.refresh()
		return model, listenForChanges(model.changes)

	case timerEventMsg:
		return model.handleTimerEvent(message.event)

	case refreshTickMsg:
		model.refresh()
		return model, scheduleRefresh()

	case heatTickMsg:
		if model.heatTracker.HasHot(model.now()) {
			return model, scheduleHeatTick()
		}
		model.tickRunning = false

	case logRecordMsg:
		return model, model.setNotice(message.Summary, message.Level)

	case logRecordFadeMsg:
		if message.generation == model.noticeGeneration {
			model.notice = ""
		}
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)

	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)

	case key.Matches(message, model.keys.New):
		view, err := model.board.Create(model.startTime)
		if err != nil {
			return model, model.setError(err)
		}
		model.selectedID = view.State.ID
		model.refresh()
		return model, model.ignite(view.State.ID, tui.HeatChange)

	case key.Matches(message, model.keys.Toggle):
		id := model.selectedID
		if id == "" {
			return model, nil
		}
		if _, err := model.board.Toggle(id); err != nil {
			return model, model.setError(err)
		}
		model.refresh()
		return model, model.ignite(id, tui.HeatChange)

	case key.Matches(message, model.keys.Alarm):
		return model.openPrompt(promptAlarm)

	case key.Matches(message, model.keys.CountDown):
		return model.openPrompt(promptCountDown)

	case key.Matches(message, model.keys.StopCountDown):
		if model.selectedID == "" {
			return model, nil
		}
		if err := model.board.StopCountDown(model.selectedID); err != nil {
			return model, model.setError(err)
		}
		model.refresh()
	}
	return model, nil
}

func (model Model) openPrompt(kind promptKind) (tea.Model, tea.Cmd) {
	view, ok := model.selectedView()
	if !ok {
		return model, nil
	}
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 16
	input.Width = 16
	if kind == promptAlarm {
		input.Placeholder = "HH:MM:SS"
		input.SetValue(view.State.Alarm)
	} else {
		input.Placeholder = "seconds"
	}
	model.prompt = &prompt{kind: kind, timerID: view.State.ID, input: input}
	return model, model.prompt.input.Focus()
}

func (model Model) handlePromptKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.prompt = nil
		return model, nil

	case key.Matches(message, model.keys.Confirm):
		active := model.prompt
		model.prompt = nil
		if err := model.applyPrompt(active); err != nil {
			return model, model.setError(err)
		}
		model.refresh()
		return model, model.ignite(active.timerID, tui.HeatChange)

	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit
	}

	updated := *model.prompt
	var command tea.Cmd
	updated.input, command = updated.input.Update(message)
	model.prompt = &updated
	return model, command
}

func (model Model) applyPrompt(active *prompt) error {
	value := active.input.Value()
	switch active.kind {
	case promptAlarm:
		if value == "" {
			return model.board.ClearAlarm(active.timerID)
		}
		return model.board.SetAlarm(active.timerID, value)
	case promptCountDown:
		return model.board.CountDown(active.timerID, value)
	default:
		return errors.New("unknown prompt")
	}
}

func (model Model) handleTimerEvent(event timer.Event) (tea.Model, tea.Cmd) {
	kind := tui.HeatAlarm
	if event.Kind == timer.EventTimeout {
		kind = tui.HeatTimeout
	}
	model.refresh()
	return model, tea.Batch(
		listenForEvent(model.events),
		model.ignite(event.TimerID, kind),
	)
}

// ignite lights up a row and starts the heat tick if it is not
// already running. The returned command may be nil.
func (model *Model) ignite(timerID string, kind tui.HeatKind) tea.Cmd {
	model.heatTracker.Ignite(timerID, kind, model.now())
	if model.tickRunning {
		return nil
	}
	model.tickRunning = true
	return scheduleHeatTick()
}

func (model *Model) setNotice(text string, level slog.Level) tea.Cmd {
	model.noticeGeneration++
	model.notice = text
	model.noticeLevel = level
	generation := model.noticeGeneration
	return tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
		return logRecordFadeMsg{generation: generation}
	})
}

func (model *Model) setError(err error) tea.Cmd {
	return model.setNotice(err.Error(), slog.LevelWarn)
}

// refresh re-reads the board and keeps the cursor on the selected
// timer if it is still present.
func (model *Model) refresh() {
	model.views = model.board.Entries()
	if len(model.views) == 0 {
		model.cursor = 0
		model.selectedID = ""
		return
	}
	for index, view := range model.views {
		if view.State.ID == model.selectedID {
			model.cursor = index
			model.clampScroll()
			return
		}
	}
	model.cursor = min(model.cursor, len(model.views)-1)
	model.selectedID = model.views[model.cursor].State.ID
	model.clampScroll()
}

func (model *Model) moveCursor(delta int) {
	if len(model.views) == 0 {
		return
	}
	model.cursor = max(0, min(model.cursor+delta, len(model.views)-1))
	model.selectedID = model.views[model.cursor].State.ID
	model.clampScroll()
}

func (model Model) selectedView() (board.View, bool) {
	if model.cursor < 0 || model.cursor >= len(model.views) {
		return board.View{}, false
	}
	return model.views[model.cursor], true
}

// Selected returns the id of the timer under the cursor, or "".
func (model Model) Selected() string { return model.selectedID }

// Notice returns the status bar notice currently shown, or "".
func (model Model) Notice() string { return model.notice }

// Prompting reports whether an input prompt is open.
func (model Model) Prompting() bool { return model.prompt != nil }
