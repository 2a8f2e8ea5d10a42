package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/pos-manage/api/internal/kitchen"
)

const (
	redrawInterval  = time.Second
	dispatchTimeout = 10 * time.Second
)

// viewSource is the part of kitchen.Board the display reads.
type viewSource interface {
	CurrentView() kitchen.View
	Trigger()
}

// dispatcher marks a line item as sent on the server.
type dispatcher interface {
	Dispatch(ctx context.Context, lineItemID uuid.UUID) (bool, error)
}

type tickMsg time.Time

type dispatchedMsg struct {
	label   string
	changed bool
	err     error
}

// model redraws the board's view once per second. Ranks and elapsed times
// are recomputed from the last snapshot on every tick, so the clock keeps
// running between fetches. The cursor walks the pending tickets, which the
// board always lists first.
type model struct {
	ctx      context.Context
	board    viewSource
	sender   dispatcher
	theme    theme
	maxWidth int
	width    int
	view     kitchen.View

	// cursor follows a line item, not a row, so a refresh that re-ranks
	// the queue keeps the same ticket selected when it is still pending.
	cursor   int
	selected uuid.UUID
	status   string
}

func newModel(ctx context.Context, board viewSource, sender dispatcher, maxWidth int) model {
	m := model{
		ctx:      ctx,
		board:    board,
		sender:   sender,
		theme:    defaultTheme(),
		maxWidth: maxWidth,
	}
	m.setView(board.CurrentView())
	return m
}

func tick() tea.Cmd {
	return tea.Tick(redrawInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.board.Trigger()
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "enter", "s":
			return m, m.dispatchSelected()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.setView(m.board.CurrentView())
		return m, tick()
	case dispatchedMsg:
		switch {
		case msg.err != nil:
			m.status = "dispatch " + msg.label + " failed: " + msg.err.Error()
		case msg.changed:
			m.status = msg.label + " sent"
		default:
			m.status = msg.label + " was already sent"
		}
		m.board.Trigger()
	}
	return m, nil
}

// setView installs a new view and re-finds the selected ticket in it.
func (m *model) setView(v kitchen.View) {
	m.view = v
	n := m.pending()
	if n == 0 {
		m.cursor = 0
		m.selected = uuid.Nil
		return
	}
	for i := 0; i < n; i++ {
		if m.view.Tickets[i].LineItemID == m.selected {
			m.cursor = i
			return
		}
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	m.selected = m.view.Tickets[m.cursor].LineItemID
}

// pending is the number of selectable tickets at the head of the view.
func (m model) pending() int {
	return min(m.view.PendingCount, len(m.view.Tickets))
}

func (m *model) moveCursor(delta int) {
	n := m.pending()
	if n == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	m.selected = m.view.Tickets[m.cursor].LineItemID
}

func (m model) dispatchSelected() tea.Cmd {
	if m.pending() == 0 || m.sender == nil {
		return nil
	}
	t := m.view.Tickets[m.cursor]
	label := t.Label + " " + t.ItemName
	parent, sender := m.ctx, m.sender
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, dispatchTimeout)
		defer cancel()
		changed, err := sender.Dispatch(ctx, t.LineItemID)
		return dispatchedMsg{label: label, changed: changed, err: err}
	}
}

func (m model) View() string {
	width := m.maxWidth
	if m.width > 0 && (width <= 0 || m.width < width) {
		width = m.width
	}
	cursor := -1
	if m.pending() > 0 {
		cursor = m.cursor
	}
	out := render(m.view, m.theme, width, cursor)
	if m.status != "" {
		out += m.theme.warning.Render(m.status) + "\n"
	}
	return out + "\n" + m.theme.done.Render("up/down select  enter send  r refresh  q quit")
}
