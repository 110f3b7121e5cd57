// Package tui hosts the chat widget in a terminal.
//
// The bubbletea program plays the part of the chat page: a text input for
// the question, a scrolling transcript, a submit hint that turns into a
// spinner while a request is in flight and a toggle for search
// augmentation. Every widget call happens inside Update, so the widget only
// ever sees one goroutine, as it would in a browser event loop.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/RichardoC/askbox/internal/models"
	"github.com/RichardoC/askbox/internal/widget"
)

const DefaultWelcome = "Welcome! Ask me anything to get started."

// chrome is the number of lines outside the transcript: header, input box
// (three lines with its border) and status line.
const chrome = 5

type Options struct {
	// Context bounds every request. Defaults to context.Background.
	Context context.Context
	// Welcome is the placeholder shown until the first question.
	Welcome   string
	UseSearch bool
	// GlamourStyle names a glamour style ("dark", "light", "notty"). Empty
	// picks one from the terminal background.
	GlamourStyle string
}

// answerMsg carries the settled outcome of a request back into Update.
type answerMsg struct {
	resp *models.AskResponse
	err  error
}

type Model struct {
	widget    *widget.ChatWidget
	ui        *surface
	ctx       context.Context
	useSearch bool
	width     int
	height    int
}

func New(endpoint widget.Endpoint, logger *zap.Logger, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Welcome == "" {
		opts.Welcome = DefaultWelcome
	}

	ui := newSurface(opts.Welcome, opts.GlamourStyle)
	return Model{
		widget: widget.New(endpoint, widget.Bindings{
			Log:    ui,
			Input:  ui,
			Submit: ui,
		}, logger),
		ui:        ui,
		ctx:       opts.Context,
		useSearch: opts.UseSearch,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlS:
			m.useSearch = !m.useSearch
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.ui.viewport, cmd = m.ui.viewport.Update(msg)
			return m, cmd
		}
		// The input is disabled while a request is in flight
		if m.ui.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.ui.input, cmd = m.ui.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.ui.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.ui.spinner, cmd = m.ui.spinner.Update(msg)
		return m, cmd

	case answerMsg:
		m.widget.Settle(msg.resp, msg.err)
		return m, nil
	}

	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.ui.busy {
		return m, nil
	}
	req, ok := m.widget.Begin(m.ui.input.Value(), m.useSearch)
	if !ok {
		return m, nil
	}

	w, ctx := m.widget, m.ctx
	ask := func() tea.Msg {
		resp, err := w.Exchange(ctx, req)
		return answerMsg{resp: resp, err: err}
	}
	return m, tea.Batch(m.ui.spinner.Tick, ask)
}

func (m *Model) resize(width, height int) {
	if width < 20 {
		width = 20
	}
	if height < chrome+3 {
		height = chrome + 3
	}
	m.width, m.height = width, height

	m.ui.viewport.Width = width
	m.ui.viewport.Height = height - chrome
	m.ui.input.Width = width - 6
	m.ui.setRenderer(m.ui.glamourStyle, width-4)
	m.ui.refresh()
	m.ui.viewport.GotoBottom()
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.ui.styles.Title.Render("askbox"))
	sb.WriteString("  ")
	sb.WriteString(m.searchIndicator())
	sb.WriteString("\n")

	sb.WriteString(m.ui.viewport.View())
	sb.WriteString("\n")

	box := m.ui.styles.Border
	if m.width > 0 {
		box = box.Width(m.width - 2)
	}
	sb.WriteString(box.Render(m.ui.input.View()))
	sb.WriteString("\n")

	sb.WriteString(m.statusLine())
	return sb.String()
}

func (m Model) searchIndicator() string {
	if m.useSearch {
		return m.ui.styles.ToggleOn.Render("[x] search")
	}
	return m.ui.styles.Muted.Render("[ ] search")
}

func (m Model) statusLine() string {
	if m.ui.busy {
		return fmt.Sprintf("%s %s", m.ui.spinner.View(), m.ui.styles.Status.Render("Thinking..."))
	}
	return m.ui.styles.Status.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		"enter ask", " • ", "ctrl+s toggle search", " • ", "pgup/pgdn scroll", " • ", "esc quit"))
}

// Busy reports whether a request is in flight.
func (m Model) Busy() bool {
	return m.ui.busy
}

func (m Model) Messages() []models.Message {
	return append([]models.Message(nil), m.ui.messages...)
}
