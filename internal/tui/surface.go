package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/RichardoC/askbox/internal/models"
)

// surface holds the terminal elements the chat widget drives. The Model
// keeps a pointer to it so widget calls made during Update are visible to
// the value copies bubbletea passes around.
type surface struct {
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	styles   styles

	glamourStyle string

	welcome     string
	placeholder bool
	messages    []models.Message
	busy        bool
}

func newSurface(welcome, glamourStyle string) *surface {
	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.Prompt = "› "
	input.CharLimit = 2000
	input.Focus()

	s := &surface{
		input:       input,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport:    viewport.New(80, 20),
		styles:      defaultStyles(),
		welcome:     welcome,
		placeholder: welcome != "",

		glamourStyle: glamourStyle,
	}
	s.spinner.Style = s.styles.Spinner
	s.setRenderer(glamourStyle, 80)
	s.refresh()
	return s
}

func (s *surface) setRenderer(style string, width int) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		// renderMarkdown falls back to plain text
		renderer = nil
	}
	s.renderer = renderer
}

// MessageLog

func (s *surface) ShowsPlaceholder() bool {
	return s.placeholder
}

func (s *surface) Clear() {
	s.placeholder = false
	s.messages = nil
	s.refresh()
}

func (s *surface) Append(msg models.Message) {
	s.messages = append(s.messages, msg)
	s.refresh()
}

func (s *surface) ScrollToBottom() {
	s.viewport.GotoBottom()
}

// Composer

func (s *surface) ClearInput() {
	s.input.SetValue("")
}

// SubmitControl

func (s *surface) SetBusy(busy bool) {
	s.busy = busy
	if busy {
		s.input.Blur()
	} else {
		s.input.Focus()
	}
}

func (s *surface) refresh() {
	s.viewport.SetContent(s.renderLog())
}

func (s *surface) renderLog() string {
	if s.placeholder {
		return s.styles.Muted.Render(s.welcome)
	}

	var sb strings.Builder
	for _, msg := range s.messages {
		if msg.Origin == models.OriginUser {
			sb.WriteString(s.styles.UserLabel.Render(msg.Origin.Label()) + "\n")
			sb.WriteString(s.styles.UserText.Render(msg.Text))
			sb.WriteString("\n\n")
			continue
		}
		sb.WriteString(s.styles.AssistantLabel.Render(msg.Origin.Label()) + "\n")
		sb.WriteString(s.renderMarkdown(msg.Text))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s *surface) renderMarkdown(text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = text
		}
	}()

	if s.renderer != nil && text != "" {
		rendered, err := s.renderer.Render(text)
		if err == nil {
			return strings.TrimRight(rendered, "\n") + "\n"
		}
	}
	return text + "\n"
}
