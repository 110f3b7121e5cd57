package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RichardoC/askbox/internal/models"
	"github.com/RichardoC/askbox/internal/widget"
)

type stubEndpoint struct {
	resp     *models.AskResponse
	err      error
	requests []models.AskRequest
}

func (s *stubEndpoint) Ask(ctx context.Context, req models.AskRequest) (*models.AskResponse, error) {
	s.requests = append(s.requests, req)
	return s.resp, s.err
}

func newTestModel(endpoint widget.Endpoint) Model {
	m := New(endpoint, nil, Options{GlamourStyle: "notty"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func pressEnter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

// runAsk executes the command returned by a submit and feeds the answer
// back into the model.
func runAsk(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "submit should batch the spinner and the request")

	for _, c := range batch {
		if c == nil {
			continue
		}
		if answer, ok := c().(answerMsg); ok {
			next, _ := m.Update(answer)
			return next.(Model)
		}
	}
	t.Fatal("no answer message produced")
	return m
}

func TestModel_WelcomeShownUntilFirstQuestion(t *testing.T) {
	m := newTestModel(&stubEndpoint{resp: &models.AskResponse{Status: models.StatusSuccess, Answer: "hi"}})
	assert.Contains(t, m.View(), DefaultWelcome)

	m = typeText(m, "hello")
	m, cmd := pressEnter(m)
	assert.NotContains(t, m.View(), DefaultWelcome)

	m = runAsk(t, m, cmd)
	assert.NotContains(t, m.View(), DefaultWelcome)
}

func TestModel_SubmitRoundTrip(t *testing.T) {
	endpoint := &stubEndpoint{resp: &models.AskResponse{Status: models.StatusSuccess, Answer: "42"}}
	m := newTestModel(endpoint)

	m = typeText(m, "  what is 6*7?  ")
	m, cmd := pressEnter(m)

	assert.True(t, m.Busy())
	assert.Equal(t, "", m.ui.input.Value())
	assert.Equal(t, []models.Message{models.UserMessage("what is 6*7?")}, m.Messages())
	assert.Contains(t, m.View(), "Thinking...")
	assert.Empty(t, endpoint.requests, "nothing is sent until the command runs")

	m = runAsk(t, m, cmd)

	assert.False(t, m.Busy())
	require.Len(t, endpoint.requests, 1)
	assert.Equal(t, models.AskRequest{Question: "what is 6*7?"}, endpoint.requests[0])
	assert.Equal(t, []models.Message{
		models.UserMessage("what is 6*7?"),
		models.AssistantMessage("42"),
	}, m.Messages())

	view := m.View()
	assert.Contains(t, view, "You")
	assert.Contains(t, view, "AI Assistant")
	assert.Contains(t, view, "42")
	assert.NotContains(t, view, "Thinking...")
}

func TestModel_ErrorOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		endpoint *stubEndpoint
		want     string
	}{
		{"application error", &stubEndpoint{resp: &models.AskResponse{Status: models.StatusError, Answer: "bad input"}}, "Error: bad input"},
		{"connection error", &stubEndpoint{err: errors.New("connection refused")}, widget.ConnectionErrorText},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(tc.endpoint)
			m = typeText(m, "q")
			m, cmd := pressEnter(m)
			m = runAsk(t, m, cmd)

			msgs := m.Messages()
			require.Len(t, msgs, 2)
			assert.Equal(t, models.AssistantMessage(tc.want), msgs[1])
			assert.False(t, m.Busy())
		})
	}
}

func TestModel_EmptyInputAndBusyIgnored(t *testing.T) {
	endpoint := &stubEndpoint{resp: &models.AskResponse{Status: models.StatusSuccess, Answer: "ok"}}
	m := newTestModel(endpoint)

	m = typeText(m, "   ")
	m, cmd := pressEnter(m)
	assert.Nil(t, cmd)
	assert.False(t, m.Busy())
	assert.Empty(t, m.Messages())

	m.ui.input.SetValue("first")
	m, cmd = pressEnter(m)
	require.NotNil(t, cmd)

	// typing and submitting are both disabled while busy
	m = typeText(m, "second")
	assert.Equal(t, "", m.ui.input.Value())
	m, second := pressEnter(m)
	assert.Nil(t, second)
	assert.Len(t, m.Messages(), 1)

	m = runAsk(t, m, cmd)
	assert.Len(t, m.Messages(), 2)
	assert.Len(t, endpoint.requests, 1)
}

func TestModel_SearchToggle(t *testing.T) {
	endpoint := &stubEndpoint{resp: &models.AskResponse{Status: models.StatusSuccess, Answer: "ok"}}
	m := newTestModel(endpoint)
	assert.Contains(t, m.View(), "[ ] search")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	assert.Contains(t, m.View(), "[x] search")

	m = typeText(m, "with search")
	m, cmd := pressEnter(m)
	runAsk(t, m, cmd)
	require.Len(t, endpoint.requests, 1)
	assert.True(t, endpoint.requests[0].UseSearch)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(&stubEndpoint{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_LateAnswerWithoutRequestIsIgnored(t *testing.T) {
	m := newTestModel(&stubEndpoint{})
	next, _ := m.Update(answerMsg{resp: &models.AskResponse{Status: models.StatusSuccess, Answer: "stray"}})
	assert.Empty(t, next.(Model).Messages())
}

func TestConsole(t *testing.T) {
	var out, status bytes.Buffer
	console := &Console{Out: &out, Status: &status}
	w := widget.New(&stubEndpoint{resp: &models.AskResponse{Status: models.StatusSuccess, Answer: "pong"}}, console.Bindings(), nil)

	require.True(t, w.Submit(context.Background(), "ping", false))

	assert.Equal(t, "You: ping\nAI Assistant: pong\n", out.String())
	assert.True(t, strings.HasPrefix(status.String(), "Thinking..."))
}
