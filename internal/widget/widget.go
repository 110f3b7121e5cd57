// Package widget holds the chat controller that sits between a question
// input, the /ask endpoint and a rendered message log.
//
// The controller does not own any presentation. Hosts hand it a set of
// Bindings (the log, the input, the submit control) and drive it either with
// Submit, which blocks until the reply is rendered, or with the
// Begin/Exchange/Settle triple when the host runs its own event loop.
package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/RichardoC/askbox/internal/models"
	"go.uber.org/zap"
)

// ConnectionErrorText is rendered when the endpoint could not be reached or
// its reply could not be decoded.
const ConnectionErrorText = "Connection error. Please try again."

// ErrEmptyResponse is reported when an endpoint returns neither a response
// nor an error.
var ErrEmptyResponse = errors.New("endpoint returned no response")

// Endpoint answers questions. client.Client is the HTTP implementation.
type Endpoint interface {
	Ask(ctx context.Context, req models.AskRequest) (*models.AskResponse, error)
}

// MessageLog is the visually ordered list of rendered messages.
type MessageLog interface {
	// ShowsPlaceholder reports whether the log currently holds only the
	// initial welcome notice.
	ShowsPlaceholder() bool
	Clear()
	Append(msg models.Message)
	ScrollToBottom()
}

// Composer is the text input the question is typed into.
type Composer interface {
	ClearInput()
}

// SubmitControl is the submit button. Busy disables it, hides its label and
// shows the busy indicator; not busy reverses all three.
type SubmitControl interface {
	SetBusy(busy bool)
}

// Bindings are the elements a ChatWidget drives.
type Bindings struct {
	Log    MessageLog
	Input  Composer
	Submit SubmitControl
}

// State of a ChatWidget.
type State int

const (
	Idle State = iota
	AwaitingResponse
)

func (s State) String() string {
	if s == AwaitingResponse {
		return "awaiting_response"
	}
	return "idle"
}

// ChatWidget mediates between user input, an Endpoint and a MessageLog.
type ChatWidget struct {
	endpoint Endpoint
	ui       Bindings
	logger   *zap.Logger

	mu       sync.Mutex
	state    State
	settling bool
}

// New builds a widget over the given endpoint and bindings. A nil logger
// disables diagnostics.
func New(endpoint Endpoint, ui Bindings, logger *zap.Logger) *ChatWidget {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatWidget{
		endpoint: endpoint,
		ui:       ui,
		logger:   logger,
	}
}

func (w *ChatWidget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Submit runs one full question/answer round trip. It returns false without
// touching the bindings when the trimmed input is empty or a request is
// already in flight.
func (w *ChatWidget) Submit(ctx context.Context, rawInput string, useSearch bool) bool {
	req, ok := w.Begin(rawInput, useSearch)
	if !ok {
		return false
	}
	resp, err := w.Exchange(ctx, req)
	w.Settle(resp, err)
	return true
}

// Begin validates the input, renders the user's message and enters the busy
// state. The returned request must be passed to Exchange and the outcome to
// Settle.
func (w *ChatWidget) Begin(rawInput string, useSearch bool) (models.AskRequest, bool) {
	question := strings.TrimSpace(rawInput)
	if question == "" {
		return models.AskRequest{}, false
	}

	w.mu.Lock()
	if w.state != Idle {
		w.mu.Unlock()
		return models.AskRequest{}, false
	}
	w.state = AwaitingResponse
	w.mu.Unlock()

	w.clearWelcome()
	w.addMessage(models.UserMessage(question))
	w.ui.Input.ClearInput()
	w.ui.Submit.SetBusy(true)

	w.logger.Debug("question submitted",
		zap.Int("length", len(question)),
		zap.Bool("useSearch", useSearch))

	return models.AskRequest{Question: question, UseSearch: useSearch}, true
}

// Exchange performs the single endpoint call for a submission. A panic in
// the endpoint is returned as an error.
func (w *ChatWidget) Exchange(ctx context.Context, req models.AskRequest) (resp *models.AskResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("endpoint panic: %v", r)
		}
	}()
	return w.endpoint.Ask(ctx, req)
}

// Settle renders the outcome of the in-flight request and returns the widget
// to Idle. Calling it while Idle does nothing.
func (w *ChatWidget) Settle(resp *models.AskResponse, err error) {
	w.mu.Lock()
	if w.state != AwaitingResponse || w.settling {
		w.mu.Unlock()
		return
	}
	w.settling = true
	w.mu.Unlock()
	defer w.release()

	if err == nil && resp == nil {
		err = ErrEmptyResponse
	}
	switch {
	case err != nil:
		w.logger.Error("ask request failed", zap.Error(err))
		w.addMessage(models.AssistantMessage(ConnectionErrorText))
	case resp.Succeeded():
		w.addMessage(models.AssistantMessage(resp.Answer))
	default:
		w.logger.Warn("ask returned an error status",
			zap.String("status", resp.Status),
			zap.String("answer", resp.Answer))
		w.addMessage(models.AssistantMessage("Error: " + resp.Answer))
	}
}

func (w *ChatWidget) release() {
	w.ui.Submit.SetBusy(false)
	w.mu.Lock()
	w.state = Idle
	w.settling = false
	w.mu.Unlock()
}

func (w *ChatWidget) addMessage(msg models.Message) {
	w.ui.Log.Append(msg)
	w.ui.Log.ScrollToBottom()
}

func (w *ChatWidget) clearWelcome() {
	if w.ui.Log.ShowsPlaceholder() {
		w.ui.Log.Clear()
	}
}
