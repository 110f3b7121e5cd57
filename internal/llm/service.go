package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RichardoC/askbox/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	generateTimeout = 30 * time.Second
	searchLimit     = 3
)

var ErrEmptyAnswer = errors.New("model returned an empty answer")

// History finds earlier exchanges related to a question. *db.Database
// satisfies it.
type History interface {
	SearchAnswers(ctx context.Context, query string, limit int) ([]models.QALog, error)
}

type Service struct {
	llm     llms.Model
	history History
	logger  *zap.Logger
}

// New connects to an OpenAI compatible endpoint such as ollama.
func New(baseURL, token, model string, history History, logger *zap.Logger) (*Service, error) {
	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return NewWithModel(llm, history, logger), nil
}

func NewWithModel(model llms.Model, history History, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{llm: model, history: history, logger: logger}
}

// Answer generates a reply to question. With useSearch the prompt is
// augmented with related earlier answers.
func (s *Service) Answer(ctx context.Context, question string, useSearch bool) (string, error) {
	var related []models.QALog
	if useSearch && s.history != nil {
		found, err := s.history.SearchAnswers(ctx, question, searchLimit)
		if err != nil {
			// Log but don't fail, answer without context
			s.logger.Warn("failed to search earlier answers", zap.Error(err))
		} else {
			related = found
		}
	}

	prompt := buildPrompt(question, related)

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	completion, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	answer := strings.TrimSpace(completion)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	s.logger.Debug("answer generated",
		zap.Bool("useSearch", useSearch),
		zap.Int("related", len(related)),
		zap.Int("answerLength", len(answer)))
	return answer, nil
}

func buildPrompt(question string, related []models.QALog) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant. Answer the user's question clearly and concisely.\n")

	if len(related) > 0 {
		b.WriteString("\nRelated questions answered earlier:\n")
		for _, entry := range related {
			fmt.Fprintf(&b, "- Q: %s\n  A: %s\n", entry.Question, entry.Answer)
		}
		b.WriteString("\nUse them only if they are relevant.\n")
	}

	fmt.Fprintf(&b, "\nQuestion: %s\n\nAnswer:", question)
	return b.String()
}
