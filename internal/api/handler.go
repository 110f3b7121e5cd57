package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RichardoC/askbox/internal/models"
	"go.uber.org/zap"
)

const maxRequestBytes = 64 << 10

// Answerer generates answers. *llm.Service satisfies it.
type Answerer interface {
	Answer(ctx context.Context, question string, useSearch bool) (string, error)
}

// QALogger records answered questions. *db.Database satisfies it.
type QALogger interface {
	LogQuestionAnswer(ctx context.Context, question, answer string, ts time.Time) (*models.QALog, error)
}

type Handler struct {
	answers Answerer
	store   QALogger
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(answers Answerer, store QALogger, logger *zap.Logger) *Handler {
	return &Handler{
		answers: answers,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// HandleAsk answers POST /ask. Every reply, including failures, uses the
// {status, answer} envelope.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		observeAsk(outcomeInvalid, start)
		writeJSON(w, http.StatusBadRequest, models.Failure("Invalid request body."))
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		observeAsk(outcomeInvalid, start)
		writeJSON(w, http.StatusBadRequest, models.Failure("Please provide a valid question."))
		return
	}

	answer, err := h.answers.Answer(r.Context(), question, req.UseSearch)
	if err != nil {
		h.logger.Error("Failed to answer question",
			zap.Error(err),
			zap.String("requestID", RequestID(r.Context())),
			zap.Bool("useSearch", req.UseSearch))
		observeAsk(outcomeFailed, start)
		writeJSON(w, http.StatusInternalServerError, models.Failure(fmt.Sprintf("An error occurred: %v", err)))
		return
	}

	if h.store != nil {
		if _, err := h.store.LogQuestionAnswer(r.Context(), question, answer, h.now()); err != nil {
			// The answer is still returned, only the audit entry is lost
			h.logger.Error("Failed to log question", zap.Error(err))
		}
	}

	observeAsk(outcomeAnswered, start)
	writeJSON(w, http.StatusOK, models.Success(answer))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
