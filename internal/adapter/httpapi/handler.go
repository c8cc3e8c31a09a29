// Package httpapi exposes the answer pipeline over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase"
)

// AnswerService generates an answer for one query.
type AnswerService interface {
	Answer(ctx context.Context, in usecase.AnswerInput) string
}

// IndexEnqueuer accepts an interaction for background indexing. A nil
// enqueuer disables the index-after-answer path.
type IndexEnqueuer interface {
	Enqueue(interactionID string, results []domain.SearchResult) bool
}

type Handler struct {
	answers AnswerService
	indexer IndexEnqueuer
	logger  *slog.Logger
}

func NewHandler(answers AnswerService, indexer IndexEnqueuer, logger *slog.Logger) *Handler {
	return &Handler{answers: answers, indexer: indexer, logger: logger}
}

// Register mounts the handler routes on the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/v1/answer", h.Answer)
}

type AnswerRequest struct {
	InteractionID   string                `json:"interaction_id"`
	Query           string                `json:"query"`
	QueryTime       string                `json:"query_time"`
	Domain          string                `json:"domain"`
	StaticOrDynamic string                `json:"static_or_dynamic"`
	SearchResults   []domain.SearchResult `json:"search_results"`
}

type AnswerResponse struct {
	InteractionID string `json:"interaction_id"`
	Query         string `json:"query"`
	Answer        string `json:"answer"`
}

// Answer handles POST /v1/answer.
func (h *Handler) Answer(ctx echo.Context) error {
	var req AnswerRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Query == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "missing query"})
	}
	if req.InteractionID == "" {
		req.InteractionID = uuid.NewString()
	}
	if req.QueryTime == "" {
		req.QueryTime = time.Now().Format(domain.QueryTimeLayout) + " PT"
	}

	answer := h.answers.Answer(ctx.Request().Context(), usecase.AnswerInput{
		InteractionID:  req.InteractionID,
		Query:          req.Query,
		QueryTime:      req.QueryTime,
		SearchResults:  req.SearchResults,
		DomainHint:     req.Domain,
		VolatilityHint: req.StaticOrDynamic,
	})

	if h.indexer != nil && len(req.SearchResults) > 0 {
		h.indexer.Enqueue(req.InteractionID, req.SearchResults)
	}

	return ctx.JSON(http.StatusOK, AnswerResponse{
		InteractionID: req.InteractionID,
		Query:         req.Query,
		Answer:        answer,
	})
}
