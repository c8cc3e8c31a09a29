package logger

import (
	"context"
	"log/slog"
)

type ContextKey string

// Business context keys propagated through the pipeline for observability.
const (
	InteractionIDKey ContextKey = "rag.interaction.id"
	BatchIDKey       ContextKey = "rag.batch.id"
	StageKey         ContextKey = "rag.stage"
)

// WithInteractionID tags the context with the query's interaction id.
func WithInteractionID(ctx context.Context, interactionID string) context.Context {
	return context.WithValue(ctx, InteractionIDKey, interactionID)
}

// WithBatchID tags the context with the batch sequence number.
func WithBatchID(ctx context.Context, batchID int) context.Context {
	return context.WithValue(ctx, BatchIDKey, batchID)
}

// WithStage tags the context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, stage)
}

// FromContext returns base enriched with whatever business context keys the
// context carries.
func FromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	var fields []any
	if interactionID := ctx.Value(InteractionIDKey); interactionID != nil {
		fields = append(fields, string(InteractionIDKey), interactionID)
	}
	if batchID := ctx.Value(BatchIDKey); batchID != nil {
		fields = append(fields, string(BatchIDKey), batchID)
	}
	if stage := ctx.Value(StageKey); stage != nil {
		fields = append(fields, string(StageKey), stage)
	}
	if len(fields) > 0 {
		return base.With(fields...)
	}
	return base
}
