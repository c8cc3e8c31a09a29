package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("garbage"))
}

func TestFromContext_AddsBusinessKeys(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithInteractionID(context.Background(), "abc-123")
	ctx = WithBatchID(ctx, 7)
	ctx = WithStage(ctx, "retrieval")

	FromContext(ctx, base).Info("event")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "abc-123", record["rag.interaction.id"])
	assert.Equal(t, float64(7), record["rag.batch.id"])
	assert.Equal(t, "retrieval", record["rag.stage"])
}

func TestFromContext_PlainContextIsUnchanged(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	logger := FromContext(context.Background(), base)

	assert.Same(t, base, logger)
}

func TestMultiHandler_FanOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &MultiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	}}

	slog.New(h).Info("fan_out_event", slog.String("k", "v"))

	assert.Contains(t, a.String(), "fan_out_event")
	assert.Contains(t, b.String(), "fan_out_event")
}

func TestMultiHandler_RespectsLevel(t *testing.T) {
	var quiet, loud bytes.Buffer
	h := &MultiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewJSONHandler(&loud, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}

	slog.New(h).Info("info_event")

	assert.Empty(t, quiet.String())
	assert.Contains(t, loud.String(), "info_event")
}
