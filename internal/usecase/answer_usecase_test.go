package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase"
	"rag-pipeline/internal/usecase/entitymatch"
	"rag-pipeline/internal/usecase/facts"
	"rag-pipeline/internal/usecase/ner"
)

type scriptedChat struct {
	reply string
	err   error
	delay time.Duration

	calls      int
	lastSystem string
	lastUser   string
}

func (c *scriptedChat) Chat(ctx context.Context, system, user string) (string, error) {
	c.calls++
	c.lastSystem = system
	c.lastUser = user
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return c.reply, c.err
}

func (c *scriptedChat) Version() string { return "scripted" }

type stubPassageRetriever struct {
	passages []string
	err      error
}

func (r *stubPassageRetriever) Retrieve(_ context.Context, _, _ string, _ []domain.SearchResult) ([]string, error) {
	return r.passages, r.err
}

type stubFinanceSource struct {
	marketCap *float64
}

func (s *stubFinanceSource) CompanyNames(context.Context, string) ([]string, error) {
	return nil, nil
}

func (s *stubFinanceSource) PriceHistory(context.Context, string) (map[string]domain.DayPrice, error) {
	return nil, nil
}

func (s *stubFinanceSource) DetailedPriceHistory(context.Context, string) (map[string]domain.DayPrice, error) {
	return nil, nil
}

func (s *stubFinanceSource) DividendHistory(context.Context, string) (map[string]float64, error) {
	return nil, nil
}

func (s *stubFinanceSource) MarketCapitalization(context.Context, string) (*float64, error) {
	return s.marketCap, nil
}

func (s *stubFinanceSource) EPS(context.Context, string) (*float64, error) { return nil, nil }

func (s *stubFinanceSource) PERatio(context.Context, string) (*float64, error) { return nil, nil }

func (s *stubFinanceSource) Info(context.Context, string) (map[string]any, error) {
	return nil, nil
}

func constLabel(label string) domain.ClassifierFunc {
	return func(context.Context, string) (string, error) {
		return label, nil
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTestCompanies(t *testing.T) *entitymatch.CompanyTable {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.csv")
	csv := "No,Name,Symbol\n1,Apple Inc,AAPL\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	table, err := entitymatch.LoadCompanyTable(path)
	require.NoError(t, err)
	return table
}

type pipelineFixture struct {
	answerChat *scriptedChat
	nerChat    *scriptedChat
	retriever  *stubPassageRetriever
	finance    *stubFinanceSource
}

func newAnswerUsecase(t *testing.T, fx *pipelineFixture, domainLabel, volatilityLabel string, timeout time.Duration) *usecase.AnswerUsecase {
	t.Helper()
	logger := discardLogger()
	matcher := entitymatch.NewMatcher(loadTestCompanies(t), fx.finance, nil, nil, logger)
	formatter := facts.NewFormatter(matcher, fx.finance, nil, nil, nil, logger)
	extractor := ner.NewExtractor(fx.nerChat, logger)
	return usecase.NewAnswerUsecase(
		fx.answerChat,
		fx.retriever,
		extractor,
		matcher,
		formatter,
		constLabel(domainLabel),
		constLabel(volatilityLabel),
		timeout,
		logger,
	)
}

func TestAnswer_OpenDomainUsesPassages(t *testing.T) {
	fx := &pipelineFixture{
		answerChat: &scriptedChat{reply: "Some reasoning first.\n## Final Answer\nParis"},
		nerChat:    &scriptedChat{reply: "should not be called"},
		retriever: &stubPassageRetriever{passages: []string{
			"Paris is the capital of France.",
			"France is a country in Europe.",
		}},
		finance: &stubFinanceSource{},
	}
	uc := newAnswerUsecase(t, fx, "open", "static", 0)

	answer := uc.Answer(context.Background(), usecase.AnswerInput{
		InteractionID: "q-1",
		Query:         "what is the capital of france",
		QueryTime:     "03/05/2024, 10:00:00 PT",
	})

	assert.Equal(t, "Paris", answer)
	assert.Contains(t, fx.answerChat.lastUser, "<DOC>")
	assert.Contains(t, fx.answerChat.lastUser, "Paris is the capital of France.")
	assert.Equal(t, 0, fx.nerChat.calls, "open domain should skip entity extraction")
}

func TestAnswer_FinanceReferencesAreFactSheetOnly(t *testing.T) {
	marketCap := 2.5e12
	fx := &pipelineFixture{
		answerChat: &scriptedChat{reply: "## Final Answer\n$2.5 trillion"},
		nerChat:    &scriptedChat{reply: "Apple Inc(company)"},
		retriever:  &stubPassageRetriever{passages: []string{"some unrelated web passage"}},
		finance:    &stubFinanceSource{marketCap: &marketCap},
	}
	uc := newAnswerUsecase(t, fx, "finance", "static", 0)

	answer := uc.Answer(context.Background(), usecase.AnswerInput{
		InteractionID: "q-2",
		Query:         "what is apple's market cap",
		QueryTime:     "03/05/2024, 10:00:00 PT",
	})

	assert.Equal(t, "$2.5 trillion", answer)
	assert.Equal(t, 1, fx.nerChat.calls)
	assert.Contains(t, fx.answerChat.lastUser, "Apple Inc (AAPL)")
	assert.Contains(t, fx.answerChat.lastUser, "Market Capitalization")
	assert.NotContains(t, fx.answerChat.lastUser, "some unrelated web passage")
}

func TestAnswer_ChatFailureAbstains(t *testing.T) {
	fx := &pipelineFixture{
		answerChat: &scriptedChat{err: errors.New("model unavailable")},
		nerChat:    &scriptedChat{},
		retriever:  &stubPassageRetriever{passages: []string{"a passage"}},
		finance:    &stubFinanceSource{},
	}
	uc := newAnswerUsecase(t, fx, "open", "static", 0)

	answer := uc.Answer(context.Background(), usecase.AnswerInput{
		InteractionID: "q-3",
		Query:         "who wrote hamlet",
		QueryTime:     "03/05/2024, 10:00:00 PT",
	})

	assert.Equal(t, "i don't know", answer)
}

func TestAnswer_MissingFinalAnswerMarkerAbstains(t *testing.T) {
	fx := &pipelineFixture{
		answerChat: &scriptedChat{reply: "rambling output with no marker"},
		nerChat:    &scriptedChat{},
		retriever:  &stubPassageRetriever{passages: []string{"a passage"}},
		finance:    &stubFinanceSource{},
	}
	uc := newAnswerUsecase(t, fx, "open", "static", 0)

	answer := uc.Answer(context.Background(), usecase.AnswerInput{
		InteractionID: "q-4",
		Query:         "who wrote hamlet",
		QueryTime:     "03/05/2024, 10:00:00 PT",
	})

	assert.Equal(t, "i don't know", answer)
}

func TestAnswer_FastChangingOpenQueryAbstains(t *testing.T) {
	fx := &pipelineFixture{
		answerChat: &scriptedChat{reply: "## Final Answer\n$187.33"},
		nerChat:    &scriptedChat{},
		retriever:  &stubPassageRetriever{passages: []string{"a passage"}},
		finance:    &stubFinanceSource{},
	}
	uc := newAnswerUsecase(t, fx, "open", "fast-changing", 0)

	answer := uc.Answer(context.Background(), usecase.AnswerInput{
		InteractionID: "q-5",
		Query:         "what is the current price of bitcoin",
		QueryTime:     "03/05/2024, 10:00:00 PT",
	})

	assert.Equal(t, "I don't know", answer)
}

func TestAnswer_RetrieverFailureStillAnswers(t *testing.T) {
	fx := &pipelineFixture{
		answerChat: &scriptedChat{reply: "## Final Answer\nShakespeare"},
		nerChat:    &scriptedChat{},
		retriever:  &stubPassageRetriever{err: errors.New("index offline")},
		finance:    &stubFinanceSource{},
	}
	uc := newAnswerUsecase(t, fx, "open", "static", 0)

	answer := uc.Answer(context.Background(), usecase.AnswerInput{
		InteractionID: "q-6",
		Query:         "who wrote hamlet",
		QueryTime:     "03/05/2024, 10:00:00 PT",
	})

	assert.Equal(t, "Shakespeare", answer)
	assert.Contains(t, fx.answerChat.lastUser, "No References")
}

func TestAnswer_ClassifierFailureFallsBackToOpen(t *testing.T) {
	fx := &pipelineFixture{
		answerChat: &scriptedChat{reply: "## Final Answer\nShakespeare"},
		nerChat:    &scriptedChat{reply: "should not be called"},
		retriever:  &stubPassageRetriever{passages: []string{"Hamlet was written by Shakespeare."}},
		finance:    &stubFinanceSource{},
	}
	logger := discardLogger()
	matcher := entitymatch.NewMatcher(loadTestCompanies(t), fx.finance, nil, nil, logger)
	formatter := facts.NewFormatter(matcher, fx.finance, nil, nil, nil, logger)
	failing := func(context.Context, string) (string, error) {
		return "", errors.New("router offline")
	}
	uc := usecase.NewAnswerUsecase(
		fx.answerChat, fx.retriever, ner.NewExtractor(fx.nerChat, logger),
		matcher, formatter, failing, failing, 0, logger,
	)

	answer := uc.Answer(context.Background(), usecase.AnswerInput{
		InteractionID: "q-7",
		Query:         "who wrote hamlet",
		QueryTime:     "03/05/2024, 10:00:00 PT",
	})

	assert.Equal(t, "Shakespeare", answer)
	assert.Equal(t, 0, fx.nerChat.calls)
	assert.Contains(t, fx.answerChat.lastUser, "Hamlet was written by Shakespeare.")
}

func TestAnswer_HintsOverrideClassifiers(t *testing.T) {
	fx := &pipelineFixture{
		answerChat: &scriptedChat{reply: "## Final Answer\n$187.33"},
		nerChat:    &scriptedChat{},
		retriever:  &stubPassageRetriever{passages: []string{"a passage"}},
		finance:    &stubFinanceSource{},
	}
	uc := newAnswerUsecase(t, fx, "finance", "static", 0)

	answer := uc.Answer(context.Background(), usecase.AnswerInput{
		InteractionID:  "q-9",
		Query:          "what is the current price of bitcoin",
		QueryTime:      "03/05/2024, 10:00:00 PT",
		DomainHint:     "open",
		VolatilityHint: "real-time",
	})

	assert.Equal(t, "I don't know", answer, "hinted open real-time query should abstain")
}

func TestAnswer_QueryBudgetExceededAbstains(t *testing.T) {
	fx := &pipelineFixture{
		answerChat: &scriptedChat{reply: "## Final Answer\ntoo late", delay: time.Second},
		nerChat:    &scriptedChat{},
		retriever:  &stubPassageRetriever{passages: []string{"a passage"}},
		finance:    &stubFinanceSource{},
	}
	uc := newAnswerUsecase(t, fx, "open", "static", 50*time.Millisecond)

	start := time.Now()
	answer := uc.Answer(context.Background(), usecase.AnswerInput{
		InteractionID: "q-8",
		Query:         "who wrote hamlet",
		QueryTime:     "03/05/2024, 10:00:00 PT",
	})

	assert.Equal(t, "i don't know", answer)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
