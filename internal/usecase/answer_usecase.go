// Package usecase orchestrates the answer pipeline: classify, retrieve,
// enrich with structured facts, generate, post-process.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase/entitymatch"
	"rag-pipeline/internal/usecase/facts"
	"rag-pipeline/internal/usecase/ner"

	"golang.org/x/sync/errgroup"
)

// AnswerInput is one query with its raw search results. DomainHint and
// VolatilityHint carry pre-assigned labels when the caller has them, e.g.
// from dataset annotations; empty hints fall back to the classifier funcs.
type AnswerInput struct {
	InteractionID  string
	Query          string
	QueryTime      string
	SearchResults  []domain.SearchResult
	DomainHint     string
	VolatilityHint string
}

// AnswerUsecase generates the final answer for a query. It never returns an
// error: every failure path degrades to the abstention answer.
type AnswerUsecase struct {
	chat               domain.ChatClient
	retriever          domain.PassageRetriever
	extractor          *ner.Extractor
	matcher            *entitymatch.Matcher
	formatter          *facts.Formatter
	classifyDomain     domain.ClassifierFunc
	classifyVolatility domain.ClassifierFunc
	queryTimeout       time.Duration
	logger             *slog.Logger
}

// NewAnswerUsecase wires the pipeline. classifyVolatility may be nil; queries
// are then treated as static. queryTimeout of zero disables the per-query
// budget.
func NewAnswerUsecase(
	chat domain.ChatClient,
	retriever domain.PassageRetriever,
	extractor *ner.Extractor,
	matcher *entitymatch.Matcher,
	formatter *facts.Formatter,
	classifyDomain domain.ClassifierFunc,
	classifyVolatility domain.ClassifierFunc,
	queryTimeout time.Duration,
	logger *slog.Logger,
) *AnswerUsecase {
	return &AnswerUsecase{
		chat:               chat,
		retriever:          retriever,
		extractor:          extractor,
		matcher:            matcher,
		formatter:          formatter,
		classifyDomain:     classifyDomain,
		classifyVolatility: classifyVolatility,
		queryTimeout:       queryTimeout,
		logger:             logger,
	}
}

// Answer runs the pipeline under the per-query wall-clock budget. A query
// that exceeds the budget fails soft with an abstention.
func (u *AnswerUsecase) Answer(ctx context.Context, in AnswerInput) string {
	if u.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.queryTimeout)
		defer cancel()
	}

	result := make(chan string, 1)
	go func() {
		result <- u.generate(ctx, in)
	}()

	select {
	case answer := <-result:
		return answer
	case <-ctx.Done():
		u.logger.Warn("query_budget_exceeded",
			slog.String("interaction_id", in.InteractionID),
			slog.String("query", in.Query))
		return "i don't know"
	}
}

func (u *AnswerUsecase) generate(ctx context.Context, in AnswerInput) string {
	start := time.Now()
	queryDomain := u.routeDomain(ctx, in)
	volatility := u.routeVolatility(ctx, in)

	qc := domain.QueryContext{
		InteractionID: in.InteractionID,
		Query:         in.Query,
		QueryTime:     in.QueryTime,
		Domain:        queryDomain,
		Volatility:    volatility,
	}

	var (
		passages  []string
		factSheet string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		retrieved, err := u.retriever.Retrieve(gctx, in.Query, in.InteractionID, in.SearchResults)
		if err != nil {
			u.logger.Warn("passage_retrieval_failed",
				slog.String("interaction_id", in.InteractionID),
				slog.String("error", err.Error()))
			return nil
		}
		passages = retrieved
		return nil
	})
	g.Go(func() error {
		if queryDomain == domain.DomainOpen {
			return nil
		}
		mentions := u.extractor.Extract(gctx, in.Query, queryDomain)
		matched := u.matcher.Match(gctx, mentions, queryDomain)
		factSheet = u.formatter.Format(gctx, qc, matched)
		return nil
	})
	_ = g.Wait()

	references := BuildReferences(queryDomain, factSheet, passages)
	prompt := BuildAnswerPrompt(queryDomain, in.QueryTime, in.Query, references)

	answer := "i don't know"
	raw, err := u.chat.Chat(ctx, answerSystemPrompt, prompt)
	if err != nil {
		u.logger.Warn("answer_generation_failed",
			slog.String("interaction_id", in.InteractionID),
			slog.String("error", err.Error()))
	} else {
		answer = ExtractFinalAnswer(raw)
	}

	answer = ApplyAbstentionRules(in.Query, queryDomain, volatility, answer)

	u.logger.Info("query_answered",
		slog.String("interaction_id", in.InteractionID),
		slog.String("domain", string(queryDomain)),
		slog.Int("passage_count", len(passages)),
		slog.Bool("has_fact_sheet", factSheet != ""),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return answer
}

func (u *AnswerUsecase) routeDomain(ctx context.Context, in AnswerInput) domain.QueryDomain {
	label := in.DomainHint
	if label == "" {
		if u.classifyDomain == nil {
			return domain.DomainOpen
		}
		classified, err := u.classifyDomain(ctx, in.Query)
		if err != nil {
			u.logger.Warn("domain_classification_failed", slog.String("error", err.Error()))
			return domain.DomainOpen
		}
		label = classified
	}
	switch domain.QueryDomain(label) {
	case domain.DomainFinance, domain.DomainMusic, domain.DomainMovie, domain.DomainSports:
		return domain.QueryDomain(label)
	default:
		return domain.DomainOpen
	}
}

func (u *AnswerUsecase) routeVolatility(ctx context.Context, in AnswerInput) domain.Volatility {
	label := in.VolatilityHint
	if label == "" {
		if u.classifyVolatility == nil {
			return domain.VolatilityStatic
		}
		classified, err := u.classifyVolatility(ctx, in.Query)
		if err != nil {
			u.logger.Warn("volatility_classification_failed", slog.String("error", err.Error()))
			return domain.VolatilityStatic
		}
		label = classified
	}
	switch domain.Volatility(label) {
	case domain.VolatilitySlowChanging, domain.VolatilityFastChanging, domain.VolatilityRealTime:
		return domain.Volatility(label)
	default:
		return domain.VolatilityStatic
	}
}
