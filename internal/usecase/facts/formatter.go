// Package facts renders structured knowledge-source data into the markdown
// fact blocks that accompany a query to the answer model. Each domain has its
// own report layout; all remote lookups are best effort and a failed call
// drops the section rather than the report.
package facts

import (
	"context"
	"log/slog"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase/entitymatch"
)

// Formatter builds per-domain fact reports.
type Formatter struct {
	matcher *entitymatch.Matcher
	finance domain.FinanceSource
	music   domain.MusicSource
	movies  domain.MovieSource
	sports  domain.SportsSource
	logger  *slog.Logger
}

func NewFormatter(
	matcher *entitymatch.Matcher,
	finance domain.FinanceSource,
	music domain.MusicSource,
	movies domain.MovieSource,
	sports domain.SportsSource,
	logger *slog.Logger,
) *Formatter {
	return &Formatter{
		matcher: matcher,
		finance: finance,
		music:   music,
		movies:  movies,
		sports:  sports,
		logger:  logger,
	}
}

// Format renders the fact report for the query's domain. Domains without
// structured data (open and anything unrecognized) yield "".
func (f *Formatter) Format(ctx context.Context, qc domain.QueryContext, matched domain.MatchedEntities) string {
	switch qc.Domain {
	case domain.DomainFinance:
		return f.FormatFinance(ctx, qc, matched)
	case domain.DomainMusic:
		return f.FormatMusic(ctx, qc, matched)
	case domain.DomainMovie:
		return f.FormatMovie(ctx, qc, matched)
	case domain.DomainSports:
		return f.FormatSports(ctx, qc, matched)
	}
	return ""
}

func (f *Formatter) warn(event string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("error", err.Error()))
	f.logger.Warn(event, attrs...)
}
