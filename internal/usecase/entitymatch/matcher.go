package entitymatch

import (
	"context"
	"log/slog"
	"strings"

	"rag-pipeline/internal/domain"
)

// Matcher resolves raw entity mentions into canonical identifiers. Remote
// lookup failures are logged and the mention is skipped; matching never fails
// a query outright.
type Matcher struct {
	companies *CompanyTable
	finance   domain.FinanceSource
	music     domain.MusicSource
	movies    domain.MovieSource
	logger    *slog.Logger
}

func NewMatcher(
	companies *CompanyTable,
	finance domain.FinanceSource,
	music domain.MusicSource,
	movies domain.MovieSource,
	logger *slog.Logger,
) *Matcher {
	return &Matcher{
		companies: companies,
		finance:   finance,
		music:     music,
		movies:    movies,
		logger:    logger,
	}
}

// Companies exposes the loaded company table for report formatting.
func (m *Matcher) Companies() *CompanyTable {
	return m.companies
}

// Match canonicalizes the mentions for the given query domain. Categories that
// do not apply to the domain are ignored.
func (m *Matcher) Match(ctx context.Context, mentions *domain.Mentions, queryDomain domain.QueryDomain) domain.MatchedEntities {
	var matched domain.MatchedEntities
	switch queryDomain {
	case domain.DomainFinance:
		m.matchFinance(ctx, mentions, &matched)
	case domain.DomainMusic:
		m.matchMusic(ctx, mentions, &matched)
	case domain.DomainMovie:
		m.matchMovie(ctx, mentions, &matched)
	case domain.DomainSports:
		m.matchSports(mentions, &matched)
	}
	return matched
}

// matchFinance resolves company and symbol mentions to listed tickers. A
// company name tries the local table first, then a bare-symbol reading, and
// finally one fuzzy lookup against the knowledge source.
func (m *Matcher) matchFinance(ctx context.Context, mentions *domain.Mentions, matched *domain.MatchedEntities) {
	for _, name := range mentions.Get(domain.CategoryCompany) {
		if symbol, ok := m.companies.SymbolByName(name); ok {
			matched.Symbols = append(matched.Symbols, symbol)
			continue
		}
		if upper := strings.ToUpper(name); m.companies.HasSymbol(upper) {
			matched.Symbols = append(matched.Symbols, upper)
			continue
		}
		candidates, err := m.finance.CompanyNames(ctx, name)
		if err != nil {
			m.logger.Warn("company name lookup failed",
				slog.String("name", name),
				slog.String("error", err.Error()))
			continue
		}
		if len(candidates) > 0 {
			if symbol, ok := m.companies.SymbolByName(candidates[0]); ok {
				matched.Symbols = append(matched.Symbols, symbol)
			}
		}
	}
	for _, symbol := range mentions.Get(domain.CategorySymbol) {
		if upper := strings.ToUpper(symbol); m.companies.HasSymbol(upper) {
			matched.Symbols = append(matched.Symbols, upper)
		}
	}
}

// matchMusic canonicalizes artist and song mentions through fuzzy search,
// keeping only case-insensitive exact hits. Band mentions pass through as-is.
func (m *Matcher) matchMusic(ctx context.Context, mentions *domain.Mentions, matched *domain.MatchedEntities) {
	for _, name := range mentions.Get(domain.CategoryPerson) {
		canonical, err := m.canonicalName(ctx, name, m.music.SearchArtists)
		if err != nil {
			m.logger.Warn("artist search failed",
				slog.String("name", name),
				slog.String("error", err.Error()))
			continue
		}
		if canonical != "" {
			matched.Artists = append(matched.Artists, canonical)
		}
	}
	for _, name := range mentions.Get(domain.CategorySong) {
		canonical, err := m.canonicalName(ctx, name, m.music.SearchSongs)
		if err != nil {
			m.logger.Warn("song search failed",
				slog.String("name", name),
				slog.String("error", err.Error()))
			continue
		}
		if canonical != "" {
			matched.Songs = append(matched.Songs, canonical)
		}
	}
	matched.Bands = append(matched.Bands, mentions.Get(domain.CategoryBand)...)
}

func (m *Matcher) canonicalName(ctx context.Context, name string, search func(context.Context, string) ([]string, error)) (string, error) {
	candidates, err := search(ctx, name)
	if err != nil {
		return "", err
	}
	for _, candidate := range candidates {
		if strings.EqualFold(candidate, name) {
			return candidate, nil
		}
	}
	return "", nil
}

// matchMovie resolves movie and person mentions to numeric IDs, keeping every
// record whose title (or original title) matches exactly.
func (m *Matcher) matchMovie(ctx context.Context, mentions *domain.Mentions, matched *domain.MatchedEntities) {
	for _, name := range mentions.Get(domain.CategoryMovie) {
		records, err := m.movies.MoviesByName(ctx, name)
		if err != nil {
			m.logger.Warn("movie lookup failed",
				slog.String("name", name),
				slog.String("error", err.Error()))
			continue
		}
		for _, rec := range records {
			if strings.EqualFold(rec.Title, name) || strings.EqualFold(rec.OriginalTitle, name) {
				matched.MovieIDs = append(matched.MovieIDs, rec.ID)
			}
		}
	}
	for _, name := range mentions.Get(domain.CategoryPerson) {
		records, err := m.movies.PersonsByName(ctx, name)
		if err != nil {
			m.logger.Warn("person lookup failed",
				slog.String("name", name),
				slog.String("error", err.Error()))
			continue
		}
		for _, rec := range records {
			if strings.EqualFold(rec.Name, name) {
				matched.PersonIDs = append(matched.PersonIDs, rec.ID)
			}
		}
	}
}

// matchSports keeps team mentions that are canonical roster names and passes
// player mentions through untouched.
func (m *Matcher) matchSports(mentions *domain.Mentions, matched *domain.MatchedEntities) {
	for _, name := range mentions.Get(domain.CategoryNBATeam) {
		if IsNBATeam(name) {
			matched.NBATeams = append(matched.NBATeams, name)
		}
	}
	for _, name := range mentions.Get(domain.CategorySoccerTeam) {
		if IsSoccerTeam(name) {
			matched.SoccerTeams = append(matched.SoccerTeams, name)
		}
	}
	matched.NBAPlayers = append(matched.NBAPlayers, mentions.Get(domain.CategoryNBAPlayer)...)
	matched.SoccerPlayers = append(matched.SoccerPlayers, mentions.Get(domain.CategorySoccerPlayer)...)
}

// TickerNamesInQuery is the finance fallback when no entities were extracted:
// fuzzy-search the whole query and keep tickers of companies whose name
// literally appears in it.
func (m *Matcher) TickerNamesInQuery(ctx context.Context, query string) []string {
	candidates, err := m.finance.CompanyNames(ctx, query)
	if err != nil {
		m.logger.Warn("company name lookup failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return nil
	}
	lowered := strings.ToLower(query)
	var symbols []string
	for _, candidate := range candidates {
		if !strings.Contains(lowered, strings.ToLower(candidate)) {
			continue
		}
		if symbol, ok := m.companies.SymbolByName(candidate); ok {
			symbols = append(symbols, symbol)
		}
	}
	return symbols
}
