package facts_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase/entitymatch"
	"rag-pipeline/internal/usecase/facts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference timestamp: Thursday, 2024-02-29.
const refTime = "02/29/2024, 10:30:00 PT"

type stubFinance struct {
	companyNames []string
	history      map[string]map[string]domain.DayPrice
	detailed     map[string]map[string]domain.DayPrice
	dividends    map[string]map[string]float64
	marketCap    *float64
	eps          *float64
	peRatio      *float64
	info         map[string]any
}

func (s *stubFinance) CompanyNames(ctx context.Context, query string) ([]string, error) {
	return s.companyNames, nil
}

func (s *stubFinance) PriceHistory(ctx context.Context, symbol string) (map[string]domain.DayPrice, error) {
	return s.history[symbol], nil
}

func (s *stubFinance) DetailedPriceHistory(ctx context.Context, symbol string) (map[string]domain.DayPrice, error) {
	return s.detailed[symbol], nil
}

func (s *stubFinance) DividendHistory(ctx context.Context, symbol string) (map[string]float64, error) {
	return s.dividends[symbol], nil
}

func (s *stubFinance) MarketCapitalization(ctx context.Context, symbol string) (*float64, error) {
	return s.marketCap, nil
}

func (s *stubFinance) EPS(ctx context.Context, symbol string) (*float64, error) {
	return s.eps, nil
}

func (s *stubFinance) PERatio(ctx context.Context, symbol string) (*float64, error) {
	return s.peRatio, nil
}

func (s *stubFinance) Info(ctx context.Context, symbol string) (map[string]any, error) {
	return s.info, nil
}

type stubMusic struct {
	artists      []string
	songs        []string
	birthPlace   string
	birthDate    string
	lifespan     domain.Lifespan
	works        []string
	releaseDates map[string]string
	members      []string
	artistCount  *int
	songCount    *int
	awardYears   []int
	bestArtists  map[string][]string
	bestSongs    map[string][]string
	bestAlbums   map[string][]string
}

func (s *stubMusic) SearchArtists(ctx context.Context, name string) ([]string, error) {
	return s.artists, nil
}

func (s *stubMusic) SearchSongs(ctx context.Context, name string) ([]string, error) {
	return s.songs, nil
}

func (s *stubMusic) ArtistBirthPlace(ctx context.Context, artist string) (string, error) {
	return s.birthPlace, nil
}

func (s *stubMusic) ArtistBirthDate(ctx context.Context, artist string) (string, error) {
	return s.birthDate, nil
}

func (s *stubMusic) ArtistLifespan(ctx context.Context, artist string) (domain.Lifespan, error) {
	return s.lifespan, nil
}

func (s *stubMusic) ArtistWorks(ctx context.Context, artist string) ([]string, error) {
	return s.works, nil
}

func (s *stubMusic) BandMembers(ctx context.Context, band string) ([]string, error) {
	return s.members, nil
}

func (s *stubMusic) SongAuthor(ctx context.Context, song string) (string, error) {
	return "", nil
}

func (s *stubMusic) SongReleaseDate(ctx context.Context, song string) (string, error) {
	return s.releaseDates[song], nil
}

func (s *stubMusic) SongReleaseCountry(ctx context.Context, song string) (string, error) {
	return "", nil
}

func (s *stubMusic) GrammyCountByArtist(ctx context.Context, artist string) (*int, error) {
	return s.artistCount, nil
}

func (s *stubMusic) GrammyCountBySong(ctx context.Context, song string) (*int, error) {
	return s.songCount, nil
}

func (s *stubMusic) GrammyYearsByArtist(ctx context.Context, artist string) ([]int, error) {
	return s.awardYears, nil
}

func (s *stubMusic) GrammyBestNewArtists(ctx context.Context, year string) ([]string, error) {
	return s.bestArtists[year], nil
}

func (s *stubMusic) GrammyBestSongs(ctx context.Context, year string) ([]string, error) {
	return s.bestSongs[year], nil
}

func (s *stubMusic) GrammyBestAlbums(ctx context.Context, year string) ([]string, error) {
	return s.bestAlbums[year], nil
}

type stubMovies struct {
	byID   map[int]*domain.MovieRecord
	people map[int]*domain.PersonRecord
	awards map[string][]domain.OscarAward
}

func (s *stubMovies) MoviesByName(ctx context.Context, name string) ([]domain.MovieRecord, error) {
	return nil, nil
}

func (s *stubMovies) PersonsByName(ctx context.Context, name string) ([]domain.PersonRecord, error) {
	return nil, nil
}

func (s *stubMovies) MovieByID(ctx context.Context, id int) (*domain.MovieRecord, error) {
	return s.byID[id], nil
}

func (s *stubMovies) PersonByID(ctx context.Context, id int) (*domain.PersonRecord, error) {
	return s.people[id], nil
}

func (s *stubMovies) OscarAwardsByYear(ctx context.Context, year string) ([]domain.OscarAward, error) {
	return s.awards[year], nil
}

type stubSports struct {
	nba    map[string][]domain.NBAGame
	soccer map[string][]domain.SoccerGame
}

func (s *stubSports) NBAGamesOnDate(ctx context.Context, date, team string) ([]domain.NBAGame, error) {
	return s.nba[date], nil
}

func (s *stubSports) SoccerGamesOnDate(ctx context.Context, date, team string) ([]domain.SoccerGame, error) {
	return s.soccer[date], nil
}

func newFormatter(t *testing.T, finance domain.FinanceSource, music domain.MusicSource, movies domain.MovieSource, sports domain.SportsSource) *facts.Formatter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.csv")
	csv := "No,Name,Symbol\n1,Apple Inc.,AAPL\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	table, err := entitymatch.LoadCompanyTable(path)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	matcher := entitymatch.NewMatcher(table, finance, music, movies, logger)
	return facts.NewFormatter(matcher, finance, music, movies, sports, logger)
}

func financeContext(query string) domain.QueryContext {
	return domain.QueryContext{
		Query:     query,
		QueryTime: refTime,
		Domain:    domain.DomainFinance,
	}
}

func day(open, close, high, low float64, volume int64) domain.DayPrice {
	return domain.DayPrice{Open: open, Close: close, High: high, Low: low, Volume: volume}
}

func TestFormatFinance_ClosePriceOnDate(t *testing.T) {
	finance := &stubFinance{
		history: map[string]map[string]domain.DayPrice{
			"AAPL": {
				"2024-02-28 00:00:00 EST": day(168.5, 170.0, 171.25, 167.8, 1234567),
			},
		},
	}
	f := newFormatter(t, finance, &stubMusic{}, &stubMovies{}, &stubSports{})

	out := f.FormatFinance(context.Background(), financeContext("what was the close price of aapl yesterday"),
		domain.MatchedEntities{Symbols: []string{"AAPL"}})

	assert.Contains(t, out, "#### Some information of Apple Inc. (AAPL)")
	assert.Contains(t, out, "- Stock Price of 2024-02-28(Wednesday)")
	assert.Contains(t, out, "    - Close: $170.00\n")
	assert.Contains(t, out, "    - High: $171.25\n")
	assert.Contains(t, out, "    - Volume: 1,234,567\n")
}

func TestFormatFinance_NoSymbolsNoReport(t *testing.T) {
	f := newFormatter(t, &stubFinance{}, &stubMusic{}, &stubMovies{}, &stubSports{})
	out := f.FormatFinance(context.Background(), financeContext("what was the price yesterday"), domain.MatchedEntities{})
	assert.Empty(t, out)
}

func TestFormatFinance_LastWeekAverages(t *testing.T) {
	finance := &stubFinance{
		history: map[string]map[string]domain.DayPrice{
			"AAPL": {
				// Last week runs 2024-02-18 (Sun) through 2024-02-24 (Sat).
				"2024-02-20 00:00:00 EST": day(100, 110, 112, 99, 1000),
				"2024-02-21 00:00:00 EST": day(110, 120, 122, 109, 3000),
			},
		},
	}
	f := newFormatter(t, finance, &stubMusic{}, &stubMovies{}, &stubSports{})

	out := f.FormatFinance(context.Background(), financeContext("average stock price of aapl last week"),
		domain.MatchedEntities{Symbols: []string{"AAPL"}})

	assert.Contains(t, out, "Average Stock Price Last Week (On a daily basis)")
	assert.Contains(t, out, "- Average Open Last Week: $105.00\n")
	assert.Contains(t, out, "- Average Close Last Week: $115.00\n")
	assert.Contains(t, out, "- Average Volume Last Week: 2,000.00\n")
	// The aggregate keyword suppresses both the itemized days and the
	// window open/close block.
	assert.NotContains(t, out, "- Stock Price of 2024-02-20")
	assert.NotContains(t, out, "- Overall Rise:")
}

func TestFormatFinance_SentinelPriceDropsWindow(t *testing.T) {
	finance := &stubFinance{
		history: map[string]map[string]domain.DayPrice{
			"AAPL": {
				"2024-02-20 00:00:00 EST": day(100, 110, 112, 99, 1000),
				"2024-02-21 00:00:00 EST": day(0.01, 120, 122, 109, 3000),
			},
		},
	}
	f := newFormatter(t, finance, &stubMusic{}, &stubMovies{}, &stubSports{})

	out := f.FormatFinance(context.Background(), financeContext("stock price of aapl last week"),
		domain.MatchedEntities{Symbols: []string{"AAPL"}})

	assert.NotContains(t, out, "Stock Price Last Week")
	assert.NotContains(t, out, "Average")
}

func TestFormatFinance_DividendTimesPerYear(t *testing.T) {
	finance := &stubFinance{
		dividends: map[string]map[string]float64{
			"AAPL": {
				"2022-03-10 00:00:00 EST": 0.22,
				"2022-09-10 00:00:00 EST": 0.23,
				"2023-03-10 00:00:00 EST": 0.24,
				"2023-09-10 00:00:00 EST": 0.24,
			},
		},
	}
	f := newFormatter(t, finance, &stubMusic{}, &stubMovies{}, &stubSports{})

	out := f.FormatFinance(context.Background(), financeContext("how many dividends does aapl pay in a year 2023"),
		domain.MatchedEntities{Symbols: []string{"AAPL"}})

	assert.Contains(t, out, "- Dividends Distributed Times Per Year: 2\n")
	assert.Contains(t, out, "- Total Dividends Distributed in 2023: $0.48\n")
}

func TestFormatFinance_NoDividendsNote(t *testing.T) {
	f := newFormatter(t, &stubFinance{}, &stubMusic{}, &stubMovies{}, &stubSports{})

	out := f.FormatFinance(context.Background(), financeContext("which days did aapl distribute dividends"),
		domain.MatchedEntities{Symbols: []string{"AAPL"}})

	assert.Contains(t, out, "- No Dividends Distributed\n")
	assert.Contains(t, out, "Note:\n")
	assert.Contains(t, out, "reply `None of the Days`")
}

func TestFormatMovie_ZeroRevenueIsUnknown(t *testing.T) {
	zero := int64(0)
	budget := int64(160_000_000)
	length := 148
	movies := &stubMovies{
		byID: map[int]*domain.MovieRecord{
			27205: {
				ID:               27205,
				Title:            "Inception",
				OriginalTitle:    "Inception",
				OriginalLanguage: "en",
				ReleaseDate:      "2010-07-15",
				Revenue:          &zero,
				Budget:           &budget,
				Length:           &length,
			},
		},
	}
	f := newFormatter(t, &stubFinance{}, &stubMusic{}, movies, &stubSports{})

	qc := domain.QueryContext{Query: "how much did inception make", QueryTime: refTime, Domain: domain.DomainMovie}
	out := f.FormatMovie(context.Background(), qc, domain.MatchedEntities{MovieIDs: []int{27205}})

	assert.Contains(t, out, "- Revenue: Unknown\n")
	assert.Contains(t, out, "- Budget: 160000000\n")
	assert.Contains(t, out, "- Length: 148 minutes\n")
}

func TestFormatMovie_OscarYearSummary(t *testing.T) {
	movies := &stubMovies{
		awards: map[string][]domain.OscarAward{
			"2020": {
				{Category: "BEST PICTURE", Winner: true, Name: "Bong Joon Ho", Film: "Parasite"},
				{Category: "BEST PICTURE", Winner: false, Name: "Someone Else", Film: "Another Film"},
			},
		},
	}
	f := newFormatter(t, &stubFinance{}, &stubMusic{}, movies, &stubSports{})

	qc := domain.QueryContext{Query: "who won best picture in 2020", QueryTime: refTime, Domain: domain.DomainMovie}
	out := f.FormatMovie(context.Background(), qc, domain.MatchedEntities{})

	assert.Contains(t, out, "#### Some information of Oscar Awards in 2020:\n")
	assert.Contains(t, out, "- BEST PICTURE\n")
	assert.Contains(t, out, "    - Winner: Bong Joon Ho for Parasite\n")
	assert.NotContains(t, out, "Someone Else")
}

func TestFormatSports_NBAAggregateCapsItemization(t *testing.T) {
	games := make([]domain.NBAGame, 0, 6)
	for i := 0; i < 6; i++ {
		games = append(games, domain.NBAGame{
			GameDate:     "2024-01-0" + string(rune('1'+i)),
			TeamNameHome: "Boston Celtics",
			TeamNameAway: "New York Knicks",
			PtsHome:      110,
			PtsAway:      100,
			SeasonType:   "Regular Season",
		})
	}
	sports := &stubSports{nba: map[string][]domain.NBAGame{"2024-01": games}}
	f := newFormatter(t, &stubFinance{}, &stubMusic{}, &stubMovies{}, sports)

	qc := domain.QueryContext{Query: "how did the celtics do in 2024-01", QueryTime: refTime, Domain: domain.DomainSports}
	out := f.FormatSports(context.Background(), qc, domain.MatchedEntities{NBATeams: []string{"Boston Celtics"}})

	assert.Contains(t, out, "#### Some information of Boston Celtics during 2024-01\n")
	assert.Equal(t, 5, strings.Count(out, "- New York Knicks vs Boston Celtics on"))
	assert.Contains(t, out, "- ...\n")
	assert.Contains(t, out, "- Total Wins: 6\n")
	assert.Contains(t, out, "- Total Home Wins: 6\n")
	assert.Contains(t, out, "- Total Points Scored: 660")
	assert.Contains(t, out, "team away vs team home")
}

func TestFormatSports_SoccerNoGameThisWeek(t *testing.T) {
	sports := &stubSports{}
	f := newFormatter(t, &stubFinance{}, &stubMusic{}, &stubMovies{}, sports)

	qc := domain.QueryContext{Query: "how did liverpool do this week", QueryTime: refTime, Domain: domain.DomainSports}
	out := f.FormatSports(context.Background(), qc, domain.MatchedEntities{SoccerTeams: []string{"Liverpool"}})

	assert.Contains(t, out, "- Liverpool have no game last week\n")
	assert.Contains(t, out, "- Liverpool have no game this week\n")
	assert.Contains(t, out, "please respond with `invlaid question`")
}

func TestFormatSports_SoccerGameOnDate(t *testing.T) {
	timeStr := "15:00"
	result := "W"
	gf, ga := "2", "1"
	sports := &stubSports{
		soccer: map[string][]domain.SoccerGame{
			"2024-02-10": {
				{
					Key:      "2023-2024 ENG-Premier League (Matchweek 24)",
					Date:     "2024-02-10",
					Time:     &timeStr,
					Venue:    "home",
					Opponent: "Burnley",
					Result:   &result,
					GoalsFor: &gf, GoalsAgnst: &ga,
				},
			},
		},
	}
	f := newFormatter(t, &stubFinance{}, &stubMusic{}, &stubMovies{}, sports)

	qc := domain.QueryContext{Query: "liverpool result on 2024-02-10", QueryTime: refTime, Domain: domain.DomainSports}
	out := f.FormatSports(context.Background(), qc, domain.MatchedEntities{SoccerTeams: []string{"Liverpool"}})

	assert.Contains(t, out, "#### Some information of Liverpool on 2024-02-10\n")
	assert.Contains(t, out, "- Liverpool vs Burnley on 2024-02-10\n")
	assert.Contains(t, out, "    - Result: W\n")
	assert.Contains(t, out, "    - Goal For: 2\n")
}

func TestFormatMusic_GrammySingleYear(t *testing.T) {
	music := &stubMusic{
		bestArtists: map[string][]string{"2010": {"Zac Brown Band"}},
		bestSongs:   map[string][]string{"2010": {"Single Ladies (Put a Ring on It)"}},
		bestAlbums:  map[string][]string{"2010": {"Fearless"}},
	}
	f := newFormatter(t, &stubFinance{}, music, &stubMovies{}, &stubSports{})

	qc := domain.QueryContext{Query: "who won best new artist at the 2010 grammys", QueryTime: refTime, Domain: domain.DomainMusic}
	out := f.FormatMusic(context.Background(), qc, domain.MatchedEntities{})

	assert.Contains(t, out, "#### Some information of Grammy Awards in 2010:\n")
	assert.Contains(t, out, "- Best New Artist: Zac Brown Band\n")
	assert.Contains(t, out, "- Best Song: Single Ladies (Put a Ring on It)\n")
	assert.Contains(t, out, "- Best Album: Fearless\n")
}

func TestFormatMusic_GrammyYearOutOfRange(t *testing.T) {
	f := newFormatter(t, &stubFinance{}, &stubMusic{}, &stubMovies{}, &stubSports{})

	qc := domain.QueryContext{Query: "who won best new artist at the 2023 grammys", QueryTime: refTime, Domain: domain.DomainMusic}
	out := f.FormatMusic(context.Background(), qc, domain.MatchedEntities{})

	assert.Empty(t, out)
}

func TestFormatMusic_ArtistWorks(t *testing.T) {
	count := 3
	music := &stubMusic{
		works: []string{"Song A", "Song B", "Song C"},
		releaseDates: map[string]string{
			"Song A": "2001-05-01",
			"Song B": "2010-06-15",
			"Song C": "2020-01-20",
		},
		artistCount: &count,
		awardYears:  []int{2011, 2005},
	}
	f := newFormatter(t, &stubFinance{}, music, &stubMovies{}, &stubSports{})

	qc := domain.QueryContext{Query: "what has the artist released", QueryTime: refTime, Domain: domain.DomainMusic}
	out := f.FormatMusic(context.Background(), qc, domain.MatchedEntities{Artists: []string{"Some Artist"}})

	assert.Contains(t, out, "- First Work:\n    - 2001-05-01: Song A\n")
	assert.Contains(t, out, "- Some Recent Works(Sorted by release date):\n")
	assert.Contains(t, out, "- Total Works: 3\n")
	assert.Contains(t, out, "- Grammy Award Count: 3\n")
	assert.Contains(t, out, "- Grammy Award Winning Years: 2005, 2011\n")
	assert.Contains(t, out, "- Note: Nominations not take into account.\n")
}
