package domain

import "context"

// DayPrice is one trading day (or one intraday minute) of OHLCV data.
type DayPrice struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// FinanceSource exposes the read-only finance reference data. Every lookup may
// legitimately return a zero value (nil map, nil pointer) for an unknown key;
// that is "no data", not an error. Errors are reserved for transport failures.
type FinanceSource interface {
	// CompanyNames returns fuzzy-matched company display names for a free-text query.
	CompanyNames(ctx context.Context, query string) ([]string, error)
	// PriceHistory returns daily OHLCV keyed by "YYYY-MM-DD 00:00:00 EST".
	PriceHistory(ctx context.Context, symbol string) (map[string]DayPrice, error)
	// DetailedPriceHistory returns 1-minute OHLCV keyed by "YYYY-MM-DD HH:MM:SS EST".
	DetailedPriceHistory(ctx context.Context, symbol string) (map[string]DayPrice, error)
	// DividendHistory returns per-distribution amounts keyed by "YYYY-MM-DD 00:00:00 EST".
	DividendHistory(ctx context.Context, symbol string) (map[string]float64, error)
	MarketCapitalization(ctx context.Context, symbol string) (*float64, error)
	// EPS and PERatio return nil when the value is missing or not numeric.
	EPS(ctx context.Context, symbol string) (*float64, error)
	PERatio(ctx context.Context, symbol string) (*float64, error)
	// Info returns the raw metadata record for a symbol.
	Info(ctx context.Context, symbol string) (map[string]any, error)
}

// Lifespan is an artist's begin/end dates. End is nil while the artist is active.
type Lifespan struct {
	Begin *string
	End   *string
}

// MusicSource exposes the music reference data (artists, songs, bands, Grammys).
type MusicSource interface {
	// SearchArtists and SearchSongs return top fuzzy matches from the reference index.
	SearchArtists(ctx context.Context, name string) ([]string, error)
	SearchSongs(ctx context.Context, name string) ([]string, error)
	ArtistBirthPlace(ctx context.Context, artist string) (string, error)
	ArtistBirthDate(ctx context.Context, artist string) (string, error)
	ArtistLifespan(ctx context.Context, artist string) (Lifespan, error)
	ArtistWorks(ctx context.Context, artist string) ([]string, error)
	BandMembers(ctx context.Context, band string) ([]string, error)
	SongAuthor(ctx context.Context, song string) (string, error)
	SongReleaseDate(ctx context.Context, song string) (string, error)
	SongReleaseCountry(ctx context.Context, song string) (string, error)
	GrammyCountByArtist(ctx context.Context, artist string) (*int, error)
	GrammyCountBySong(ctx context.Context, song string) (*int, error)
	GrammyYearsByArtist(ctx context.Context, artist string) ([]int, error)
	GrammyBestNewArtists(ctx context.Context, year string) ([]string, error)
	GrammyBestSongs(ctx context.Context, year string) ([]string, error)
	GrammyBestAlbums(ctx context.Context, year string) ([]string, error)
}

// CrewMember is one crew credit on a movie record.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Genre is one genre tag on a movie record.
type Genre struct {
	Name string `json:"name"`
}

// OscarAward is one nomination or win row.
type OscarAward struct {
	Category     string `json:"category"`
	YearCeremony int    `json:"year_ceremony"`
	Ceremony     int    `json:"ceremony"`
	Winner       bool   `json:"winner"`
	Name         string `json:"name"`
	Film         string `json:"film"`
}

// MovieRecord is the reference record for one movie. Revenue, Budget and Length
// are pointers because absence and zero mean different things downstream: a
// present zero revenue is rendered as "Unknown".
type MovieRecord struct {
	ID               int          `json:"id"`
	Title            string       `json:"title"`
	OriginalTitle    string       `json:"original_title"`
	OriginalLanguage string       `json:"original_language"`
	ReleaseDate      string       `json:"release_date"`
	Genres           []Genre      `json:"genres"`
	Crew             []CrewMember `json:"crew"`
	Revenue          *int64       `json:"revenue"`
	Budget           *int64       `json:"budget"`
	Length           *int         `json:"length"`
	OscarAwards      []OscarAward `json:"oscar_awards"`
}

// PersonRecord is the reference record for one film-industry person.
type PersonRecord struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Birthday       string       `json:"birthday"`
	ActedMovies    []int        `json:"acted_movies"`
	DirectedMovies []int        `json:"directed_movies"`
	OscarAwards    []OscarAward `json:"oscar_awards"`
}

// MovieSource exposes the movie reference data.
type MovieSource interface {
	MoviesByName(ctx context.Context, name string) ([]MovieRecord, error)
	PersonsByName(ctx context.Context, name string) ([]PersonRecord, error)
	MovieByID(ctx context.Context, id int) (*MovieRecord, error)
	PersonByID(ctx context.Context, id int) (*PersonRecord, error)
	// OscarAwardsByYear returns all nomination rows of one ceremony year.
	OscarAwardsByYear(ctx context.Context, year string) ([]OscarAward, error)
}

// NBAGame is one NBA game row.
type NBAGame struct {
	GameDate     string // "YYYY-MM-DD", truncated from the source timestamp
	TeamNameHome string
	TeamNameAway string
	PtsHome      float64
	PtsAway      float64
	SeasonType   string
}

// SoccerGame is one soccer game row. Key is the raw row key from the source
// table; it embeds the league name and is used for league filtering.
type SoccerGame struct {
	Key        string
	Date       string // "YYYY-MM-DD"
	Time       *string
	Day        *string
	Round      *string
	Venue      string // "home" or "away"
	Opponent   string
	Result     *string
	GoalsFor   *string
	GoalsAgnst *string
	Attendance *string
	Referee    *string
	Captain    *string
	Formation  *string
}

// SportsSource exposes the sports reference data. The date argument accepts
// "YYYY-MM-DD", "YYYY-MM" or "YYYY" granularity; a nil slice means no games.
type SportsSource interface {
	NBAGamesOnDate(ctx context.Context, date, team string) ([]NBAGame, error)
	SoccerGamesOnDate(ctx context.Context, date, team string) ([]SoccerGame, error)
}
