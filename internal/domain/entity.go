package domain

// Mention categories per domain. These sets are fixed; the NER parser only
// accepts labels from the active domain's set.
const (
	CategoryCompany      = "company"
	CategorySymbol       = "symbol"
	CategoryPerson       = "person"
	CategorySong         = "song"
	CategoryBand         = "band"
	CategoryMovie        = "movie"
	CategoryNBATeam      = "nba team"
	CategorySoccerTeam   = "soccer team"
	CategoryNBAPlayer    = "nba player"
	CategorySoccerPlayer = "soccer player"
	CategoryLocation     = "location"
	CategoryOrganization = "orgnization" // spelling matches the NER label vocabulary
	CategoryProduct      = "product"
	CategoryEvent        = "event"
)

// MentionCategories returns the category set the NER step may emit for a domain.
func MentionCategories(d QueryDomain) []string {
	switch d {
	case DomainFinance:
		return []string{CategoryCompany, CategorySymbol}
	case DomainMusic:
		return []string{CategoryPerson, CategorySong, CategoryBand}
	case DomainMovie:
		return []string{CategoryPerson, CategoryMovie}
	case DomainSports:
		return []string{CategoryNBATeam, CategorySoccerTeam, CategoryNBAPlayer, CategorySoccerPlayer}
	default:
		return []string{CategoryPerson, CategoryLocation, CategoryOrganization, CategoryProduct, CategoryEvent}
	}
}

// Mentions groups raw entity surface forms by category. Every category known
// for the domain is present as a key from construction, so callers can range
// over a category without checking existence.
type Mentions struct {
	categories []string
	byCategory map[string][]string
	seen       map[string]map[string]bool
}

// NewMentions creates an empty mention set with all given categories present.
func NewMentions(categories []string) *Mentions {
	m := &Mentions{
		categories: categories,
		byCategory: make(map[string][]string, len(categories)),
		seen:       make(map[string]map[string]bool, len(categories)),
	}
	for _, c := range categories {
		m.byCategory[c] = []string{}
		m.seen[c] = make(map[string]bool)
	}
	return m
}

// Add records a surface form under a category. Unknown categories and exact
// duplicates are ignored.
func (m *Mentions) Add(category, surface string) {
	seen, ok := m.seen[category]
	if !ok || seen[surface] {
		return
	}
	seen[surface] = true
	m.byCategory[category] = append(m.byCategory[category], surface)
}

// Get returns the surface forms recorded for a category, in insertion order.
func (m *Mentions) Get(category string) []string {
	return m.byCategory[category]
}

// Categories returns the fixed category list in construction order.
func (m *Mentions) Categories() []string {
	return m.categories
}

// Empty reports whether no mention was recorded in any category.
func (m *Mentions) Empty() bool {
	for _, c := range m.categories {
		if len(m.byCategory[c]) > 0 {
			return false
		}
	}
	return true
}

// MatchedEntities holds the canonical identifiers the matcher resolved from a
// mention set. Only the fields of the query's domain are populated; duplicates
// are allowed and deduplicated later by the formatters where required.
type MatchedEntities struct {
	// Finance
	Symbols []string
	// Music
	Artists []string
	Songs   []string
	Bands   []string
	// Movie
	MovieIDs  []int
	PersonIDs []int
	// Sports
	NBATeams      []string
	SoccerTeams   []string
	NBAPlayers    []string
	SoccerPlayers []string
}
