package domain

// QueryDomain is the topical domain assigned to a query by the domain router.
type QueryDomain string

const (
	DomainFinance QueryDomain = "finance"
	DomainMusic   QueryDomain = "music"
	DomainMovie   QueryDomain = "movie"
	DomainSports  QueryDomain = "sports"
	DomainOpen    QueryDomain = "open"
)

// Volatility describes how quickly the answer to a query changes over time.
type Volatility string

const (
	VolatilityStatic       Volatility = "static"
	VolatilitySlowChanging Volatility = "slow-changing"
	VolatilityFastChanging Volatility = "fast-changing"
	VolatilityRealTime     Volatility = "real-time"
)

// QueryTimeLayout is the reference-timestamp format supplied with every query.
// The trailing "PT" zone abbreviation is part of the wire format and must be
// stripped before parsing.
const QueryTimeLayout = "01/02/2006, 15:04:05"

// QueryContext is the immutable per-request input to the pipeline.
type QueryContext struct {
	InteractionID string
	Query         string
	QueryTime     string // "MM/DD/YYYY, HH:MM:SS PT"
	Domain        QueryDomain
	Volatility    Volatility
}

// SearchResult is one raw web search result supplied with a query.
type SearchResult struct {
	PageURL     string `json:"page_url"`
	PageName    string `json:"page_name"`
	PageSnippet string `json:"page_snippet"`
	PageResult  string `json:"page_result"`
}

// DedupeByURL drops results whose URL was already seen, keeping first occurrence order.
func DedupeByURL(results []SearchResult) []SearchResult {
	seen := make(map[string]bool, len(results))
	deduped := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if seen[r.PageURL] {
			continue
		}
		seen[r.PageURL] = true
		deduped = append(deduped, r)
	}
	return deduped
}
