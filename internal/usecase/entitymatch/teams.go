package entitymatch

import "strings"

var nbaTeams = []string{
	"Atlanta Hawks", "Boston Celtics", "Brooklyn Nets", "Charlotte Hornets",
	"Chicago Bulls", "Cleveland Cavaliers", "Dallas Mavericks", "Denver Nuggets",
	"Detroit Pistons", "Golden State Warriors", "Houston Rockets", "Indiana Pacers",
	"Los Angeles Clippers", "Los Angeles Lakers", "Memphis Grizzlies", "Miami Heat",
	"Milwaukee Bucks", "Minnesota Timberwolves", "New Orleans Pelicans", "New York Knicks",
	"Oklahoma City Thunder", "Orlando Magic", "Philadelphia 76ers", "Phoenix Suns",
	"Portland Trail Blazers", "Sacramento Kings", "San Antonio Spurs", "Toronto Raptors",
	"Utah Jazz", "Washington Wizards",
}

// Alternate names per NBA team. Three-letter entries are ticker-style codes
// and only match as whole tokens of the query.
var nbaTeamAlternates = map[string][]string{
	"Atlanta Hawks":          {"Hawks", "Atlanta", "ATL"},
	"Boston Celtics":         {"Celtics", "Boston", "BOS"},
	"Brooklyn Nets":          {"Nets", "Brooklyn", "BKN"},
	"Charlotte Hornets":      {"Hornets", "Charlotte", "CHA"},
	"Chicago Bulls":          {"Bulls", "Chicago", "CHI"},
	"Cleveland Cavaliers":    {"Cavaliers", "Cleveland", "CLE"},
	"Dallas Mavericks":       {"Mavericks", "Dallas", "DAL"},
	"Denver Nuggets":         {"Nuggets", "Denver", "DEN"},
	"Detroit Pistons":        {"Pistons", "Detroit", "DET"},
	"Golden State Warriors":  {"Warriors", "Golden State", "GSW"},
	"Houston Rockets":        {"Rockets", "Houston", "HOU"},
	"Indiana Pacers":         {"Pacers", "Indiana", "IND"},
	"Los Angeles Clippers":   {"Clippers", "LA Clippers", "LAC"},
	"Los Angeles Lakers":     {"Lakers", "LA Lakers", "LAL"},
	"Memphis Grizzlies":      {"Grizzlies", "Memphis", "MEM"},
	"Miami Heat":             {"Heat", "Miami", "MIA"},
	"Milwaukee Bucks":        {"Bucks", "Milwaukee", "MIL"},
	"Minnesota Timberwolves": {"Timberwolves", "Minnesota", "MIN"},
	"New Orleans Pelicans":   {"Pelicans", "New Orleans", "NOP"},
	"New York Knicks":        {"Knicks", "New York", "NYK"},
	"Oklahoma City Thunder":  {"Thunder", "Oklahoma City", "OKC"},
	"Orlando Magic":          {"Magic", "Orlando", "ORL"},
	"Philadelphia 76ers":     {"76ers", "Philadelphia", "PHI"},
	"Phoenix Suns":           {"Suns", "Phoenix", "PHX"},
	"Portland Trail Blazers": {"Trail Blazers", "Portland", "POR"},
	"Sacramento Kings":       {"Kings", "Sacramento", "SAC"},
	"San Antonio Spurs":      {"Spurs", "San Antonio", "SAS"},
	"Toronto Raptors":        {"Raptors", "Toronto", "TOR"},
	"Utah Jazz":              {"Jazz", "Utah", "UTA"},
	"Washington Wizards":     {"Wizards", "Washington", "WAS"},
}

var soccerLeagues = []string{"ENG-Premier League", "ESP-La Liga", "FRA-Ligue 1"}

var soccerTeams = []string{
	"Nott'ham Forest", "Alavés", "Almería", "Arsenal", "Aston Villa",
	"Athletic Club", "Atlético Madrid", "Barcelona", "Betis", "Bournemouth",
	"Brentford", "Brest", "Brighton", "Burnley", "Celta Vigo", "Chelsea",
	"Clermont Foot", "Crystal Palace", "Cádiz", "Everton", "Fulham", "Getafe",
	"Girona", "Granada", "Las Palmas", "Le Havre", "Lens", "Lille", "Liverpool",
	"Lorient", "Luton Town", "Lyon", "Mallorca", "Manchester City",
	"Manchester Utd", "Marseille", "Metz", "Monaco", "Montpellier", "Nantes",
	"Newcastle Utd", "Nice", "Osasuna", "Paris S-G", "Rayo Vallecano",
	"Real Madrid", "Real Sociedad", "Reims", "Rennes", "Sevilla",
	"Sheffield Utd", "Strasbourg", "Tottenham", "Toulouse", "Valencia",
	"Villarreal", "West Ham", "Wolves",
}

var soccerTeamAlternates = map[string][]string{
	"Nott'ham Forest": {"Nottham Forest"},
}

var nbaTeamSet = buildSet(nbaTeams)

var soccerTeamSet = buildSet(soccerTeams)

func buildSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// IsNBATeam reports whether name is a canonical NBA team name.
func IsNBATeam(name string) bool {
	_, ok := nbaTeamSet[name]
	return ok
}

// IsSoccerTeam reports whether name is a canonical soccer team name.
func IsSoccerTeam(name string) bool {
	_, ok := soccerTeamSet[name]
	return ok
}

// NBATeamsInQuery scans the query text for NBA team mentions and returns the
// canonical team names. Full names and long alternates match as substrings;
// three-letter codes must stand alone as a token.
func NBATeamsInQuery(query string) []string {
	lowered := strings.ToLower(query)
	tokens := strings.Fields(query)
	var teams []string
	for _, team := range nbaTeams {
		if strings.Contains(lowered, strings.ToLower(team)) {
			teams = append(teams, team)
			continue
		}
		for _, alt := range nbaTeamAlternates[team] {
			if len(alt) > 3 {
				if strings.Contains(lowered, strings.ToLower(alt)) {
					teams = append(teams, team)
				}
			} else {
				for _, tok := range tokens {
					if strings.EqualFold(alt, tok) {
						teams = append(teams, team)
					}
				}
			}
		}
	}
	return teams
}

// SoccerTeamsInQuery scans the query text for soccer team mentions and
// returns the canonical team names.
func SoccerTeamsInQuery(query string) []string {
	lowered := strings.ToLower(query)
	var teams []string
	for _, team := range soccerTeams {
		if strings.Contains(lowered, strings.ToLower(team)) {
			teams = append(teams, team)
			continue
		}
		for _, alt := range soccerTeamAlternates[team] {
			if strings.Contains(lowered, strings.ToLower(alt)) {
				teams = append(teams, team)
			}
		}
	}
	return teams
}

// SoccerLeaguesIn returns the league identifiers mentioned in text. Game row
// keys embed the league identifier, so this works on both queries and keys.
func SoccerLeaguesIn(text string) []string {
	lowered := strings.ToLower(text)
	var leagues []string
	for _, league := range soccerLeagues {
		if strings.Contains(lowered, strings.ToLower(league)) {
			leagues = append(leagues, league)
		}
	}
	return leagues
}
