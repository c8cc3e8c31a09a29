package facts

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase/dates"
	"rag-pipeline/internal/usecase/entitymatch"
)

const sportsNotes = `#### Note:
- For NBA, Matchup between two teams is displayed as 'team away vs team home'.
- For NBA, When ask about Final Score, just consider the points scored by the team.
- For Soccer, When ask about total goals of a team, just consider the goals scored by the team(Goal For).
- For Soccer, When ask about win-loss results, possible results are 'Win', 'Loss', 'Draw'.`

// FormatSports renders game reports for every NBA and soccer team the query
// mentions, scoped to the date or window the query describes.
func (f *Formatter) FormatSports(ctx context.Context, qc domain.QueryContext, matched domain.MatchedEntities) string {
	query := strings.ToLower(qc.Query)
	nbaTeams := matched.NBATeams
	if len(nbaTeams) == 0 {
		nbaTeams = entitymatch.NBATeamsInQuery(query)
	}
	soccerTeams := matched.SoccerTeams
	if len(soccerTeams) == 0 {
		soccerTeams = entitymatch.SoccerTeamsInQuery(query)
	}
	queryDate := dates.QueryDate(qc.QueryTime)

	var info strings.Builder

	year, month, day := dates.ExtractYMD(query)
	date := queryDate
	switch {
	case year == "":
		if resolved, desc, ok := dates.Resolve(qc.QueryTime, query); ok {
			date = resolved
			if desc != "today" && desc != "yesterday" {
				fmt.Fprintf(&info, "%s of %s is %s\n", desc, queryDate, date)
			}
		}
	case month != "" && day != "":
		date = year + "-" + month + "-" + day
	case month != "":
		date = year + "-" + month
	default:
		date = year
	}

	for _, team := range nbaTeams {
		info.WriteString(f.nbaTeamReport(ctx, team, date))
	}

	leagues := entitymatch.SoccerLeaguesIn(query)
	league := ""
	if len(leagues) == 1 {
		league = leagues[0]
	}
	for _, team := range soccerTeams {
		f.soccerTeamReport(ctx, query, qc.QueryTime, queryDate, date, team, league, &info)
	}

	if info.Len() > 0 {
		info.WriteString(sportsNotes)
	}
	return info.String()
}

// nbaTeamReport renders either a single game's box line or, for windows with
// several games, an itemized list capped at five plus aggregate totals.
func (f *Formatter) nbaTeamReport(ctx context.Context, team, date string) string {
	games, err := f.sports.NBAGamesOnDate(ctx, date, team)
	if err != nil {
		f.warn("nba_games_lookup_failed", err, "team", team, "date", date)
		return ""
	}
	if games == nil {
		return ""
	}
	sort.Slice(games, func(i, j int) bool { return games[i].GameDate > games[j].GameDate })

	var b strings.Builder
	if len(games) == 1 {
		game := games[0]
		fmt.Fprintf(&b, "#### Some information of %s on %s\n", team, game.GameDate)
		fmt.Fprintf(&b, "- %s vs %s\n", game.TeamNameAway, game.TeamNameHome)
		fmt.Fprintf(&b, "    - Final Score: %d : %d\n", int(game.PtsAway), int(game.PtsHome))
		fmt.Fprintf(&b, "    - Winner: %s\n", nbaWinner(game))
		fmt.Fprintf(&b, "    - Season Type: %s\n", game.SeasonType)
	}
	if len(games) >= 2 {
		fmt.Fprintf(&b, "#### Some information of %s during %s\n", team, date)
		var wins, losses, homes, aways, homeWins, awayWins int
		var totalPoints float64
		for i, game := range games {
			winner := nbaWinner(game)
			if i < 5 {
				fmt.Fprintf(&b, "- %s vs %s on %s\n", game.TeamNameAway, game.TeamNameHome, game.GameDate)
				fmt.Fprintf(&b, "    - Final Score: %d : %d\n", int(game.PtsAway), int(game.PtsHome))
				fmt.Fprintf(&b, "    - Winner: %s\n", winner)
				fmt.Fprintf(&b, "    - Season Type: %s\n", game.SeasonType)
			}
			if i == 5 {
				b.WriteString("- ...\n")
			}
			if winner == team {
				wins++
			} else {
				losses++
			}
			if game.TeamNameHome == team {
				homes++
				totalPoints += game.PtsHome
				if winner == team {
					homeWins++
				}
			} else {
				aways++
				totalPoints += game.PtsAway
				if winner == team {
					awayWins++
				}
			}
		}
		fmt.Fprintf(&b, "- Total Wins: %d\n", wins)
		fmt.Fprintf(&b, "- Total Losses: %d\n", losses)
		fmt.Fprintf(&b, "- Total Home Games: %d\n", homes)
		fmt.Fprintf(&b, "- Total Away Games: %d\n", aways)
		fmt.Fprintf(&b, "- Total Home Wins: %d\n", homeWins)
		fmt.Fprintf(&b, "- Total Away Wins: %d\n", awayWins)
		fmt.Fprintf(&b, "- Total Home losses: %d\n", homes-homeWins)
		fmt.Fprintf(&b, "- Total Away losses: %d\n", aways-awayWins)
		fmt.Fprintf(&b, "- Total Games: %d\n", wins+losses)
		fmt.Fprintf(&b, "- Total Points Scored: %d", int(totalPoints))
	}
	b.WriteString("\n")
	return b.String()
}

func nbaWinner(game domain.NBAGame) string {
	if game.PtsAway > game.PtsHome {
		return game.TeamNameAway
	}
	return game.TeamNameHome
}

// soccerGameLines renders the rows whose date matches gameDate; with an empty
// gameDate the first row's date is used, so only that day's games print.
func soccerGameLines(query string, games []domain.SoccerGame, team, gameDate string) string {
	var b strings.Builder
	for _, game := range games {
		if gameDate == "" {
			gameDate = game.Date
		}
		if game.Date != gameDate {
			continue
		}
		if game.Venue == "home" {
			fmt.Fprintf(&b, "- %s vs %s on %s\n", team, game.Opponent, gameDate)
		} else {
			fmt.Fprintf(&b, "- %s vs %s on %s\n", game.Opponent, team, gameDate)
		}
		if game.Time != nil {
			fmt.Fprintf(&b, "    - Time: %s\n", *game.Time)
		}
		if game.Day != nil {
			fmt.Fprintf(&b, "    - Day: %s\n", *game.Day)
		}
		if game.Round != nil {
			fmt.Fprintf(&b, "    - Round: %s\n", *game.Round)
		}
		fmt.Fprintf(&b, "    - Venue: %s\n", game.Venue)
		if game.Result != nil {
			fmt.Fprintf(&b, "    - Result: %s\n", *game.Result)
		}
		if game.GoalsFor != nil && game.GoalsAgnst != nil {
			fmt.Fprintf(&b, "    - Goal For: %s\n", *game.GoalsFor)
			fmt.Fprintf(&b, "    - Goal Against: %s\n", *game.GoalsAgnst)
		}
		if strings.Contains(query, "attendance") && game.Attendance != nil {
			fmt.Fprintf(&b, "    - Attendance: %s\n", *game.Attendance)
		}
		if strings.Contains(query, "referee") && game.Referee != nil {
			fmt.Fprintf(&b, "    - Referee: %s\n", *game.Referee)
		}
		if strings.Contains(query, "captain") && game.Captain != nil {
			fmt.Fprintf(&b, "    - Captain: %s\n", *game.Captain)
		}
		if strings.Contains(query, "formation") && game.Formation != nil {
			fmt.Fprintf(&b, "    - Formation: %s\n", *game.Formation)
		}
	}
	return b.String()
}

func (f *Formatter) soccerGamesOn(ctx context.Context, date, team string) []domain.SoccerGame {
	games, err := f.sports.SoccerGamesOnDate(ctx, date, team)
	if err != nil {
		f.warn("soccer_games_lookup_failed", err, "team", team, "date", date)
		return nil
	}
	return games
}

func (f *Formatter) soccerTeamReport(ctx context.Context, query, queryTime, queryDate, date, team, league string, info *strings.Builder) {
	switch {
	case strings.Contains(query, "week"):
		f.soccerWindowReport(ctx, query, team,
			dates.LastWeekDates(queryTime), dates.ThisWeekDates(queryTime),
			"last week", "this week", info)
		return
	case strings.Contains(query, "month"):
		f.soccerWindowReport(ctx, query, team,
			dates.LastMonthDates(queryTime), dates.ThisMonthDates(queryTime),
			"last month", "this month", info)
		return
	case date == queryDate:
		if f.soccerRecentOrUpcoming(ctx, query, queryTime, queryDate, team, league, info) {
			return
		}
	}

	games := f.soccerGamesOn(ctx, date, team)
	if games == nil {
		f.soccerNoGame(query, date, team, league, true, info)
		return
	}

	var gameDates []string
	filtered := filterByLeague(games, league)
	for _, game := range filtered {
		gameDates = append(gameDates, game.Date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(gameDates)))

	switch {
	case len(gameDates) == 0:
		f.soccerNoGame(query, date, team, league, false, info)
	case len(date) == 10:
		if league != "" {
			fmt.Fprintf(info, "- Some information of %s on %s in %s\n", team, gameDates[0], league)
		} else {
			fmt.Fprintf(info, "#### Some information of %s on %s\n", team, gameDates[0])
		}
		info.WriteString(soccerGameLines(query, games, team, gameDates[0]))
		info.WriteString("\n")
	default:
		if league != "" {
			fmt.Fprintf(info, "#### Some information of %s during %s in %s\n", team, date, league)
		} else {
			fmt.Fprintf(info, "#### Some information of %s during %s\n", team, date)
		}
		for _, gameDate := range gameDates {
			info.WriteString(soccerGameLines(query, games, team, gameDate))
		}
		info.WriteString("\n")
	}
}

// soccerWindowReport prints the games of two adjacent windows (last/this week
// or month), with the no-game note when a window is empty.
func (f *Formatter) soccerWindowReport(ctx context.Context, query, team string, previousWindow, currentWindow []string, previousLabel, currentLabel string, info *strings.Builder) {
	collect := func(window []string) []domain.SoccerGame {
		var collected []domain.SoccerGame
		for _, d := range window {
			collected = append(collected, f.soccerGamesOn(ctx, d, team)...)
		}
		return collected
	}

	for _, part := range []struct {
		label string
		games []domain.SoccerGame
	}{
		{previousLabel, collect(previousWindow)},
		{currentLabel, collect(currentWindow)},
	} {
		if len(part.games) == 0 {
			fmt.Fprintf(info, "- %s have no game %s\n", team, part.label)
			fmt.Fprintf(info, "    - Note: If ask for status of %s's game, please respond with `invlaid question`.\n", part.label)
		} else {
			fmt.Fprintf(info, "#### Some information of %s %s\n", team, part.label)
			info.WriteString(soccerGameLines(query, part.games, team, ""))
		}
	}
	info.WriteString("\n")
}

// soccerRecentOrUpcoming handles queries with no explicit date: it pulls this
// year's and last year's schedule and reports the most recent past game or
// the next upcoming one. Returns false when the query asks for neither.
func (f *Formatter) soccerRecentOrUpcoming(ctx context.Context, query, queryTime, queryDate, team, league string, info *strings.Builder) bool {
	year := queryDate[:4]
	games := f.soccerGamesOn(ctx, year, team)
	games = append(games, f.soccerGamesOn(ctx, previousYear(year), team)...)
	if len(games) == 0 {
		return false
	}

	timeOfDay := ""
	if len(queryTime) >= 20 {
		timeOfDay = queryTime[12:20]
	}

	var pastDates, futureDates []string
	filtered := filterByLeague(games, league)
	for _, game := range filtered {
		switch {
		case game.Date < queryDate:
			pastDates = append(pastDates, game.Date)
		case game.Date > queryDate:
			futureDates = append(futureDates, game.Date)
		default:
			if game.Time != nil && *game.Time > timeOfDay {
				futureDates = append(futureDates, game.Date)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(pastDates)))
	sort.Strings(futureDates)

	if containsAny(query, "past", "previous", "last", "recent") && len(pastDates) > 0 {
		if league != "" {
			fmt.Fprintf(info, "#### Information of last game played by %s in %s\n", team, league)
		} else {
			fmt.Fprintf(info, "#### Information of last game played by %s\n", team)
		}
		info.WriteString(soccerGameLines(query, games, team, pastDates[0]))
		info.WriteString("\n")
		return true
	}
	if containsAny(query, "next", "coming", "future") && len(futureDates) > 0 {
		if league != "" {
			fmt.Fprintf(info, "#### Information of next game played by %s in %s\n", team, league)
		} else {
			fmt.Fprintf(info, "#### Information of next game played by %s\n", team)
		}
		info.WriteString(soccerGameLines(query, games, team, futureDates[0]))
		info.WriteString("\n")
		return true
	}
	return false
}

// soccerNoGame writes the appropriate "have no game" note. scheduleMissing
// distinguishes a missing schedule from one that exists but has no rows for
// the requested league; the two cases hint differently on month queries. The
// invalid-question hint is misspelled on purpose; the answer model reproduces
// it verbatim.
func (f *Formatter) soccerNoGame(query, date, team, league string, scheduleMissing bool, info *strings.Builder) {
	note := func(label string) {
		fmt.Fprintf(info, "    - Note: If ask for status of %s's game, please respond with `invlaid question`.\n", label)
	}
	inLeague := ""
	if league != "" {
		inLeague = " in " + league
	}
	if len(date) == 10 {
		switch {
		case strings.Contains(query, "today"):
			fmt.Fprintf(info, "- %s have no game today%s\n", team, inLeague)
			note("today")
		case strings.Contains(query, "yesterday"):
			fmt.Fprintf(info, "- %s have no game yesterday%s\n", team, inLeague)
			note("yesterday")
		default:
			fmt.Fprintf(info, "- %s have no game on %s%s\n", team, date, inLeague)
			note(date)
		}
		return
	}
	if league != "" {
		fmt.Fprintf(info, "- %s have no game during %s%s\n", team, date, inLeague)
		if !scheduleMissing {
			note(date)
		}
		return
	}
	fmt.Fprintf(info, "- %s have no game during %s\n", team, date)
	if scheduleMissing {
		note(date)
	}
}

func filterByLeague(games []domain.SoccerGame, league string) []domain.SoccerGame {
	if league == "" {
		return games
	}
	var filtered []domain.SoccerGame
	for _, game := range games {
		leagues := entitymatch.SoccerLeaguesIn(game.Key)
		if len(leagues) > 0 && leagues[0] == league {
			filtered = append(filtered, game)
		}
	}
	return filtered
}

func previousYear(year string) string {
	y, err := strconv.Atoi(year)
	if err != nil {
		return year
	}
	return strconv.Itoa(y - 1)
}
