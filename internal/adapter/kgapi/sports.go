package kgapi

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"rag-pipeline/internal/domain"
)

// sportsTable is the column-oriented payload the sports endpoints serve:
// column name to row key to cell value. Rows are reassembled client-side.
type sportsTable map[string]map[string]json.RawMessage

// NBAGamesOnDate returns NBA game rows for a date at day, month or year
// granularity. An empty team matches all teams.
func (c *Client) NBAGamesOnDate(ctx context.Context, date, team string) ([]domain.NBAGame, error) {
	table, err := c.sportsLookup(ctx, "/sports/nba/get_games_on_date", date, team)
	if err != nil || table == nil {
		return nil, err
	}

	var games []domain.NBAGame
	for _, key := range rowKeys(table, "game_date") {
		gameDate := cellString(table, "game_date", key)
		if len(gameDate) > 10 {
			gameDate = gameDate[:10]
		}
		games = append(games, domain.NBAGame{
			GameDate:     gameDate,
			TeamNameHome: cellString(table, "team_name_home", key),
			TeamNameAway: cellString(table, "team_name_away", key),
			PtsHome:      cellFloat(table, "pts_home", key),
			PtsAway:      cellFloat(table, "pts_away", key),
			SeasonType:   cellString(table, "season_type", key),
		})
	}
	return games, nil
}

// SoccerGamesOnDate returns soccer game rows for a date. The row key carries
// the league name and is preserved for league filtering downstream.
func (c *Client) SoccerGamesOnDate(ctx context.Context, date, team string) ([]domain.SoccerGame, error) {
	table, err := c.sportsLookup(ctx, "/sports/soccer/get_games_on_date", date, team)
	if err != nil || table == nil {
		return nil, err
	}

	var games []domain.SoccerGame
	for _, key := range rowKeys(table, "date") {
		gameDate := cellString(table, "date", key)
		if len(gameDate) > 10 {
			gameDate = gameDate[:10]
		}
		games = append(games, domain.SoccerGame{
			Key:        key,
			Date:       gameDate,
			Time:       cellStringPtr(table, "time", key),
			Day:        cellStringPtr(table, "day", key),
			Round:      cellStringPtr(table, "round", key),
			Venue:      strings.ToLower(cellString(table, "venue", key)),
			Opponent:   cellString(table, "opponent", key),
			Result:     cellStringPtr(table, "result", key),
			GoalsFor:   cellStringPtr(table, "GF", key),
			GoalsAgnst: cellStringPtr(table, "GA", key),
			Attendance: cellStringPtr(table, "attendance", key),
			Referee:    cellStringPtr(table, "referee", key),
			Captain:    cellStringPtr(table, "captain", key),
			Formation:  cellStringPtr(table, "formation", key),
		})
	}
	return games, nil
}

func (c *Client) sportsLookup(ctx context.Context, path, date, team string) (sportsTable, error) {
	payload := map[string]any{"date": date}
	if team == "" {
		payload["team_name"] = nil
	} else {
		payload["team_name"] = team
	}

	raw, err := c.call(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	var table sportsTable
	ok, err := decodeResult(raw, &table)
	if err != nil || !ok {
		return nil, err
	}
	return table, nil
}

// rowKeys returns the anchor column's row keys in stable order. Purely
// numeric keys sort numerically, composite keys lexicographically.
func rowKeys(table sportsTable, anchor string) []string {
	column := table[anchor]
	keys := make([]string, 0, len(column))
	for key := range column {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

func cellString(table sportsTable, column, key string) string {
	raw, ok := table[column][key]
	if !ok || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func cellStringPtr(table sportsTable, column, key string) *string {
	raw, ok := table[column][key]
	if !ok || string(raw) == "null" {
		return nil
	}
	s := cellString(table, column, key)
	return &s
}

func cellFloat(table sportsTable, column, key string) float64 {
	raw, ok := table[column][key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	return 0
}

var _ domain.SportsSource = (*Client)(nil)
