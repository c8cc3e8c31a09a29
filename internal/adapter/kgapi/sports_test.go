package kgapi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_NBAGamesOnDate_PivotsColumns(t *testing.T) {
	client, _ := newTestClient(t, resultHandler(t, "/sports/nba/get_games_on_date", map[string]any{
		"game_date":      map[string]any{"0": "2024-01-25 00:00:00", "1": "2024-01-27 00:00:00"},
		"team_name_home": map[string]any{"0": "Boston Celtics", "1": "Los Angeles Clippers"},
		"team_name_away": map[string]any{"0": "Miami Heat", "1": "Boston Celtics"},
		"pts_home":       map[string]any{"0": 110.0, "1": 96.0},
		"pts_away":       map[string]any{"0": 102.0, "1": 115.0},
		"season_type":    map[string]any{"0": "Regular Season", "1": "Regular Season"},
	}))

	games, err := client.NBAGamesOnDate(context.Background(), "2024-01", "Boston Celtics")

	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "2024-01-25", games[0].GameDate)
	assert.Equal(t, "Boston Celtics", games[0].TeamNameHome)
	assert.Equal(t, 110.0, games[0].PtsHome)
	assert.Equal(t, "2024-01-27", games[1].GameDate)
}

func TestClient_NBAGamesOnDate_NumericRowOrder(t *testing.T) {
	client, _ := newTestClient(t, resultHandler(t, "/sports/nba/get_games_on_date", map[string]any{
		"game_date":      map[string]any{"2": "2024-01-03 00:00:00", "10": "2024-01-10 00:00:00"},
		"team_name_home": map[string]any{"2": "Utah Jazz", "10": "Miami Heat"},
		"team_name_away": map[string]any{"2": "Miami Heat", "10": "Utah Jazz"},
		"pts_home":       map[string]any{"2": 99.0, "10": 104.0},
		"pts_away":       map[string]any{"2": 101.0, "10": 97.0},
		"season_type":    map[string]any{"2": "Regular Season", "10": "Regular Season"},
	}))

	games, err := client.NBAGamesOnDate(context.Background(), "2024-01", "")

	require.NoError(t, err)
	require.Len(t, games, 2)
	// Key "2" sorts before "10" numerically, not lexicographically.
	assert.Equal(t, "2024-01-03", games[0].GameDate)
	assert.Equal(t, "2024-01-10", games[1].GameDate)
}

func TestClient_SoccerGamesOnDate(t *testing.T) {
	rowKey := "('ENG-Premier League', '2324', 'Arsenal', 23)"
	client, _ := newTestClient(t, resultHandler(t, "/sports/soccer/get_games_on_date", map[string]any{
		"date":       map[string]any{rowKey: "2024-02-24 00:00:00"},
		"time":       map[string]any{rowKey: "15:00"},
		"day":        map[string]any{rowKey: "Sat"},
		"round":      map[string]any{rowKey: "Matchweek 26"},
		"venue":      map[string]any{rowKey: "Home"},
		"opponent":   map[string]any{rowKey: "Newcastle Utd"},
		"result":     map[string]any{rowKey: "W"},
		"GF":         map[string]any{rowKey: "4"},
		"GA":         map[string]any{rowKey: "1"},
		"attendance": map[string]any{rowKey: nil},
		"referee":    map[string]any{rowKey: nil},
		"captain":    map[string]any{rowKey: nil},
		"formation":  map[string]any{rowKey: nil},
	}))

	games, err := client.SoccerGamesOnDate(context.Background(), "2024-02-24", "Arsenal")

	require.NoError(t, err)
	require.Len(t, games, 1)
	game := games[0]
	assert.Equal(t, rowKey, game.Key)
	assert.Equal(t, "2024-02-24", game.Date)
	assert.Equal(t, "home", game.Venue)
	assert.Equal(t, "Newcastle Utd", game.Opponent)
	require.NotNil(t, game.GoalsFor)
	assert.Equal(t, "4", *game.GoalsFor)
	assert.Nil(t, game.Attendance)
}

func TestClient_SoccerGamesOnDate_NoSchedule(t *testing.T) {
	client, _ := newTestClient(t, resultHandler(t, "/sports/soccer/get_games_on_date", nil))

	games, err := client.SoccerGamesOnDate(context.Background(), "2024-07-01", "Arsenal")

	require.NoError(t, err)
	assert.Nil(t, games)
}
