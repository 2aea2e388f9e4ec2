// Package fixture serves a static slate of completed games for local
// development and tests, so the recommender can run without an API key.
package fixture

import (
	"context"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
)

// Provider returns deterministic example games for any requested date.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// FetchGames returns the example slate stamped with the requested date.
func (p *Provider) FetchGames(ctx context.Context, date string) ([]domain.Game, error) {
	_ = ctx

	games := []domain.Game{
		{
			ID:               "fixture-1",
			Date:             date,
			Status:           domain.StatusFinal,
			HomeTeam:         domain.TeamSide{Name: "Boston Celtics", Abbreviation: "BOS", Score: 118},
			AwayTeam:         domain.TeamSide{Name: "Los Angeles Lakers", Abbreviation: "LAL", Score: 115},
			TotalPoints:      233,
			FinalMargin:      domain.MarginOf(3),
			StarPlayersCount: 5,
		},
		{
			ID:               "fixture-2",
			Date:             date,
			Status:           domain.StatusFinal,
			HomeTeam:         domain.TeamSide{Name: "Denver Nuggets", Abbreviation: "DEN", Score: 112},
			AwayTeam:         domain.TeamSide{Name: "Phoenix Suns", Abbreviation: "PHX", Score: 104},
			TotalPoints:      216,
			FinalMargin:      domain.MarginOf(8),
			StarPlayersCount: 3,
		},
		{
			ID:          "fixture-3",
			Date:        date,
			Status:      domain.StatusFinal,
			HomeTeam:    domain.TeamSide{Name: "Sacramento Kings", Abbreviation: "SAC", Score: 95},
			AwayTeam:    domain.TeamSide{Name: "Portland Trail Blazers", Abbreviation: "POR", Score: 75},
			TotalPoints: 170,
			FinalMargin: domain.MarginOf(20),
		},
	}
	return games, nil
}

// FetchTopTeams returns a fixed standings snapshot.
func (p *Provider) FetchTopTeams(ctx context.Context, season, n int) ([]string, error) {
	_ = ctx
	_ = season
	teams := []string{"BOS", "DEN", "MIL", "PHX", "LAL"}
	if n > 0 && n < len(teams) {
		teams = teams[:n]
	}
	return teams, nil
}

// FetchStandings returns fixed win/loss records for the fixture teams.
func (p *Provider) FetchStandings(ctx context.Context, season int) (map[string][2]int, error) {
	_ = ctx
	_ = season
	return map[string][2]int{
		"BOS": {58, 24},
		"DEN": {53, 29},
		"MIL": {49, 33},
		"PHX": {47, 35},
		"LAL": {45, 37},
		"SAC": {40, 42},
		"POR": {20, 62},
	}, nil
}

// FetchStarPlayers returns a fixed leaders snapshot.
func (p *Provider) FetchStarPlayers(ctx context.Context, season, limit int) ([]string, error) {
	_ = ctx
	_ = season
	players := []string{
		"Jayson Tatum", "Nikola Jokic", "Giannis Antetokounmpo",
		"Devin Booker", "LeBron James", "Luka Doncic",
	}
	if limit > 0 && limit < len(players) {
		players = players[:limit]
	}
	return players, nil
}
