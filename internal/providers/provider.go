package providers

import (
	"context"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
)

// GameProvider fetches normalized, completed games for a single day.
// The date must be a YYYY-MM-DD string.
type GameProvider interface {
	FetchGames(ctx context.Context, date string) ([]domain.Game, error)
}

// StandingsProvider yields the abbreviations of the current top-N teams.
type StandingsProvider interface {
	FetchTopTeams(ctx context.Context, season, n int) ([]string, error)
}

// LeadersProvider yields the names of the current top scorers.
type LeadersProvider interface {
	FetchStarPlayers(ctx context.Context, season, limit int) ([]string, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	GameProvider
	StandingsProvider
	LeadersProvider
}

// GameProviderFunc adapts a function to the GameProvider interface.
type GameProviderFunc func(ctx context.Context, date string) ([]domain.Game, error)

func (f GameProviderFunc) FetchGames(ctx context.Context, date string) ([]domain.Game, error) {
	return f(ctx, date)
}
