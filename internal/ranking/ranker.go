// Package ranking orders scored games by engagement.
package ranking

import (
	"sort"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/scoring"
)

// Rank scores every game and returns them sorted by score, highest first.
// The sort is stable so equally scored games keep their provider order.
// Games are independent, so callers may pre-partition and rank in parallel.
func Rank(scorer *scoring.Scorer, games []domain.Game, favoriteTeam string, topTierTeams map[string]struct{}) []domain.RankedGame {
	ranked := make([]domain.RankedGame, 0, len(games))
	for _, game := range games {
		result := scorer.ScoreGame(game, favoriteTeam, topTierTeams)
		ranked = append(ranked, domain.RankedGame{
			Game:      game,
			Score:     result.Score,
			Breakdown: result.Breakdown,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Best returns the highest-scoring game, or false when there are none.
func Best(scorer *scoring.Scorer, games []domain.Game, favoriteTeam string, topTierTeams map[string]struct{}) (domain.RankedGame, bool) {
	ranked := Rank(scorer, games, favoriteTeam, topTierTeams)
	if len(ranked) == 0 {
		return domain.RankedGame{}, false
	}
	return ranked[0], true
}
