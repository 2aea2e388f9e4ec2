// Package scoring implements the engagement formula that ranks completed
// games by how entertaining they likely were to watch.
package scoring

import (
	"math"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
)

// Scorer computes engagement scores. It is a pure transform: no I/O, no
// mutation of inputs, safe for concurrent use without coordination.
type Scorer struct {
	cfg Config
}

// New constructs a Scorer. The config is normalized once here; it is not
// re-validated per call.
func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg.Normalize()}
}

// NewDefault constructs a Scorer with the documented default weights.
func NewDefault() *Scorer {
	return New(DefaultConfig())
}

// Config returns the weights the scorer was built with.
func (s *Scorer) Config() Config {
	return s.cfg
}

// ScoreGame scores one game against the caller's favorite team and the set
// of top-tier team abbreviations. Team comparisons are exact and
// case-sensitive. No input is rejected: partially populated records degrade
// to their documented defaults and score accordingly, so there is no error
// return. The total is rounded half away from zero to 2 decimal places.
func (s *Scorer) ScoreGame(game domain.Game, favoriteTeam string, topTierTeams map[string]struct{}) domain.ScoreResult {
	homeAbbr := game.HomeTeam.Abbreviation
	awayAbbr := game.AwayTeam.Abbreviation

	var bd domain.Breakdown

	// Criterion 1: top-tier team participation.
	topTierCount := 0
	if topTierTeams != nil {
		if _, ok := topTierTeams[homeAbbr]; ok {
			topTierCount++
		}
		if _, ok := topTierTeams[awayAbbr]; ok {
			topTierCount++
		}
	}
	bd.Top5Teams = domain.TopTierBreakdown{
		Count:  topTierCount,
		Points: float64(topTierCount) * s.cfg.Top5TeamBonus,
	}

	// Criterion 2: closeness of the final margin. A step function with
	// inclusive upper bounds, not a continuous decay.
	margin := game.Margin()
	var closePoints float64
	switch {
	case margin <= 3:
		closePoints = s.cfg.CloseGameBonus
	case margin <= 5:
		closePoints = s.cfg.CloseGameBonus * 0.8
	case margin <= 10:
		closePoints = s.cfg.CloseGameBonus * 0.5
	case margin <= 15:
		closePoints = s.cfg.CloseGameBonus * 0.25
	default:
		closePoints = 0
	}
	bd.CloseGame = domain.CloseGameBreakdown{
		Margin: margin,
		Points: closePoints,
	}

	// Criterion 3: high-scoring threshold. Flat bonus, inclusive bound.
	thresholdMet := game.TotalPoints >= s.cfg.MinTotalPoints
	var highScorePoints float64
	if thresholdMet {
		highScorePoints = s.cfg.HighScoreBonus
	}
	bd.TotalPoints = domain.TotalPointsBreakdown{
		Total:        game.TotalPoints,
		ThresholdMet: thresholdMet,
		Points:       highScorePoints,
	}

	// Criterion 4: star power. Linear, unbounded above.
	bd.StarPower = domain.StarPowerBreakdown{
		Count:  game.StarPlayersCount,
		Points: float64(game.StarPlayersCount) * s.cfg.StarPowerWeight,
	}

	// Criterion 5: lead changes.
	bd.LeadChanges = domain.LeadChangesBreakdown{
		Count:  game.LeadChanges,
		Points: float64(game.LeadChanges) * s.cfg.LeadChangesWeight,
	}

	// Criterion 6: favorite-team presence.
	hasFavorite := favoriteTeam != "" && (favoriteTeam == homeAbbr || favoriteTeam == awayAbbr)
	var favoritePoints float64
	if hasFavorite {
		favoritePoints = s.cfg.FavoriteTeamBonus
	}
	bd.FavoriteTeam = domain.FavoriteTeamBreakdown{
		HasFavorite: hasFavorite,
		Points:      favoritePoints,
	}

	return domain.ScoreResult{
		Score:     round2(bd.Sum()),
		Breakdown: bd,
	}
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TeamSet builds the membership set ScoreGame expects from a list of
// team abbreviations.
func TeamSet(abbrs ...string) map[string]struct{} {
	if len(abbrs) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(abbrs))
	for _, a := range abbrs {
		set[a] = struct{}{}
	}
	return set
}
