package domain

// GameStatus mirrors the upstream lifecycle states for a game.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// TeamSide is one side of a game with its final score.
type TeamSide struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbr"`
	Score        int    `json:"score"`
}

// Game is the canonical completed-game shape consumed by the scorer.
// TotalPoints and FinalMargin are derived once by the provider mapper;
// the scorer does not re-derive them. FinalMargin is a pointer so a
// partially populated record can be told apart from a genuine margin of 0.
type Game struct {
	ID               string     `json:"game_id"`
	Date             string     `json:"game_date"`
	Status           GameStatus `json:"status"`
	HomeTeam         TeamSide   `json:"home_team"`
	AwayTeam         TeamSide   `json:"away_team"`
	TotalPoints      int        `json:"total_points"`
	FinalMargin      *int       `json:"final_margin,omitempty"`
	StarPlayersCount int        `json:"star_players_count"`
	LeadChanges      int        `json:"lead_changes"`
}

// Margin returns the final margin, falling back to 100 ("not close")
// when the record carries none.
func (g Game) Margin() int {
	if g.FinalMargin == nil {
		return 100
	}
	return *g.FinalMargin
}

// MarginOf is a convenience for building records with a known margin.
func MarginOf(m int) *int {
	return &m
}

// Breakdown field names are a stable contract: presentation layers and the
// web UI pattern-match on them, and summing the per-criterion points must
// reproduce Score (within rounding).

// TopTierBreakdown reports top-tier team participation.
type TopTierBreakdown struct {
	Count  int     `json:"count"`
	Points float64 `json:"points"`
}

// CloseGameBreakdown reports the closeness contribution.
type CloseGameBreakdown struct {
	Margin int     `json:"margin"`
	Points float64 `json:"points"`
}

// TotalPointsBreakdown reports the high-scoring threshold contribution.
type TotalPointsBreakdown struct {
	Total        int     `json:"total"`
	ThresholdMet bool    `json:"threshold_met"`
	Points       float64 `json:"points"`
}

// StarPowerBreakdown reports the star-player contribution.
type StarPowerBreakdown struct {
	Count  int     `json:"count"`
	Points float64 `json:"points"`
}

// LeadChangesBreakdown reports the lead-change contribution.
type LeadChangesBreakdown struct {
	Count  int     `json:"count"`
	Points float64 `json:"points"`
}

// FavoriteTeamBreakdown reports whether the caller's favorite team played.
type FavoriteTeamBreakdown struct {
	HasFavorite bool    `json:"has_favorite"`
	Points      float64 `json:"points"`
}

// Breakdown explains a score per criterion.
type Breakdown struct {
	Top5Teams    TopTierBreakdown      `json:"top5_teams"`
	CloseGame    CloseGameBreakdown    `json:"close_game"`
	TotalPoints  TotalPointsBreakdown  `json:"total_points"`
	StarPower    StarPowerBreakdown    `json:"star_power"`
	LeadChanges  LeadChangesBreakdown  `json:"lead_changes"`
	FavoriteTeam FavoriteTeamBreakdown `json:"favorite_team"`
}

// Sum adds the per-criterion contributions back together.
func (b Breakdown) Sum() float64 {
	return b.Top5Teams.Points +
		b.CloseGame.Points +
		b.TotalPoints.Points +
		b.StarPower.Points +
		b.LeadChanges.Points +
		b.FavoriteTeam.Points
}

// ScoreResult is the scorer output: a rounded total plus its explanation.
type ScoreResult struct {
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// RankedGame pairs a game with its engagement score for presentation.
type RankedGame struct {
	Game      Game      `json:"game"`
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}
