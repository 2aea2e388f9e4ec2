package scoring

// Default weights for the engagement formula. A config file overrides these
// sparsely: absent keys keep their default, and the override policy is
// permissive (see ConfigFromMap).
const (
	DefaultTop5TeamBonus     = 50.0
	DefaultCloseGameBonus    = 100.0
	DefaultMinTotalPoints    = 200
	DefaultHighScoreBonus    = 10.0
	DefaultStarPowerWeight   = 20.0
	DefaultLeadChangesWeight = 10.0
	DefaultFavoriteTeamBonus = 75.0
)

// Config holds the weights for each scoring criterion.
type Config struct {
	Top5TeamBonus     float64 `mapstructure:"top5_team_bonus" json:"top5_team_bonus"`
	CloseGameBonus    float64 `mapstructure:"close_game_bonus" json:"close_game_bonus"`
	MinTotalPoints    int     `mapstructure:"min_total_points" json:"min_total_points"`
	HighScoreBonus    float64 `mapstructure:"high_score_bonus" json:"high_score_bonus"`
	StarPowerWeight   float64 `mapstructure:"star_power_weight" json:"star_power_weight"`
	LeadChangesWeight float64 `mapstructure:"lead_changes_weight" json:"lead_changes_weight"`
	FavoriteTeamBonus float64 `mapstructure:"favorite_team_bonus" json:"favorite_team_bonus"`
}

// DefaultConfig returns the documented default weights.
func DefaultConfig() Config {
	return Config{
		Top5TeamBonus:     DefaultTop5TeamBonus,
		CloseGameBonus:    DefaultCloseGameBonus,
		MinTotalPoints:    DefaultMinTotalPoints,
		HighScoreBonus:    DefaultHighScoreBonus,
		StarPowerWeight:   DefaultStarPowerWeight,
		LeadChangesWeight: DefaultLeadChangesWeight,
		FavoriteTeamBonus: DefaultFavoriteTeamBonus,
	}
}

// ConfigFromMap builds a Config from a sparse override map. Missing keys keep
// their default. The policy for present-but-malformed values is permissive:
// values that are not numeric, and negative weights, are ignored in favor of
// the default. Applied once here, never per scoring call.
func ConfigFromMap(overrides map[string]any) Config {
	cfg := DefaultConfig()
	if overrides == nil {
		return cfg
	}

	setFloat := func(key string, dst *float64) {
		if v, ok := asFloat(overrides[key]); ok && v >= 0 {
			*dst = v
		}
	}

	setFloat("top5_team_bonus", &cfg.Top5TeamBonus)
	setFloat("close_game_bonus", &cfg.CloseGameBonus)
	setFloat("high_score_bonus", &cfg.HighScoreBonus)
	setFloat("star_power_weight", &cfg.StarPowerWeight)
	setFloat("lead_changes_weight", &cfg.LeadChangesWeight)
	setFloat("favorite_team_bonus", &cfg.FavoriteTeamBonus)

	if v, ok := asFloat(overrides["min_total_points"]); ok && v >= 0 {
		cfg.MinTotalPoints = int(v)
	}

	return cfg
}

// Normalize clamps negative weights back to their defaults so a Config built
// directly (e.g. decoded from YAML) honors the same permissive policy.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.Top5TeamBonus < 0 {
		c.Top5TeamBonus = def.Top5TeamBonus
	}
	if c.CloseGameBonus < 0 {
		c.CloseGameBonus = def.CloseGameBonus
	}
	if c.MinTotalPoints < 0 {
		c.MinTotalPoints = def.MinTotalPoints
	}
	if c.HighScoreBonus < 0 {
		c.HighScoreBonus = def.HighScoreBonus
	}
	if c.StarPowerWeight < 0 {
		c.StarPowerWeight = def.StarPowerWeight
	}
	if c.LeadChangesWeight < 0 {
		c.LeadChangesWeight = def.LeadChangesWeight
	}
	if c.FavoriteTeamBonus < 0 {
		c.FavoriteTeamBonus = def.FavoriteTeamBonus
	}
	return c
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	default:
		return 0, false
	}
}
