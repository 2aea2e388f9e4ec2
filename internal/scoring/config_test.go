package scoring

import "testing"

func TestConfigFromMapDefaults(t *testing.T) {
	cfg := ConfigFromMap(nil)
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults for nil map, got %+v", cfg)
	}

	cfg = ConfigFromMap(map[string]any{})
	if cfg.Top5TeamBonus != 50 || cfg.CloseGameBonus != 100 || cfg.MinTotalPoints != 200 ||
		cfg.HighScoreBonus != 10 || cfg.StarPowerWeight != 20 || cfg.LeadChangesWeight != 10 ||
		cfg.FavoriteTeamBonus != 75 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigFromMapSparseOverride(t *testing.T) {
	cfg := ConfigFromMap(map[string]any{
		"close_game_bonus": 120,
		"min_total_points": 180,
	})

	if cfg.CloseGameBonus != 120 {
		t.Fatalf("expected close_game_bonus 120, got %v", cfg.CloseGameBonus)
	}
	if cfg.MinTotalPoints != 180 {
		t.Fatalf("expected min_total_points 180, got %v", cfg.MinTotalPoints)
	}
	if cfg.Top5TeamBonus != DefaultTop5TeamBonus {
		t.Fatalf("expected untouched keys to keep defaults, got %v", cfg.Top5TeamBonus)
	}
}

func TestConfigFromMapIgnoresMalformedValues(t *testing.T) {
	cfg := ConfigFromMap(map[string]any{
		"top5_team_bonus":  "a lot",
		"close_game_bonus": -5,
		"high_score_bonus": float64(25),
	})

	if cfg.Top5TeamBonus != DefaultTop5TeamBonus {
		t.Fatalf("expected non-numeric value ignored, got %v", cfg.Top5TeamBonus)
	}
	if cfg.CloseGameBonus != DefaultCloseGameBonus {
		t.Fatalf("expected negative value ignored, got %v", cfg.CloseGameBonus)
	}
	if cfg.HighScoreBonus != 25 {
		t.Fatalf("expected valid override applied, got %v", cfg.HighScoreBonus)
	}
}

func TestNormalizeClampsNegatives(t *testing.T) {
	cfg := Config{
		Top5TeamBonus:     -1,
		CloseGameBonus:    90,
		MinTotalPoints:    -10,
		HighScoreBonus:    5,
		StarPowerWeight:   -3,
		LeadChangesWeight: 2,
		FavoriteTeamBonus: -8,
	}.Normalize()

	if cfg.Top5TeamBonus != DefaultTop5TeamBonus ||
		cfg.MinTotalPoints != DefaultMinTotalPoints ||
		cfg.StarPowerWeight != DefaultStarPowerWeight ||
		cfg.FavoriteTeamBonus != DefaultFavoriteTeamBonus {
		t.Fatalf("expected negatives clamped to defaults, got %+v", cfg)
	}
	if cfg.CloseGameBonus != 90 || cfg.HighScoreBonus != 5 || cfg.LeadChangesWeight != 2 {
		t.Fatalf("expected valid values untouched, got %+v", cfg)
	}
}
