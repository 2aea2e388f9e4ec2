package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.Port != 8080 || cfg.API.Host != "0.0.0.0" {
		t.Fatalf("unexpected api defaults: %+v", cfg.API)
	}
	if cfg.NBAAPI.BaseURL != "https://api.balldontlie.io/v1" {
		t.Fatalf("unexpected base url: %s", cfg.NBAAPI.BaseURL)
	}
	if cfg.Cache.TTLDays != 7 || !cfg.Cache.Enabled {
		t.Fatalf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.Sync.Schedule != "0 6 * * *" {
		t.Fatalf("unexpected sync schedule: %s", cfg.Sync.Schedule)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
favorite_team: LAL
scoring:
  close_game_bonus: 120
  star_power_weight: 25
cache:
  ttl_days: 3
api:
  port: 9999
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FavoriteTeam != "LAL" {
		t.Fatalf("expected favorite team LAL, got %s", cfg.FavoriteTeam)
	}
	if cfg.API.Port != 9999 {
		t.Fatalf("expected port override, got %d", cfg.API.Port)
	}
	if cfg.Cache.TTLDays != 3 {
		t.Fatalf("expected ttl override, got %d", cfg.Cache.TTLDays)
	}
	// Sparse overrides leave the rest at defaults.
	if cfg.Database.Path != "nbagame.db" {
		t.Fatalf("expected default db path, got %s", cfg.Database.Path)
	}
	if got := cfg.Scoring["close_game_bonus"]; got == nil {
		t.Fatal("expected scoring overrides preserved")
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BALLDONTLIE_API_KEY", "env-key")
	t.Setenv("PORT", "3000")
	t.Setenv("NBAGAME_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NBAAPI.APIKey != "env-key" {
		t.Fatalf("expected api key from env, got %q", cfg.NBAAPI.APIKey)
	}
	if cfg.API.Port != 3000 {
		t.Fatalf("expected port from env, got %d", cfg.API.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected prefixed env override, got %s", cfg.Log.Level)
	}
}

func TestAddr(t *testing.T) {
	cfg := APIConfig{Host: "127.0.0.1", Port: 8080}
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Fatalf("unexpected addr: %s", got)
	}
}
