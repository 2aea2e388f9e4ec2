package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/config"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/metrics"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers/balldontlie"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers/fixture"
)

// dataSource is the full upstream surface: games plus the reference data
// used by refdata and the syncer.
type dataSource interface {
	providers.DataProvider
	FetchStandings(ctx context.Context, season int) (map[string][2]int, error)
}

// buildDataSource selects the upstream client from configuration. The
// fixture provider serves deterministic games and needs no API key.
func buildDataSource(cfg config.NBAAPIConfig, logger *slog.Logger) dataSource {
	if cfg.Provider == "fixture" {
		logging.Info(logger, "using fixture data source")
		return fixture.New()
	}
	if cfg.APIKey == "" {
		logging.Warn(logger, "no API key configured, upstream requests may be rejected")
	}
	return balldontlie.NewClient(balldontlie.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		MaxPages: cfg.MaxPages,
	})
}

// buildGameProvider layers rate limiting, retries, and caching over the raw
// source. The cache sits outermost so hits skip the limiter entirely.
func buildGameProvider(
	source providers.GameProvider,
	cfg config.NBAAPIConfig,
	cache providers.ScoreboardCache,
	cacheName string,
	logger *slog.Logger,
	recorder *metrics.Recorder,
) providers.GameProvider {
	provider := source
	if cfg.RateLimitMS > 0 {
		provider = providers.NewRateLimitedProvider(provider, time.Duration(cfg.RateLimitMS)*time.Millisecond, logger)
	}
	provider = providers.NewRetryingProvider(provider, logger, recorder, cfg.Provider, cfg.RetryAttempts, 0)
	return providers.NewCachingProvider(provider, cache, cacheName, logger, recorder)
}
