package providers

import (
	"context"
	"log/slog"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/metrics"
)

// ScoreboardCache stores a day's completed games keyed by date. Both the
// file cache and the SQLite store satisfy it.
type ScoreboardCache interface {
	GetScoreboard(date string) ([]domain.Game, bool)
	SetScoreboard(date string, games []domain.Game) error
}

// cachingProvider consults a ScoreboardCache before reaching upstream.
type cachingProvider struct {
	inner     GameProvider
	cache     ScoreboardCache
	cacheName string
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// NewCachingProvider wraps a provider with a scoreboard cache. Empty days
// are not cached: the day may still have games in progress.
func NewCachingProvider(inner GameProvider, cache ScoreboardCache, cacheName string, logger *slog.Logger, recorder *metrics.Recorder) GameProvider {
	if cache == nil {
		return inner
	}
	return &cachingProvider{
		inner:     inner,
		cache:     cache,
		cacheName: cacheName,
		logger:    logger,
		metrics:   recorder,
	}
}

func (p *cachingProvider) FetchGames(ctx context.Context, date string) ([]domain.Game, error) {
	if p == nil || p.inner == nil {
		return nil, ErrProviderUnavailable
	}

	if games, ok := p.cache.GetScoreboard(date); ok {
		p.metrics.RecordCacheLookup(p.cacheName, true)
		logging.Info(p.logger, "scoreboard cache hit",
			slog.String(logging.FieldDate, date),
			slog.Int(logging.FieldCount, len(games)),
			slog.String("cache", p.cacheName),
		)
		return games, nil
	}
	p.metrics.RecordCacheLookup(p.cacheName, false)

	games, err := p.inner.FetchGames(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(games) > 0 {
		if err := p.cache.SetScoreboard(date, games); err != nil {
			logging.Warn(p.logger, "scoreboard cache write failed",
				slog.String(logging.FieldDate, date),
				slog.Any("error", err),
			)
		}
	}
	return games, nil
}
