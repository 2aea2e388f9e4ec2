package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultRetryInterval = 2 * time.Second
)

// retryingProvider wraps a GameProvider with exponential backoff on
// transient upstream failures (rate limits, 5xx, transport errors).
type retryingProvider struct {
	inner       GameProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	initial     time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewRetryingProvider wraps the given provider with retries. If
// maxAttempts/initial are <= 0, defaults are used.
func NewRetryingProvider(inner GameProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) GameProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultRetryInterval
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		initial:     initial,
		sleep:       sleepCtx,
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context, date string) ([]domain.Game, error) {
	if r == nil || r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initial
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.Reset()

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		games, err := r.inner.FetchGames(ctx, date)
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if err == nil {
			return games, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.name, rlErr.RetryAfter)
		}
		if !IsTransient(err) {
			return nil, err
		}
		if attempt == r.maxAttempts {
			break
		}

		delay := bo.NextBackOff()
		if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > delay {
			delay = rlErr.RetryAfter
		}

		r.logWarn(ctx, "provider fetch retry",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Int64(logging.FieldDurationMS, delay.Milliseconds()),
			slog.Any("error", err),
		)
		if err := r.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	r.logWarn(ctx, "provider fetch failed",
		slog.Int("attempts", r.maxAttempts),
		slog.Any("error", lastErr),
	)
	return nil, lastErr
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
