package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/metrics"
)

type scriptedProvider struct {
	results []error
	games   []domain.Game
	calls   int
}

func (s *scriptedProvider) FetchGames(ctx context.Context, date string) ([]domain.Game, error) {
	idx := s.calls
	s.calls++
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	if err := s.results[idx]; err != nil {
		return nil, err
	}
	return s.games, nil
}

func noSleep(rp GameProvider) *retryingProvider {
	r := rp.(*retryingProvider)
	r.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return r
}

func TestRetryingProviderSucceedsFirstTry(t *testing.T) {
	inner := &scriptedProvider{results: []error{nil}, games: []domain.Game{{ID: "1"}}}
	rec := metrics.NewRecorder()
	p := noSleep(NewRetryingProvider(inner, nil, rec, "test", 3, time.Millisecond))

	games, err := p.FetchGames(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 || inner.calls != 1 {
		t.Fatalf("expected single successful call, got %d calls", inner.calls)
	}
	if rec.ProviderCalls("test") != 1 || rec.ProviderErrors("test") != 0 {
		t.Fatalf("unexpected metrics: %+v", rec.Snapshot("test"))
	}
}

func TestRetryingProviderRetriesTransientErrors(t *testing.T) {
	rateLimited := &RateLimitError{Provider: "test", StatusCode: 429}
	inner := &scriptedProvider{
		results: []error{rateLimited, rateLimited, nil},
		games:   []domain.Game{{ID: "1"}},
	}
	rec := metrics.NewRecorder()
	p := noSleep(NewRetryingProvider(inner, nil, rec, "test", 3, time.Millisecond))

	games, err := p.FetchGames(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected games after retries")
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
	if rec.RateLimitHits("test") != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", rec.RateLimitHits("test"))
	}
}

func TestRetryingProviderStopsAtMaxAttempts(t *testing.T) {
	transient := &StatusError{Provider: "test", StatusCode: 503}
	inner := &scriptedProvider{results: []error{transient}}
	rec := metrics.NewRecorder()
	p := noSleep(NewRetryingProvider(inner, nil, rec, "test", 3, time.Millisecond))

	_, err := p.FetchGames(context.Background(), "2024-01-01")
	if !errors.Is(err, transient) && err.Error() != transient.Error() {
		t.Fatalf("expected last error surfaced, got %v", err)
	}
	if inner.calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", inner.calls)
	}
}

func TestRetryingProviderDoesNotRetryPermanentErrors(t *testing.T) {
	permanent := &StatusError{Provider: "test", StatusCode: 401, Body: "bad key"}
	inner := &scriptedProvider{results: []error{permanent}}
	p := noSleep(NewRetryingProvider(inner, nil, nil, "test", 3, time.Millisecond))

	_, err := p.FetchGames(context.Background(), "2024-01-01")
	if err == nil {
		t.Fatalf("expected error")
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single attempt for a permanent error, got %d", inner.calls)
	}
}

func TestRetryingProviderHonorsContextCancellation(t *testing.T) {
	transient := &StatusError{Provider: "test", StatusCode: 503}
	inner := &scriptedProvider{results: []error{transient}}
	p := NewRetryingProvider(inner, nil, nil, "test", 3, time.Millisecond).(*retryingProvider)
	p.sleep = func(ctx context.Context, d time.Duration) error { return context.Canceled }

	_, err := p.FetchGames(context.Background(), "2024-01-01")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected no further attempts after cancellation, got %d", inner.calls)
	}
}

func TestRetryingProviderNilInner(t *testing.T) {
	p := NewRetryingProvider(nil, nil, nil, "test", 0, 0)
	if _, err := p.FetchGames(context.Background(), "2024-01-01"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
