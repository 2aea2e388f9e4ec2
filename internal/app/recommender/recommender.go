// Package recommender is the application core: it pulls completed games for
// a lookback window, scores them, and surfaces the most engaging ones.
package recommender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/ranking"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/scoring"
)

const (
	// DefaultDays is the lookback window used when the caller passes 0.
	DefaultDays = 7
	minDays     = 1
	maxDays     = 30

	dateLayout = "2006-01-02"
)

// Error codes carried by Error and surfaced verbatim in API responses.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNoGames    = "NO_GAMES"
	CodeUpstream   = "UPSTREAM_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// Error couples a stable machine-readable code with a human message.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf extracts the error code, defaulting to INTERNAL_ERROR.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func validationError(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// StarCounter looks up recorded star player appearances for a game.
// Satisfied by the SQLite store.
type StarCounter interface {
	StarPlayerCount(gameID string) (int, error)
}

// Service scores and ranks recent games.
type Service struct {
	provider providers.GameProvider
	scorer   *scoring.Scorer
	refdata  TopTierSource
	stars    StarCounter
	logger   *slog.Logger
	now      func() time.Time
}

// TopTierSource supplies the current top-tier team set. Satisfied by the
// refdata catalog.
type TopTierSource interface {
	TopTierTeamSet(ctx context.Context) map[string]struct{}
}

// New wires a recommendation service. stars may be nil when no store is
// configured; refdata may be nil, in which case no top-tier bonus applies.
func New(provider providers.GameProvider, scorer *scoring.Scorer, refdata TopTierSource, stars StarCounter, logger *slog.Logger) *Service {
	if scorer == nil {
		scorer = scoring.NewDefault()
	}
	return &Service{
		provider: provider,
		scorer:   scorer,
		refdata:  refdata,
		stars:    stars,
		logger:   logger,
		now:      time.Now,
	}
}

// ValidateDays normalizes the lookback window: 0 means the default, and
// anything outside [1, 30] is a validation error.
func ValidateDays(days int) (int, error) {
	if days == 0 {
		return DefaultDays, nil
	}
	if days < minDays || days > maxDays {
		return 0, validationError(fmt.Sprintf("days must be between %d and %d, got %d", minDays, maxDays, days))
	}
	return days, nil
}

// NormalizeTeam trims and uppercases a favorite team abbreviation. Empty
// means no favorite.
func NormalizeTeam(team string) string {
	return strings.ToUpper(strings.TrimSpace(team))
}

// BestGame returns the single most engaging completed game in the window.
func (s *Service) BestGame(ctx context.Context, days int, favoriteTeam string) (domain.RankedGame, error) {
	ranked, err := s.RankedGames(ctx, days, favoriteTeam)
	if err != nil {
		return domain.RankedGame{}, err
	}
	return ranked[0], nil
}

// RankedGames returns every completed game in the window ordered by score,
// highest first. An empty window is a NO_GAMES error.
func (s *Service) RankedGames(ctx context.Context, days int, favoriteTeam string) ([]domain.RankedGame, error) {
	days, err := ValidateDays(days)
	if err != nil {
		return nil, err
	}
	favoriteTeam = NormalizeTeam(favoriteTeam)

	games, err := s.collectGames(ctx, days)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, &Error{
			Code:    CodeNoGames,
			Message: fmt.Sprintf("no completed games found in the last %d days", days),
		}
	}

	var topTier map[string]struct{}
	if s.refdata != nil {
		topTier = s.refdata.TopTierTeamSet(ctx)
	}

	ranked := ranking.Rank(s.scorer, games, favoriteTeam, topTier)
	logging.Info(s.logger, "ranked games",
		slog.Int(logging.FieldDays, days),
		slog.String(logging.FieldTeam, favoriteTeam),
		slog.Int(logging.FieldCount, len(ranked)),
	)
	return ranked, nil
}

// collectGames fetches one date at a time so each day can be served from
// cache independently. The window includes today and the `days` days before
// it. A date that fails after retries fails the whole request.
func (s *Service) collectGames(ctx context.Context, days int) ([]domain.Game, error) {
	if s.provider == nil {
		return nil, &Error{Code: CodeInternal, Message: "no game provider configured"}
	}

	today := s.now()
	var games []domain.Game
	for offset := 0; offset <= days; offset++ {
		date := today.AddDate(0, 0, -offset).Format(dateLayout)

		dayGames, err := s.provider.FetchGames(ctx, date)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &Error{Code: CodeInternal, Message: "request canceled", Err: ctx.Err()}
			}
			return nil, &Error{
				Code:    CodeUpstream,
				Message: fmt.Sprintf("fetching games for %s failed", date),
				Err:     err,
			}
		}
		games = append(games, s.withStarCounts(dayGames)...)
	}
	return games, nil
}

// withStarCounts overlays recorded star player counts onto freshly fetched
// games. Lookup failures leave the count as delivered by the provider.
func (s *Service) withStarCounts(games []domain.Game) []domain.Game {
	if s.stars == nil {
		return games
	}
	for i, g := range games {
		if g.StarPlayersCount != 0 {
			continue
		}
		count, err := s.stars.StarPlayerCount(g.ID)
		if err != nil {
			logging.Warn(s.logger, "star count lookup failed",
				slog.String("game_id", g.ID),
				slog.Any("error", err),
			)
			continue
		}
		games[i].StarPlayersCount = count
	}
	return games
}
