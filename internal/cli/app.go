package cli

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/app/recommender"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/cache"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/config"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers/balldontlie"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers/fixture"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/refdata"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/scoring"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/store"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/syncer"
)

// dataSource is the combined upstream surface the commands draw from.
type dataSource interface {
	FetchGames(ctx context.Context, date string) ([]domain.Game, error)
	FetchTopTeams(ctx context.Context, season, n int) ([]string, error)
	FetchStarPlayers(ctx context.Context, season, limit int) ([]string, error)
	FetchStandings(ctx context.Context, season int) (map[string][2]int, error)
}

// app bundles the wired components behind the commands.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	source  dataSource
	store   *store.Store
	cache   *cache.FileCache
	catalog *refdata.Catalog
	svc     *recommender.Service
	syncer  *syncer.Syncer
}

// newApp loads configuration and wires the command dependencies. Logs go to
// stderr so styled output on stdout stays clean.
func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.NewCLILogger("warn")

	var source dataSource
	if cfg.NBAAPI.Provider == "fixture" {
		source = fixture.New()
	} else {
		source = balldontlie.NewClient(balldontlie.Config{
			BaseURL: cfg.NBAAPI.BaseURL,
			APIKey:  cfg.NBAAPI.APIKey,
			HTTPClient: &http.Client{
				Timeout: time.Duration(cfg.NBAAPI.TimeoutSeconds) * time.Second,
			},
			MaxPages: cfg.NBAAPI.MaxPages,
		})
	}

	a := &app{cfg: cfg, logger: logger, source: source}

	if cfg.Database.Enabled {
		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		a.store = st
		a.syncer = syncer.New(source, st, cfg.Sync.Days, logger, nil)
	}

	var scoreCache providers.ScoreboardCache
	if cfg.Cache.Enabled {
		fc, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTLDays, logger)
		if err != nil {
			return nil, err
		}
		a.cache = fc
		scoreCache = fc
	} else if a.store != nil {
		scoreCache = a.store
	}

	provider := providers.NewCachingProvider(
		providers.NewRetryingProvider(source, logger, nil, cfg.NBAAPI.Provider, cfg.NBAAPI.RetryAttempts, 0),
		scoreCache, "file", logger, nil,
	)

	a.catalog = refdata.NewCatalog(source, source, logger)
	scorer := scoring.New(scoring.ConfigFromMap(cfg.Scoring))

	var stars recommender.StarCounter
	if a.store != nil {
		stars = a.store
	}
	a.svc = recommender.New(provider, scorer, a.catalog, stars, logger)
	return a, nil
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// favoriteTeam resolves the favorite for a command: the flag wins, then the
// configured default.
func (a *app) favoriteTeam(flag string) string {
	if flag != "" {
		return recommender.NormalizeTeam(flag)
	}
	return recommender.NormalizeTeam(a.cfg.FavoriteTeam)
}
