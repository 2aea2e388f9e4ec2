// Package server wires configuration, storage, providers, and the HTTP
// surfaces into a runnable service.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/app/recommender"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/cache"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/config"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/http/handlers"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/http/middleware"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/metrics"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/providers"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/refdata"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/scoring"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/store"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/syncer"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/web"
)

var metricsSetup = metrics.Setup

// Server owns every long-lived component and shuts them down in order.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	metrics     *metrics.Recorder
	metricsStop func(context.Context) error

	store    *store.Store
	provider providers.GameProvider
	service  *recommender.Service
	syncer   *syncer.Syncer

	httpServer    httpServer
	metricsServer httpServer
}

// New builds a fully wired server from configuration.
func New(cfg *config.Config, logger *slog.Logger, version string) (*Server, error) {
	recorder, metricsSrv, metricsStop, err := buildMetrics(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	source := buildDataSource(cfg.NBAAPI, logger)

	var st *store.Store
	if cfg.Database.Enabled {
		st, err = store.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
	}

	scoreCache, err := buildCache(cfg.Cache, st, logger)
	if err != nil {
		return nil, err
	}

	provider := buildGameProvider(source, cfg.NBAAPI, scoreCache, cacheName(cfg.Cache, st), logger, recorder)
	catalog := refdata.NewCatalog(source, source, logger)

	scoringCfg := scoring.ConfigFromMap(cfg.Scoring)
	scorer := scoring.New(scoringCfg)

	var stars recommender.StarCounter
	if st != nil {
		stars = st
	}
	svc := recommender.New(provider, scorer, catalog, stars, logger)

	var sync *syncer.Syncer
	if st != nil {
		sync = syncer.New(source, st, cfg.Sync.Days, logger, recorder)
	}

	favorite := recommender.NormalizeTeam(cfg.FavoriteTeam)
	webHandler, err := web.New(svc, favorite, logger)
	if err != nil {
		return nil, err
	}
	apiHandler := handlers.New(svc, scorer.Config(), favorite, version, logger)

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", webHandler)
	wrapped := middleware.Logging(logger, recorder, mux)

	srv := &http.Server{
		Addr:         cfg.API.Addr(),
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		metricsStop:   metricsStop,
		store:         st,
		provider:      provider,
		service:       svc,
		syncer:        sync,
		httpServer:    netHTTPServer{srv: srv},
		metricsServer: metricsSrv,
	}, nil
}

// Run starts the HTTP and metrics servers plus the sync schedule, then
// waits for context cancellation and shuts everything down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})

	if s.syncer != nil && s.cfg.Sync.Enabled {
		if err := s.syncer.Start(ctx, s.cfg.Sync.Schedule); err != nil {
			logging.Error(s.logger, "sync schedule failed to start", err)
		}
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.syncer != nil {
		s.syncer.Stop()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.Any("error", err))
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.Any("error", err))
		}
	}

	// Stop rate-limited providers to avoid ticker leaks.
	if rl, ok := s.provider.(interface{ Close() }); ok {
		rl.Close()
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logging.Warn(s.logger, "store close failed", slog.Any("error", err))
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", slog.Any("error", err))
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// buildCache selects the scoreboard cache: the file cache when enabled,
// otherwise the SQLite store, otherwise none.
func buildCache(cfg config.CacheConfig, st *store.Store, logger *slog.Logger) (providers.ScoreboardCache, error) {
	if cfg.Enabled {
		return cache.New(cfg.Dir, cfg.TTLDays, logger)
	}
	if st != nil {
		return st, nil
	}
	return nil, nil
}

func cacheName(cfg config.CacheConfig, st *store.Store) string {
	if cfg.Enabled {
		return "file"
	}
	if st != nil {
		return "sqlite"
	}
	return "none"
}

func buildMetrics(cfg config.MetricsConfig) (*metrics.Recorder, httpServer, func(context.Context) error, error) {
	recorder, handler, shutdown, err := metricsSetup(context.Background(), metrics.TelemetryConfig{
		Enabled:      cfg.Enabled,
		Port:         strconv.Itoa(cfg.Port),
		OtlpEndpoint: cfg.OTLPEndpoint,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	if handler == nil {
		return recorder, nil, shutdown, nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{
		Addr:        ":" + strconv.Itoa(cfg.Port),
		Handler:     mux,
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
	}
	return recorder, netHTTPServer{srv: srv}, shutdown, nil
}
