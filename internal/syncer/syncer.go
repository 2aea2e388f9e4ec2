// Package syncer keeps the local SQLite store fresh: it pulls standings,
// scoring leaders, and recent games from upstream on a cron schedule or on
// demand.
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/metrics"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/refdata"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/store"
)

// Sync type keys recorded in the store's sync metadata.
const (
	SyncGames     = "games"
	SyncStandings = "standings"
	SyncPlayers   = "star_players"
)

const starPlayerLimit = 30

// DataSource is the upstream surface the syncer pulls from. The balldontlie
// client and the fixture provider both satisfy it.
type DataSource interface {
	FetchGames(ctx context.Context, date string) ([]domain.Game, error)
	FetchStandings(ctx context.Context, season int) (map[string][2]int, error)
	FetchStarPlayers(ctx context.Context, season, limit int) ([]string, error)
}

// Store is the persistence surface the syncer writes to.
type Store interface {
	UpsertGames(games []domain.Game) error
	UpsertStandings(season int, records map[string][2]int) error
	SetStarPlayers(players []string) error
	SetLastSync(syncType string, at time.Time) error
	LastSync(syncType string) (time.Time, bool)
	Stats() (store.Stats, error)
}

// Result reports what one sync run wrote.
type Result struct {
	Games       int           `json:"games"`
	Standings   int           `json:"standings"`
	StarPlayers int           `json:"star_players"`
	Duration    time.Duration `json:"-"`
}

// Status is the syncer's view of the store for operators.
type Status struct {
	Stats        store.Stats          `json:"stats"`
	LastSync     map[string]time.Time `json:"last_sync"`
	DataAge      time.Duration        `json:"-"`
	LastError    string               `json:"last_error,omitempty"`
	ScheduleNext time.Time            `json:"schedule_next,omitempty"`
}

// Syncer runs sync cycles against the store.
type Syncer struct {
	source  DataSource
	store   Store
	days    int
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	cron    *cron.Cron
	entryID cron.EntryID

	mu      sync.Mutex
	lastErr error
}

// New builds a Syncer covering the last `days` days of games per run.
func New(source DataSource, st Store, days int, logger *slog.Logger, recorder *metrics.Recorder) *Syncer {
	if days <= 0 {
		days = 7
	}
	return &Syncer{
		source:  source,
		store:   st,
		days:    days,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Run performs one full sync: standings, star players, then games. Each
// section that succeeds is committed and stamped even when a later section
// fails; the first failure is returned.
func (s *Syncer) Run(ctx context.Context) (Result, error) {
	start := s.now()
	season := refdata.CurrentSeason(start)
	var result Result

	err := s.syncStandings(ctx, season, &result)
	if err == nil {
		err = s.syncStarPlayers(ctx, season, &result)
	}
	if err == nil {
		err = s.syncGames(ctx, start, &result)
	}

	result.Duration = s.now().Sub(start)
	s.metrics.RecordSyncRun(result.Duration, err)
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		logging.Error(s.logger, "sync failed", err)
		return result, err
	}
	logging.Info(s.logger, "sync complete",
		slog.Int("games", result.Games),
		slog.Int("standings", result.Standings),
		slog.Int("star_players", result.StarPlayers),
		slog.Int64(logging.FieldDurationMS, result.Duration.Milliseconds()),
	)
	return result, nil
}

func (s *Syncer) syncStandings(ctx context.Context, season int, result *Result) error {
	records, err := s.source.FetchStandings(ctx, season)
	if err != nil {
		return fmt.Errorf("fetch standings: %w", err)
	}
	if err := s.store.UpsertStandings(season, records); err != nil {
		return err
	}
	result.Standings = len(records)
	return s.store.SetLastSync(SyncStandings, s.now())
}

func (s *Syncer) syncStarPlayers(ctx context.Context, season int, result *Result) error {
	players, err := s.source.FetchStarPlayers(ctx, season, starPlayerLimit)
	if err != nil {
		return fmt.Errorf("fetch star players: %w", err)
	}
	if err := s.store.SetStarPlayers(players); err != nil {
		return err
	}
	result.StarPlayers = len(players)
	return s.store.SetLastSync(SyncPlayers, s.now())
}

func (s *Syncer) syncGames(ctx context.Context, from time.Time, result *Result) error {
	for offset := 0; offset <= s.days; offset++ {
		date := from.AddDate(0, 0, -offset).Format("2006-01-02")
		games, err := s.source.FetchGames(ctx, date)
		if err != nil {
			return fmt.Errorf("fetch games for %s: %w", date, err)
		}
		if len(games) == 0 {
			continue
		}
		if err := s.store.UpsertGames(games); err != nil {
			return err
		}
		result.Games += len(games)
	}
	return s.store.SetLastSync(SyncGames, s.now())
}

// Start schedules recurring syncs with a standard 5-field cron expression.
// Each run gets its own timeout derived from ctx.
func (s *Syncer) Start(ctx context.Context, schedule string) error {
	c := cron.New()
	id, err := c.AddFunc(schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		if _, err := s.Run(runCtx); err != nil {
			logging.Error(s.logger, "scheduled sync failed", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", schedule, err)
	}
	s.cron = c
	s.entryID = id
	c.Start()
	logging.Info(s.logger, "sync schedule started", slog.String("schedule", schedule))
	return nil
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (s *Syncer) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// Status reports store counts, per-type last sync times, and overall data
// age (time since the oldest stamped sync).
func (s *Syncer) Status() Status {
	status := Status{LastSync: make(map[string]time.Time)}

	if stats, err := s.store.Stats(); err == nil {
		status.Stats = stats
	}

	now := s.now()
	for _, syncType := range []string{SyncGames, SyncStandings, SyncPlayers} {
		if at, ok := s.store.LastSync(syncType); ok {
			status.LastSync[syncType] = at
			if age := now.Sub(at); age > status.DataAge {
				status.DataAge = age
			}
		}
	}

	s.mu.Lock()
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	s.mu.Unlock()

	if s.cron != nil {
		status.ScheduleNext = s.cron.Entry(s.entryID).Next
	}
	return status
}
