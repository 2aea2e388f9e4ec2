// Package cache implements a file-backed scoreboard cache with a
// modification-time TTL.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
)

const (
	scoreboardDir  = "scoreboards"
	defaultTTLDays = 7
)

// Date keys become file names; reject anything that is not a plain date.
var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Stats summarizes the cache directory contents.
type Stats struct {
	Entries   int    `json:"entries"`
	SizeBytes int64  `json:"size_bytes"`
	Dir       string `json:"dir"`
}

// FileCache persists one JSON file per game date under dir/scoreboards.
// Entries older than the TTL read as misses.
type FileCache struct {
	dir    string
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// New creates the cache directory if needed. A non-positive ttlDays falls
// back to the default.
func New(dir string, ttlDays int, logger *slog.Logger) (*FileCache, error) {
	if ttlDays <= 0 {
		ttlDays = defaultTTLDays
	}
	if err := os.MkdirAll(filepath.Join(dir, scoreboardDir), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{
		dir:    dir,
		ttl:    time.Duration(ttlDays) * 24 * time.Hour,
		logger: logger,
		now:    time.Now,
	}, nil
}

// GetScoreboard returns the cached games for a date. Expired or unreadable
// entries read as misses.
func (c *FileCache) GetScoreboard(date string) ([]domain.Game, bool) {
	if c == nil || !dateKeyPattern.MatchString(date) {
		return nil, false
	}

	path := c.entryPath(date)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if c.now().Sub(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var games []domain.Game
	if err := json.Unmarshal(data, &games); err != nil {
		logging.Warn(c.logger, "discarding corrupt cache entry",
			slog.String(logging.FieldDate, date),
			slog.Any("error", err),
		)
		_ = os.Remove(path)
		return nil, false
	}
	return games, true
}

// SetScoreboard writes the games for a date atomically (temp file + rename).
func (c *FileCache) SetScoreboard(date string, games []domain.Game) error {
	if c == nil {
		return fmt.Errorf("cache not initialized")
	}
	if !dateKeyPattern.MatchString(date) {
		return fmt.Errorf("invalid cache date key %q", date)
	}

	data, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("encode scoreboard: %w", err)
	}

	path := c.entryPath(date)
	tmp, err := os.CreateTemp(filepath.Dir(path), "scoreboard-*.tmp")
	if err != nil {
		return fmt.Errorf("write scoreboard: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write scoreboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write scoreboard: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write scoreboard: %w", err)
	}
	return nil
}

// ClearExpired removes entries past the TTL and reports how many went.
func (c *FileCache) ClearExpired() (int, error) {
	entries, err := os.ReadDir(filepath.Join(c.dir, scoreboardDir))
	if err != nil {
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if c.now().Sub(info.ModTime()) <= c.ttl {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, scoreboardDir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

// ClearAll removes every cached entry and reports how many went.
func (c *FileCache) ClearAll() (int, error) {
	entries, err := os.ReadDir(filepath.Join(c.dir, scoreboardDir))
	if err != nil {
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, scoreboardDir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats walks the cache directory and reports entry count and total size.
func (c *FileCache) Stats() (Stats, error) {
	stats := Stats{Dir: c.dir}
	entries, err := os.ReadDir(filepath.Join(c.dir, scoreboardDir))
	if err != nil {
		return stats, fmt.Errorf("read cache dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.SizeBytes += info.Size()
	}
	return stats, nil
}

func (c *FileCache) entryPath(date string) string {
	return filepath.Join(c.dir, scoreboardDir, date+".json")
}
