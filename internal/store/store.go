// Package store persists games, standings, and star player appearances in
// SQLite so repeated lookups and offline reads skip the upstream API.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/domain"
)

const schemaVersion = 1

// Stats summarizes row counts per table.
type Stats struct {
	Games     int `json:"games"`
	Teams     int `json:"teams"`
	Standings int `json:"standings"`
	Players   int `json:"players"`
}

// Store wraps the SQLite connection. Use ":memory:" as the path for an
// ephemeral database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_info (
		version INTEGER PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS teams (
		abbr TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		game_date TEXT NOT NULL,
		status TEXT NOT NULL,
		home_abbr TEXT NOT NULL,
		home_name TEXT NOT NULL,
		home_score INTEGER NOT NULL,
		away_abbr TEXT NOT NULL,
		away_name TEXT NOT NULL,
		away_score INTEGER NOT NULL,
		total_points INTEGER NOT NULL,
		final_margin INTEGER,
		lead_changes INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_games_date ON games(game_date);

	CREATE TABLE IF NOT EXISTS game_players (
		game_id TEXT NOT NULL REFERENCES games(id),
		player_name TEXT NOT NULL,
		PRIMARY KEY (game_id, player_name)
	);

	CREATE TABLE IF NOT EXISTS standings (
		season INTEGER NOT NULL,
		abbr TEXT NOT NULL,
		wins INTEGER NOT NULL,
		losses INTEGER NOT NULL,
		PRIMARY KEY (season, abbr)
	);

	CREATE TABLE IF NOT EXISTS star_players (
		name TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS sync_metadata (
		sync_type TEXT PRIMARY KEY,
		last_sync TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	_, err := s.db.Exec(`INSERT OR IGNORE INTO schema_info (version) VALUES (?)`, schemaVersion)
	return err
}

// UpsertGames writes each game, replacing any earlier row for the same id,
// in a single transaction. Team names are recorded as a side effect so the
// teams table stays current without a separate sync step.
func (s *Store) UpsertGames(games []domain.Game) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	gameStmt, err := tx.Prepare(`
		INSERT INTO games (id, game_date, status, home_abbr, home_name, home_score,
			away_abbr, away_name, away_score, total_points, final_margin, lead_changes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			game_date = excluded.game_date,
			status = excluded.status,
			home_abbr = excluded.home_abbr,
			home_name = excluded.home_name,
			home_score = excluded.home_score,
			away_abbr = excluded.away_abbr,
			away_name = excluded.away_name,
			away_score = excluded.away_score,
			total_points = excluded.total_points,
			final_margin = excluded.final_margin,
			lead_changes = excluded.lead_changes`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer gameStmt.Close()

	teamStmt, err := tx.Prepare(`
		INSERT INTO teams (abbr, name) VALUES (?, ?)
		ON CONFLICT(abbr) DO UPDATE SET name = excluded.name`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer teamStmt.Close()

	for _, g := range games {
		var margin any
		if g.FinalMargin != nil {
			margin = *g.FinalMargin
		}
		if _, err := gameStmt.Exec(
			g.ID, g.Date, string(g.Status),
			g.HomeTeam.Abbreviation, g.HomeTeam.Name, g.HomeTeam.Score,
			g.AwayTeam.Abbreviation, g.AwayTeam.Name, g.AwayTeam.Score,
			g.TotalPoints, margin, g.LeadChanges,
		); err != nil {
			return fmt.Errorf("upsert game %s: %w", g.ID, err)
		}
		for _, side := range []domain.TeamSide{g.HomeTeam, g.AwayTeam} {
			if side.Abbreviation == "" {
				continue
			}
			if _, err := teamStmt.Exec(side.Abbreviation, side.Name); err != nil {
				return fmt.Errorf("upsert team %s: %w", side.Abbreviation, err)
			}
		}
	}
	return tx.Commit()
}

// SetGamePlayers replaces the star player roster recorded for a game.
func (s *Store) SetGamePlayers(gameID string, players []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin player update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM game_players WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("clear players for %s: %w", gameID, err)
	}
	for _, name := range players {
		if name == "" {
			continue
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO game_players (game_id, player_name) VALUES (?, ?)`,
			gameID, name,
		); err != nil {
			return fmt.Errorf("record player for %s: %w", gameID, err)
		}
	}
	return tx.Commit()
}

// StarPlayerCount reports how many star players are recorded for a game.
func (s *Store) StarPlayerCount(gameID string) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM game_players WHERE game_id = ?`, gameID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count players for %s: %w", gameID, err)
	}
	return count, nil
}

// UpsertStandings replaces a season's win/loss records.
func (s *Store) UpsertStandings(season int, records map[string][2]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin standings update: %w", err)
	}
	defer tx.Rollback()

	for abbr, wl := range records {
		if _, err := tx.Exec(`
			INSERT INTO standings (season, abbr, wins, losses) VALUES (?, ?, ?, ?)
			ON CONFLICT(season, abbr) DO UPDATE SET wins = excluded.wins, losses = excluded.losses`,
			season, abbr, wl[0], wl[1],
		); err != nil {
			return fmt.Errorf("upsert standing %s: %w", abbr, err)
		}
	}
	return tx.Commit()
}

// TopTeams returns the n team abbreviations with the best win percentage
// across all stored seasons, ties broken by absolute wins then abbreviation.
func (s *Store) TopTeams(n int) ([]string, error) {
	if n <= 0 {
		n = 5
	}
	rows, err := s.db.Query(`
		SELECT abbr FROM standings
		ORDER BY CAST(wins AS REAL) / MAX(wins + losses, 1) DESC, wins DESC, abbr ASC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query top teams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var abbr string
		if err := rows.Scan(&abbr); err != nil {
			return nil, fmt.Errorf("scan top teams: %w", err)
		}
		teams = append(teams, abbr)
	}
	return teams, rows.Err()
}

// GamesByDateRange returns the completed games with dates in [start, end],
// newest first. Star player counts come from the game_players table.
func (s *Store) GamesByDateRange(start, end string) ([]domain.Game, error) {
	rows, err := s.db.Query(`
		SELECT g.id, g.game_date, g.status, g.home_abbr, g.home_name, g.home_score,
			g.away_abbr, g.away_name, g.away_score, g.total_points, g.final_margin,
			g.lead_changes, COUNT(p.player_name)
		FROM games g
		LEFT JOIN game_players p ON p.game_id = g.id
		WHERE g.game_date >= ? AND g.game_date <= ? AND g.status = ?
		GROUP BY g.id
		ORDER BY g.game_date DESC, g.id ASC`,
		start, end, string(domain.StatusFinal))
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// HasGamesForDate reports whether any completed game is stored for a date.
func (s *Store) HasGamesForDate(date string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM games WHERE game_date = ? AND status = ?`,
		date, string(domain.StatusFinal),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count games for %s: %w", date, err)
	}
	return count > 0, nil
}

// GetScoreboard satisfies the scoreboard cache interface: a date with stored
// completed games reads as a hit.
func (s *Store) GetScoreboard(date string) ([]domain.Game, bool) {
	games, err := s.GamesByDateRange(date, date)
	if err != nil || len(games) == 0 {
		return nil, false
	}
	return games, true
}

// SetScoreboard satisfies the scoreboard cache interface.
func (s *Store) SetScoreboard(date string, games []domain.Game) error {
	return s.UpsertGames(games)
}

// SetStarPlayers replaces the stored league-wide star player list.
func (s *Store) SetStarPlayers(players []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin star player update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM star_players`); err != nil {
		return fmt.Errorf("clear star players: %w", err)
	}
	for _, name := range players {
		if name == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO star_players (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("record star player: %w", err)
		}
	}
	return tx.Commit()
}

// StarPlayers returns the stored star player list, alphabetical.
func (s *Store) StarPlayers() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM star_players ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query star players: %w", err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan star players: %w", err)
		}
		players = append(players, name)
	}
	return players, rows.Err()
}

// SetLastSync records when a sync type (games, standings, players) last ran.
func (s *Store) SetLastSync(syncType string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO sync_metadata (sync_type, last_sync) VALUES (?, ?)
		ON CONFLICT(sync_type) DO UPDATE SET last_sync = excluded.last_sync`,
		syncType, at.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record sync time: %w", err)
	}
	return nil
}

// LastSync returns when a sync type last ran, if ever.
func (s *Store) LastSync(syncType string) (time.Time, bool) {
	var raw string
	err := s.db.QueryRow(
		`SELECT last_sync FROM sync_metadata WHERE sync_type = ?`, syncType,
	).Scan(&raw)
	if err != nil {
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// Stats reports row counts per table.
func (s *Store) Stats() (Stats, error) {
	var stats Stats
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM games`, &stats.Games},
		{`SELECT COUNT(*) FROM teams`, &stats.Teams},
		{`SELECT COUNT(*) FROM standings`, &stats.Standings},
		{`SELECT COUNT(*) FROM game_players`, &stats.Players},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return stats, fmt.Errorf("count rows: %w", err)
		}
	}
	return stats, nil
}

// ClearAll empties every data table. The schema stays in place.
func (s *Store) ClearAll() error {
	for _, table := range []string{"game_players", "games", "teams", "standings", "star_players", "sync_metadata"} {
		if _, err := s.db.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func scanGames(rows *sql.Rows) ([]domain.Game, error) {
	var games []domain.Game
	for rows.Next() {
		var (
			g      domain.Game
			status string
			margin sql.NullInt64
		)
		if err := rows.Scan(
			&g.ID, &g.Date, &status,
			&g.HomeTeam.Abbreviation, &g.HomeTeam.Name, &g.HomeTeam.Score,
			&g.AwayTeam.Abbreviation, &g.AwayTeam.Name, &g.AwayTeam.Score,
			&g.TotalPoints, &margin, &g.LeadChanges, &g.StarPlayersCount,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.Status = domain.GameStatus(status)
		if margin.Valid {
			g.FinalMargin = domain.MarginOf(int(margin.Int64))
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
