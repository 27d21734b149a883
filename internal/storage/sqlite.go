// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/chicago-loop/internal/engine"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run of a level.
type RunRecord struct {
	ID          int64
	LevelID     string
	Outcome     string // "won", "extinction" or "timeout"
	Success     bool
	Generations int
	Rules       string // e.g. "B3/S23"
	Seed        string // Comma-joined pattern rows, e.g. ".##.,#..#,....,####"
	Final       engine.Coord
	Player      string // SSH user or "local"
	CreatedAt   time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID         string
	Runs            int
	Wins            int
	BestGenerations int // Fewest generations among wins; 0 if never won
	LastPlayed      time.Time
}

// WinRate returns the share of runs that were won.
func (s LevelStats) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Runs)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			success INTEGER NOT NULL DEFAULT 0,
			generations INTEGER NOT NULL,
			rules TEXT NOT NULL,
			seed TEXT NOT NULL,
			final_x INTEGER NOT NULL DEFAULT 0,
			final_y INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, success DESC, generations ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	if r.LevelID == "" {
		return 0, fmt.Errorf("storage: cannot save run: missing level id")
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (level_id, outcome, success, generations, rules, seed, final_x, final_y, player)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.Outcome, r.Success, r.Generations, r.Rules, r.Seed, r.Final.X, r.Final.Y, r.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, level_id, outcome, success, generations, rules, seed, final_x, final_y, player, created_at`

// BestRuns retrieves the best N runs for the given level.
// Wins come first, then fewer generations, then earlier runs.
func (s *Store) BestRuns(levelID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY success DESC, generations ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all levels.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.LevelID, &r.Outcome, &r.Success, &r.Generations,
			&r.Rules, &r.Seed, &r.Final.X, &r.Final.Y, &r.Player, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// LevelStats retrieves aggregated statistics for a specific level.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(success), 0),
		        COALESCE(MIN(CASE WHEN success THEN generations END), 0), MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestGenerations, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has been played.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(success),
		        COALESCE(MIN(CASE WHEN success THEN generations END), 0), MAX(created_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.Runs, &ls.Wins, &ls.BestGenerations, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// RunByID retrieves a single run. Returns nil if it does not exist.
func (s *Store) RunByID(id int64) (*RunRecord, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearRuns deletes all runs for the given level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
