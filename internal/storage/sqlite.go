// Package storage provides SQLite-based persistence for exploration runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished (or abandoned) exploration of a level.
type Run struct {
	ID         int64
	SceneID    string
	LevelID    string
	Ticks      int
	Recomputes int
	// ExploredPermille is coverage in thousandths so ordering stays integral.
	ExploredPermille int
	CreatedAt        time.Time
}

// Coverage returns the explored fraction in [0, 1].
func (r Run) Coverage() float64 {
	return float64(r.ExploredPermille) / 1000
}

// Permille converts an explored fraction into thousandths, clamped to 0..1000.
func Permille(fraction float64) int {
	if math.IsNaN(fraction) || fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return 1000
	}
	return int(math.Round(fraction * 1000))
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			recomputes INTEGER NOT NULL DEFAULT 0,
			explored_permille INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level_id, explored_permille DESC, ticks ASC);
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

// SaveRun records a run and returns the ID of the inserted row.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.LevelID == "" {
		return 0, errors.New("storage: run has no level id")
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (scene_id, level_id, ticks, recomputes, explored_permille)
		 VALUES (?, ?, ?, ?, ?)`,
		r.SceneID, r.LevelID, r.Ticks, r.Recomputes, r.ExploredPermille,
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

// TopRuns returns the best runs for a level: highest coverage first, then the
// fewest ticks, then the oldest.
func (s *Store) TopRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, level_id, ticks, recomputes, explored_permille, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY explored_permille DESC, ticks ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// AllRuns returns every run across all levels, newest first.
func (s *Store) AllRuns() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, scene_id, level_id, ticks, recomputes, explored_permille, created_at
		 FROM runs
		 ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BestCoverage returns the highest explored permille recorded for a level.
// Returns 0 if no runs exist.
func (s *Store) BestCoverage(levelID string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(explored_permille) FROM runs WHERE level_id = ?",
		levelID,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best coverage: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// ClearRuns deletes all runs for a level.
func (s *Store) ClearRuns(levelID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for one level.
type LevelStats struct {
	LevelID      string
	RunCount     int
	BestPermille int
	AvgPermille  float64
	TotalTicks   int64
	LastPlayed   time.Time
}

// LevelStats aggregates every level that has at least one run, keyed by level ID.
func (s *Store) LevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MAX(explored_permille), AVG(explored_permille), SUM(ticks), MAX(created_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.RunCount, &ls.BestPermille, &ls.AvgPermille, &ls.TotalTicks, &lastPlayed); err != nil {
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

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SceneID, &r.LevelID, &r.Ticks, &r.Recomputes, &r.ExploredPermille, &createdAt); err != nil {
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

// parseTime handles both driver-decoded times and raw DATETIME strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
