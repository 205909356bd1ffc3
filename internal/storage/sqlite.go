// Package storage provides SQLite-based persistence for stage progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// highestStageKey is the progress row holding the highest reached stage.
const highestStageKey = "highestStage"

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// ClearEntry represents a single stage clear record.
type ClearEntry struct {
	ID        int64
	Stage     int
	Seed      uint32
	ClearedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
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

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS stage_clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stage INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			cleared_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_stage_clears_stage ON stage_clears(stage DESC);
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

// LoadHighestStage returns the saved stage. A missing, malformed or
// non-positive value reads as stage 1.
func (s *Store) LoadHighestStage() (int, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM progress WHERE key = ?", highestStageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 1, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return parseStage(value), nil
}

// SaveHighestStage stores stage if it is higher than the saved value.
func (s *Store) SaveHighestStage(stage int) error {
	_, err := s.saveHighestStage(stage)
	return err
}

// saveHighestStage reports whether the stored value changed.
func (s *Store) saveHighestStage(stage int) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	current := 0
	var value string
	err = tx.QueryRow("SELECT value FROM progress WHERE key = ?", highestStageKey).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return false, fmt.Errorf("storage: cannot read progress: %w", err)
	default:
		current = parseStage(value)
	}
	if stage <= current {
		return false, nil
	}

	if _, err := tx.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		highestStageKey, strconv.Itoa(stage),
	); err != nil {
		return false, fmt.Errorf("storage: cannot save progress: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return true, nil
}

// ClearHighestStage removes the saved stage.
func (s *Store) ClearHighestStage() error {
	_, err := s.db.Exec("DELETE FROM progress WHERE key = ?", highestStageKey)
	if err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// RecordClear appends a stage clear to the history.
func (s *Store) RecordClear(stage int, seed uint32) error {
	_, err := s.db.Exec(
		"INSERT INTO stage_clears (stage, seed) VALUES (?, ?)",
		stage, int64(seed),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record clear: %w", err)
	}
	return nil
}

// RecentClears retrieves the most recent clears, newest first.
func (s *Store) RecentClears(limit int) ([]ClearEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, stage, seed, cleared_at
		 FROM stage_clears
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	var entries []ClearEntry
	for rows.Next() {
		var e ClearEntry
		var seed int64
		var clearedAt any
		if err := rows.Scan(&e.ID, &e.Stage, &seed, &clearedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Seed = uint32(seed)
		e.ClearedAt = parseTime(clearedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearStats contains aggregated statistics over the clear history.
type ClearStats struct {
	TotalClears  int
	HighestClear int
	LastClearAt  time.Time
}

// Stats aggregates the clear history.
func (s *Store) Stats() (*ClearStats, error) {
	var stats ClearStats
	var highest sql.NullInt64
	var last any
	err := s.db.QueryRow(
		"SELECT COUNT(*), MAX(stage), MAX(cleared_at) FROM stage_clears",
	).Scan(&stats.TotalClears, &highest, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if highest.Valid {
		stats.HighestClear = int(highest.Int64)
	}
	stats.LastClearAt = parseTime(last)
	return &stats, nil
}

// ResetClears deletes the clear history.
func (s *Store) ResetClears() error {
	if _, err := s.db.Exec("DELETE FROM stage_clears"); err != nil {
		return fmt.Errorf("storage: cannot reset clears: %w", err)
	}
	return nil
}

func parseStage(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// parseTime handles both time.Time and string datetimes.
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
