// Package storage provides SQLite-based persistence for Block Dash: the
// best score per key and a history of finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the database lives unless --db says otherwise.
const DefaultPath = "~/.blockdash/blockdash.db"

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; the SSH server shares a single store.
	db.SetMaxOpenConns(1)

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

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			game_key TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			distance REAL NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
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

// parseTime handles both driver-decoded times and raw strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
