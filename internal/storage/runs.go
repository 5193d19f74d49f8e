package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one finished run.
type Run struct {
	ID        int64
	GameID    string
	Score     int
	Distance  float64
	Duration  time.Duration
	CreatedAt time.Time
}

// Stats contains aggregated statistics for a game.
type Stats struct {
	GameID        string
	RunsCount     int
	HighScore     int
	AvgScore      float64
	TotalDistance float64
	LastPlayed    time.Time
}

// SaveRun records a finished run. A zero CreatedAt means now.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (game_id, score, distance, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.GameID, r.Score, r.Distance, r.Duration.Milliseconds(),
		r.CreatedAt.UTC().Format(timeLayout),
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

// TopRuns retrieves the top N runs for the given game, best first.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, game_id, score, distance, duration_ms, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, distance DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// RecentRuns retrieves the latest N runs for the given game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, game_id, score, distance, duration_ms, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Distance, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Stats retrieves aggregated statistics for a game.
func (s *Store) Stats(gameID string) (*Stats, error) {
	stats := &Stats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(distance), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &stats.TotalDistance, &lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearRuns deletes the run history for the given game. Best scores stay.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
