package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/blockdash/internal/games/dash"
)

// Best returns the best score stored under key, or 0 if there is none.
func (s *Store) Best(key string) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM best_scores WHERE game_key = ?", key).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SaveBest stores score under key unless a higher value is already there.
func (s *Store) SaveBest(key string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (game_key, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_key) DO UPDATE SET
		   score = MAX(best_scores.score, excluded.score),
		   updated_at = CURRENT_TIMESTAMP`,
		key, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// BestKeeper adapts the store to the simulation's best-score collaborator.
func (s *Store) BestKeeper(key string) dash.BestKeeper {
	return bestKeeper{store: s, key: key}
}

type bestKeeper struct {
	store *Store
	key   string
}

func (k bestKeeper) LoadBest() (int, error) {
	return k.store.Best(k.key)
}

func (k bestKeeper) SaveBest(score int) error {
	return k.store.SaveBest(k.key, score)
}

// Ensure bestKeeper implements dash.BestKeeper
var _ dash.BestKeeper = bestKeeper{}
