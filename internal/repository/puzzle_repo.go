package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wordgrid/internal/database"
	"wordgrid/internal/models"
)

// PuzzleRepository handles database operations for generated puzzles
type PuzzleRepository struct {
	db *database.DB
}

// NewPuzzleRepository creates a new puzzle repository
func NewPuzzleRepository(db *database.DB) *PuzzleRepository {
	return &PuzzleRepository{db: db}
}

// Save stores a generated puzzle payload and returns it with a fresh uuid
func (r *PuzzleRepository) Save(kind string, payload []byte) (*models.StoredPuzzle, error) {
	stored := &models.StoredPuzzle{
		ID:        uuid.New().String(),
		Kind:      kind,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.Exec(
		"INSERT INTO puzzles (id, kind, payload, created_at) VALUES (?, ?, ?, ?)",
		stored.ID, stored.Kind, string(stored.Payload), stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save puzzle: %w", err)
	}

	return stored, nil
}

// GetByID retrieves a stored puzzle, or nil if not found
func (r *PuzzleRepository) GetByID(id string) (*models.StoredPuzzle, error) {
	var stored models.StoredPuzzle
	var payload string
	err := r.db.QueryRow(
		"SELECT id, kind, payload, created_at FROM puzzles WHERE id = ?", id,
	).Scan(&stored.ID, &stored.Kind, &payload, &stored.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get puzzle: %w", err)
	}

	stored.Payload = []byte(payload)
	return &stored, nil
}

// LatestSince returns the newest puzzle of a kind created at or after the
// cutoff, or nil if there is none
func (r *PuzzleRepository) LatestSince(kind string, cutoff time.Time) (*models.StoredPuzzle, error) {
	var stored models.StoredPuzzle
	var payload string
	err := r.db.QueryRow(`
		SELECT id, kind, payload, created_at
		FROM puzzles
		WHERE kind = ? AND created_at >= ?
		ORDER BY created_at DESC
		LIMIT 1
	`, kind, cutoff).Scan(&stored.ID, &stored.Kind, &payload, &stored.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest puzzle: %w", err)
	}

	stored.Payload = []byte(payload)
	return &stored, nil
}

// DeleteOlderThan removes puzzles created before the cutoff and returns how
// many were deleted
func (r *PuzzleRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM puzzles WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old puzzles: %w", err)
	}
	return result.RowsAffected()
}
