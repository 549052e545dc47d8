package repository

import (
	"fmt"

	"wordgrid/internal/database"
	"wordgrid/internal/models"
)

// ClueRepository handles database operations for the crossword clue bank
type ClueRepository struct {
	db *database.DB
}

// NewClueRepository creates a new clue repository
func NewClueRepository(db *database.DB) *ClueRepository {
	return &ClueRepository{db: db}
}

// LoadPool returns all clue words in the given pool with their clues
func (r *ClueRepository) LoadPool(pool models.CluePool) ([]models.ClueWord, error) {
	query := `
		SELECT cw.id, cw.word, c.clue
		FROM clue_words cw
		JOIN clues c ON c.clue_word_id = cw.id
		WHERE cw.pool = ?
		ORDER BY cw.id, c.id
	`
	rows, err := r.db.Query(query, string(pool))
	if err != nil {
		return nil, fmt.Errorf("failed to query clue pool: %w", err)
	}
	defer rows.Close()

	var entries []models.ClueWord
	byID := make(map[int64]int)
	for rows.Next() {
		var id int64
		var word, clue string
		if err := rows.Scan(&id, &word, &clue); err != nil {
			return nil, fmt.Errorf("failed to scan clue row: %w", err)
		}
		idx, ok := byID[id]
		if !ok {
			entries = append(entries, models.ClueWord{ID: id, Word: word, Pool: pool})
			idx = len(entries) - 1
			byID[id] = idx
		}
		entries[idx].Clues = append(entries[idx].Clues, clue)
	}
	return entries, rows.Err()
}

// ReplacePool atomically replaces a clue pool's contents
func (r *ClueRepository) ReplacePool(pool models.CluePool, entries map[string][]string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM clue_words WHERE pool = ?", string(pool)); err != nil {
		return fmt.Errorf("failed to clear clue pool: %w", err)
	}

	for word, clues := range entries {
		wordID, err := tx.ExecReturningID(
			"INSERT INTO clue_words (word, pool) VALUES (?, ?)", word, string(pool))
		if err != nil {
			return fmt.Errorf("failed to insert clue word %q: %w", word, err)
		}
		for _, clue := range clues {
			_, err := tx.Exec("INSERT INTO clues (clue_word_id, clue) VALUES (?, ?)", wordID, clue)
			if err != nil {
				return fmt.Errorf("failed to insert clue for %q: %w", word, err)
			}
		}
	}

	return tx.Commit()
}

// IsEmpty reports whether the clue bank has no words in the given pool
func (r *ClueRepository) IsEmpty(pool models.CluePool) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM clue_words WHERE pool = ?", string(pool)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count clue words: %w", err)
	}
	return count == 0, nil
}
