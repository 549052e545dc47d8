package repository

import (
	"database/sql"
	"fmt"
	"time"

	"wordgrid/internal/database"
	"wordgrid/internal/models"
)

// BankRepository handles database operations for the connections word bank
type BankRepository struct {
	db *database.DB
}

// NewBankRepository creates a new bank repository
func NewBankRepository(db *database.DB) *BankRepository {
	return &BankRepository{db: db}
}

// EnsureDifficulties inserts any missing tier labels, preserving the given order
func (r *BankRepository) EnsureDifficulties(labels []models.Difficulty) error {
	for i, label := range labels {
		var count int
		err := r.db.QueryRow("SELECT COUNT(*) FROM difficulties WHERE label = ?", string(label)).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check difficulty %q: %w", label, err)
		}
		if count > 0 {
			continue
		}
		_, err = r.db.Exec("INSERT INTO difficulties (label, position) VALUES (?, ?)", string(label), i)
		if err != nil {
			return fmt.Errorf("failed to insert difficulty %q: %w", label, err)
		}
	}
	return nil
}

// ListDifficulties returns all tiers in display order
func (r *BankRepository) ListDifficulties() ([]models.DifficultyRecord, error) {
	rows, err := r.db.Query("SELECT id, label, position FROM difficulties ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query difficulties: %w", err)
	}
	defer rows.Close()

	var records []models.DifficultyRecord
	for rows.Next() {
		var rec models.DifficultyRecord
		var label string
		if err := rows.Scan(&rec.ID, &label, &rec.Position); err != nil {
			return nil, fmt.Errorf("failed to scan difficulty: %w", err)
		}
		rec.Label = models.Difficulty(label)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LoadBank assembles the full in-memory word bank
func (r *BankRepository) LoadBank() (models.WordBank, error) {
	query := `
		SELECT d.label, c.name, w.word
		FROM difficulties d
		JOIN categories c ON c.difficulty_id = d.id
		JOIN category_words w ON w.category_id = c.id
		ORDER BY d.position, c.name, w.position, w.id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query word bank: %w", err)
	}
	defer rows.Close()

	bank := make(models.WordBank)
	for rows.Next() {
		var label, category, word string
		if err := rows.Scan(&label, &category, &word); err != nil {
			return nil, fmt.Errorf("failed to scan bank row: %w", err)
		}
		difficulty := models.Difficulty(label)
		if bank[difficulty] == nil {
			bank[difficulty] = make(map[string][]string)
		}
		bank[difficulty][category] = append(bank[difficulty][category], word)
	}
	return bank, rows.Err()
}

// CreateCategory creates a category under the given tier
func (r *BankRepository) CreateCategory(difficulty models.Difficulty, name string) (*models.Category, error) {
	var difficultyID int64
	err := r.db.QueryRow("SELECT id FROM difficulties WHERE label = ?", string(difficulty)).Scan(&difficultyID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("unknown difficulty %q", difficulty)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up difficulty: %w", err)
	}

	id, err := r.db.ExecReturningID(
		"INSERT INTO categories (difficulty_id, name) VALUES (?, ?)", difficultyID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &models.Category{
		ID:           id,
		DifficultyID: difficultyID,
		Name:         name,
		CreatedAt:    time.Now(),
	}, nil
}

// GetCategory retrieves a category with its words, or nil if not found
func (r *BankRepository) GetCategory(categoryID int64) (*models.CategoryWithWords, error) {
	var cat models.Category
	err := r.db.QueryRow(
		"SELECT id, difficulty_id, name, created_at FROM categories WHERE id = ?", categoryID,
	).Scan(&cat.ID, &cat.DifficultyID, &cat.Name, &cat.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	rows, err := r.db.Query(
		"SELECT word FROM category_words WHERE category_id = ? ORDER BY position, id", categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category words: %w", err)
	}
	defer rows.Close()

	result := &models.CategoryWithWords{Category: cat}
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		result.Words = append(result.Words, word)
	}
	return result, rows.Err()
}

// AddWords appends words to a category
func (r *BankRepository) AddWords(categoryID int64, words []string) error {
	var next int
	err := r.db.QueryRow(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM category_words WHERE category_id = ?", categoryID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to get next word position: %w", err)
	}

	for i, word := range words {
		_, err := r.db.Exec(
			"INSERT INTO category_words (category_id, word, position) VALUES (?, ?, ?)",
			categoryID, word, next+i)
		if err != nil {
			return fmt.Errorf("failed to add word %q: %w", word, err)
		}
	}
	return nil
}

// DeleteCategory removes a category and its words
func (r *BankRepository) DeleteCategory(categoryID int64) error {
	if _, err := r.db.Exec("DELETE FROM categories WHERE id = ?", categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// IsEmpty reports whether the bank holds any words at all
func (r *BankRepository) IsEmpty() (bool, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM category_words").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count bank words: %w", err)
	}
	return count == 0, nil
}

// ReplaceBank atomically replaces the stored bank with the given one.
// Difficulty rows are kept; categories and words are rewritten.
func (r *BankRepository) ReplaceBank(bank models.WordBank) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM categories"); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	for difficulty, categories := range bank {
		var difficultyID int64
		err := tx.QueryRow("SELECT id FROM difficulties WHERE label = ?", string(difficulty)).Scan(&difficultyID)
		if err == sql.ErrNoRows {
			var position int
			if err := tx.QueryRow("SELECT COALESCE(MAX(position), -1) + 1 FROM difficulties").Scan(&position); err != nil {
				return fmt.Errorf("failed to get next tier position: %w", err)
			}
			difficultyID, err = tx.ExecReturningID(
				"INSERT INTO difficulties (label, position) VALUES (?, ?)", string(difficulty), position)
			if err != nil {
				return fmt.Errorf("failed to insert difficulty %q: %w", difficulty, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up difficulty: %w", err)
		}

		for name, words := range categories {
			categoryID, err := tx.ExecReturningID(
				"INSERT INTO categories (difficulty_id, name) VALUES (?, ?)", difficultyID, name)
			if err != nil {
				return fmt.Errorf("failed to insert category %q: %w", name, err)
			}
			for i, word := range words {
				_, err := tx.Exec(
					"INSERT INTO category_words (category_id, word, position) VALUES (?, ?, ?)",
					categoryID, word, i)
				if err != nil {
					return fmt.Errorf("failed to insert word %q: %w", word, err)
				}
			}
		}
	}

	return tx.Commit()
}
