package models

import "time"

// DifficultyRecord is a stored difficulty tier with its display order.
type DifficultyRecord struct {
	ID       int64      `json:"id"`
	Label    Difficulty `json:"label"`
	Position int        `json:"position"`
}

// Category is a stored word category within a difficulty tier.
type Category struct {
	ID           int64     `json:"id"`
	DifficultyID int64     `json:"difficulty_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategoryWithWords combines a category with its word list.
type CategoryWithWords struct {
	Category
	Words []string `json:"words"`
}
