package models

import "time"

// Admin is a service operator allowed to edit the word bank.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
