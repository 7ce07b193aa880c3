package models

import "time"

// PasswordHistoryEntry is an append-only record of a hash that was set as a
// user's password at some point. Entries are never mutated or deleted; the
// reuse check reads only the most recent window.
type PasswordHistoryEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the PasswordHistoryEntry model.
func (p PasswordHistoryEntry) TableName() string {
	return "user_password_history"
}
