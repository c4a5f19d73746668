package models

import "time"

// ReadRecord marks that a user has seen a post. At most one record exists per
// (user, post) pair; creation is idempotent and the record is immutable after.
type ReadRecord struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	PostID       string    `json:"post_id" db:"post_id"`
	Acknowledged bool      `json:"acknowledged" db:"acknowledged"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
