package models

import "time"

// Department is an organizational unit. Folders and posts carry many-to-many
// department associations restricting who can see them.
type Department struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
