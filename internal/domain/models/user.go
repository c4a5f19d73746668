package models

import "time"

// User is an employee profile as far as this core cares: a department, a
// clearance level and a name used for search. Identity itself lives with the
// external auth collaborator.
type User struct {
	ID           string    `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	MiddleName   string    `json:"middle_name,omitempty" db:"middle_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	DepartmentID int64     `json:"department_id" db:"department_id"`
	Level        int       `json:"level" db:"level"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UserReadState is the per-user slice of a department's completion input:
// clearance level plus the set of post ids the user has already read.
type UserReadState struct {
	UserID      string
	Level       int
	ReadPostIDs []string
}
