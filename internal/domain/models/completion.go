package models

// UserCompletion reports one user who has read fewer posts than their
// clearance entitles them to.
type UserCompletion struct {
	UserID      string `json:"user_id"`
	ReadCount   int    `json:"read_count"`
	UnreadCount int    `json:"unread_count"`
}

// DepartmentCompletion groups the incomplete readers of one department.
// Departments where everyone is caught up are omitted from reports.
type DepartmentCompletion struct {
	DepartmentID int64            `json:"department_id"`
	Name         string           `json:"name"`
	Users        []UserCompletion `json:"users"`
}
