package models

import "fmt"

// Per-field score weights. A hit's score is the sum of the weights of every
// field that contains the query (case-insensitive substring).
const (
	WeightUserFirstName  = 3
	WeightUserMiddleName = 2
	WeightUserLastName   = 1
	WeightFolderName     = 2
	WeightPostTitle      = 3
	WeightPostMessage    = 1
)

// Default search pagination values
const (
	DefaultSearchTake    = 20
	MaxSearchTake        = 100
	DefaultSearchMinLevel = 0
)

// SearchKind tags which collection a hit came from.
type SearchKind string

const (
	SearchKindUser   SearchKind = "user"
	SearchKindFolder SearchKind = "folder"
	SearchKindPost   SearchKind = "post"
)

// SearchOptions configures a cross-entity search: users by name fields,
// published folders by name, and published posts by title/message scoped to
// a department and a minimum clearance level.
type SearchOptions struct {
	// Query is the substring to look for (required)
	Query string

	// DepartmentID optionally scopes the post lookup; nil = all departments
	DepartmentID *int64

	// MinLevel keeps only posts with Level >= MinLevel
	MinLevel int

	// Pagination over the merged, score-sorted collection
	Skip int
	Take int
}

// ApplyDefaults fills in default values for unset fields
func (opts *SearchOptions) ApplyDefaults() {
	if opts.Take <= 0 {
		opts.Take = DefaultSearchTake
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	if opts.MinLevel < 0 {
		opts.MinLevel = DefaultSearchMinLevel
	}
}

// Validate checks that required fields are set and values are reasonable
func (opts *SearchOptions) Validate() error {
	if opts.Query == "" {
		return fmt.Errorf("search query cannot be empty")
	}
	if opts.Take < 0 {
		return fmt.Errorf("take cannot be negative")
	}
	if opts.Take > MaxSearchTake {
		return fmt.Errorf("take cannot exceed %d (requested: %d)", MaxSearchTake, opts.Take)
	}
	if opts.Skip < 0 {
		return fmt.Errorf("skip cannot be negative")
	}
	return nil
}

// SearchHit is one scored result from any of the three collections.
type SearchHit struct {
	Kind  SearchKind `json:"kind"`
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Score int        `json:"score"`
}

// SearchResults is the merged, sorted, paginated response.
type SearchResults struct {
	Total int         `json:"total"`
	Skip  int         `json:"skip"`
	Take  int         `json:"take"`
	Page  []SearchHit `json:"page"`
}
