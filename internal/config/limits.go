package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxFolderNameLength = 255

	// MaxPostTitleLength is the maximum length for post titles.
	MaxPostTitleLength = 255

	// MaxDepartmentNameLength is the maximum length for department names.
	MaxDepartmentNameLength = 255

	// MaxTreeDepth caps how many nesting levels a subtree request may ask
	// for. The recursion is bounded by the request's depth either way; the
	// cap just keeps a hostile depth value from turning into one query per
	// level of a pathologically deep tree.
	MaxTreeDepth = 10
)
