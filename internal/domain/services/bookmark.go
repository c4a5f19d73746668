package services

import "context"

// BookmarkService attaches a folder to the bookmark set of every user in a
// list of departments. The list is independent of the folder's own
// department scope, so a folder can be bookmarked for departments that
// cannot otherwise see it.
type BookmarkService interface {
	// Propagate parses the comma-delimited department id list, resolves the
	// member users and bookmarks the folder for each of them. Returns the
	// number of resolved users; an empty or non-resolving list returns 0
	// without error.
	Propagate(ctx context.Context, folderID, departmentList string) (int, error)
}
