package models

// VisibilityContext carries one optional field per visibility dimension.
// Absent fields impose no constraint; present conditions are ANDed.
//
// The same context is applied when shaping top-level queries and again at
// every level of nested subfolder inclusion, so a descendant can be hidden
// while its ancestors and siblings remain visible.
type VisibilityContext struct {
	// OnlyPublished requires the entity's publish flag to be set.
	OnlyPublished bool

	// DepartmentID, when set, requires the entity's department-association
	// set to contain it.
	DepartmentID *int64

	// ViewerLevel, when set, requires ViewerLevel >= post.Level.
	// It does not constrain folders.
	ViewerLevel *int
}

// Unrestricted is the context that hides nothing.
func Unrestricted() VisibilityContext {
	return VisibilityContext{}
}

// FolderVisible reports whether a folder passes every present condition.
func FolderVisible(f *Folder, ctx VisibilityContext) bool {
	if ctx.OnlyPublished && !f.IsPublished {
		return false
	}
	if ctx.DepartmentID != nil && !containsID(f.DepartmentIDs, *ctx.DepartmentID) {
		return false
	}
	return true
}

// PostVisible reports whether a post passes every present condition,
// including the clearance check when a viewer level is given.
func PostVisible(p *Post, ctx VisibilityContext) bool {
	if ctx.OnlyPublished && !p.IsPublished {
		return false
	}
	if ctx.DepartmentID != nil && !containsID(p.DepartmentIDs, *ctx.DepartmentID) {
		return false
	}
	if ctx.ViewerLevel != nil && *ctx.ViewerLevel < p.Level {
		return false
	}
	return true
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
