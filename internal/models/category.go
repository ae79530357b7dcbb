package models

// Category is a node in the category tree. ParentID of zero means the
// category is top-level.
type Category struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	ParentID int64  `json:"parent_id" db:"parent_id"`
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == 0
}

// maxCategoryDepth bounds ancestor walks so malformed (cyclic) trees
// still terminate.
const maxCategoryDepth = 32

// TopLevelAncestor walks parent links through the given id-keyed arena and
// returns the root ancestor of the category. A visited set plus a depth cap
// guarantees termination even when the input data contains a cycle, in which
// case the last node reached before re-entry is returned.
func (c *Category) TopLevelAncestor(byID map[int64]*Category) *Category {
	current := c
	visited := map[int64]bool{c.ID: true}

	for depth := 0; depth < maxCategoryDepth; depth++ {
		if current.IsTopLevel() {
			return current
		}
		parent, ok := byID[current.ParentID]
		if !ok || visited[parent.ID] {
			return current
		}
		visited[parent.ID] = true
		current = parent
	}
	return current
}
