// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxCategoryDepth is the deepest level a category may occupy. Posts
// attach to level-4 leaves only.
const MaxCategoryDepth = 4

// Category is a node in the four-level content taxonomy.
// Level is always parent's level + 1, or 1 for roots.
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Level     int        `json:"level"`
	ParentID  *uuid.UUID `json:"parent_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Children is a virtual field populated when building the tree.
	Children []*Category `json:"children,omitempty"`
}

// IsLeaf reports whether the category sits at the maximum depth.
// Leaf names are exempt from the uniqueness rule.
func (c *Category) IsLeaf() bool {
	return c.Level == MaxCategoryDepth
}
