// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

// arena.go holds the pure in-memory tree logic. Every mutating operation
// loads the full category set once into an arena indexed by id and runs
// these functions over it, instead of re-fetching ancestors row by row.
package taxonomy

import (
	"strings"

	"github.com/google/uuid"

	"plume/internal/models"
)

// arena is a snapshot of all categories indexed by id, with a child
// index grouped by parent id built in one pass.
type arena struct {
	byID     map[uuid.UUID]*models.Category
	children map[uuid.UUID][]*models.Category
}

// newArena builds an arena from a flat category list.
func newArena(flat []*models.Category) *arena {
	a := &arena{
		byID:     make(map[uuid.UUID]*models.Category, len(flat)),
		children: make(map[uuid.UUID][]*models.Category),
	}
	for _, c := range flat {
		a.byID[c.ID] = c
	}
	for _, c := range flat {
		if c.ParentID != nil {
			a.children[*c.ParentID] = append(a.children[*c.ParentID], c)
		}
	}
	return a
}

// depthOf walks the parent chain of id and returns its depth, root = 1.
// The walk is bounded by the arena size so a corrupted cycle cannot spin.
func (a *arena) depthOf(id uuid.UUID) int {
	depth := 0
	cur, ok := a.byID[id]
	for ok && depth <= len(a.byID) {
		depth++
		if cur.ParentID == nil {
			break
		}
		cur, ok = a.byID[*cur.ParentID]
	}
	return depth
}

// isDescendant reports whether candidate sits anywhere in the subtree
// rooted at rootID, by walking candidate's ancestor chain upward.
func (a *arena) isDescendant(rootID, candidateID uuid.UUID) bool {
	cur, ok := a.byID[candidateID]
	steps := 0
	for ok && steps <= len(a.byID) {
		if cur.ParentID == nil {
			return false
		}
		if *cur.ParentID == rootID {
			return true
		}
		cur, ok = a.byID[*cur.ParentID]
		steps++
	}
	return false
}

// maxSubtreeDepth returns the length of the longest chain from id down
// through its descendants. A node with no children counts as 1.
func (a *arena) maxSubtreeDepth(id uuid.UUID) int {
	kids := a.children[id]
	if len(kids) == 0 {
		return 1
	}
	max := 1
	for _, child := range kids {
		if d := 1 + a.maxSubtreeDepth(child.ID); d > max {
			max = d
		}
	}
	return max
}

// hasChildren reports whether id has at least one direct child.
func (a *arena) hasChildren(id uuid.UUID) bool {
	return len(a.children[id]) > 0
}

// nameTaken reports whether any category other than excludeID already
// uses name (case-insensitive).
func (a *arena) nameTaken(name string, excludeID uuid.UUID) bool {
	for _, c := range a.byID {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// ancestorChain returns the path from the root down to id, inclusive.
func (a *arena) ancestorChain(id uuid.UUID) []*models.Category {
	var reversed []*models.Category
	cur, ok := a.byID[id]
	steps := 0
	for ok && steps <= len(a.byID) {
		reversed = append(reversed, cur)
		if cur.ParentID == nil {
			break
		}
		cur, ok = a.byID[*cur.ParentID]
		steps++
	}
	chain := make([]*models.Category, len(reversed))
	for i, c := range reversed {
		chain[len(reversed)-1-i] = c
	}
	return chain
}

// buildTree assembles the nested tree from the arena in one grouping
// pass, rooted at nodes without a parent. Children are attached in the
// order the flat list provided.
func buildTree(flat []*models.Category) []*models.Category {
	a := newArena(flat)
	var roots []*models.Category
	for _, c := range flat {
		c.Children = a.children[c.ID]
		if c.ParentID == nil {
			roots = append(roots, c)
		}
	}
	return roots
}
