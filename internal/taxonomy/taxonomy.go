// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

// Package taxonomy enforces the integrity of the four-level category
// tree: computed levels, the depth cap, acyclicity on re-parenting, and
// name uniqueness for non-leaf levels.
package taxonomy

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"plume/internal/apperr"
	"plume/internal/models"
)

// Store is the persistence surface the manager needs. Every operation
// works off a full List snapshot, so point lookups stay out of the
// interface.
type Store interface {
	List() ([]*models.Category, error)
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category) error
	UpdateLevel(id uuid.UUID, level int) error
	Delete(id uuid.UUID) error
}

// TreeCache caches the assembled category tree between mutations.
type TreeCache interface {
	GetTree(ctx context.Context) ([]*models.Category, bool)
	SetTree(ctx context.Context, tree []*models.Category)
	Invalidate(ctx context.Context)
}

// Notifier receives fire-and-forget taxonomy events.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind string, payload any)
}

// Manager coordinates category mutations against the store and cache.
// Cache and notifier may be nil.
type Manager struct {
	store    Store
	cache    TreeCache
	notifier Notifier
}

// NewManager returns a category tree manager.
func NewManager(store Store, cache TreeCache, notifier Notifier) *Manager {
	return &Manager{store: store, cache: cache, notifier: notifier}
}

// Create inserts a category under the optional parent. The level is
// computed from the parent's ancestor chain; a result deeper than four
// levels is rejected, and non-leaf names must be unique.
func (m *Manager) Create(ctx context.Context, name string, parentID *uuid.UUID) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("category name is required")
	}

	flat, err := m.store.List()
	if err != nil {
		return nil, err
	}
	a := newArena(flat)

	level := 1
	if parentID != nil {
		if _, ok := a.byID[*parentID]; !ok {
			return nil, apperr.NotFound("parent category not found")
		}
		level = a.depthOf(*parentID) + 1
		if level > models.MaxCategoryDepth {
			return nil, apperr.Validation("category hierarchy cannot exceed 4 levels")
		}
	}

	if level < models.MaxCategoryDepth && a.nameTaken(name, uuid.Nil) {
		return nil, apperr.Conflict("category %q already exists", name)
	}

	created, err := m.store.Create(&models.Category{Name: name, Level: level, ParentID: parentID})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)
	slog.Info("category created", "id", created.ID, "name", created.Name, "level", created.Level)
	return created, nil
}

// Update renames and/or re-parents a category. Passing a nil parentID
// makes the category a root. Re-parenting re-validates the depth cap for
// the node and its whole subtree, then cascades recomputed levels to
// every descendant.
func (m *Manager) Update(ctx context.Context, id uuid.UUID, name string, parentID *uuid.UUID) (*models.Category, error) {
	flat, err := m.store.List()
	if err != nil {
		return nil, err
	}
	a := newArena(flat)

	target, ok := a.byID[id]
	if !ok {
		return nil, apperr.NotFound("category not found")
	}

	if parentID != nil && *parentID == id {
		return nil, apperr.Validation("a category cannot be its own parent")
	}

	// Acyclicity comes before any depth math: a descendant proposed as
	// parent is a Conflict no matter how deep it sits.
	level := 1
	if parentID != nil {
		if _, ok := a.byID[*parentID]; !ok {
			return nil, apperr.NotFound("parent category not found")
		}
		if a.isDescendant(id, *parentID) {
			return nil, apperr.Conflict("cannot set a child category as parent")
		}
		level = a.depthOf(*parentID) + 1
		if level > models.MaxCategoryDepth {
			return nil, apperr.Validation("category hierarchy cannot exceed 4 levels")
		}
	}

	name = strings.TrimSpace(name)
	if name != "" && !strings.EqualFold(name, target.Name) {
		if level < models.MaxCategoryDepth && a.nameTaken(name, id) {
			return nil, apperr.Conflict("category %q already exists", name)
		}
	}

	if a.hasChildren(id) {
		maxDepth := a.maxSubtreeDepth(id)
		if level+maxDepth-1 > models.MaxCategoryDepth {
			return nil, apperr.Conflict("this change would push descendants past the maximum depth of 4 levels")
		}
	}

	if name != "" {
		target.Name = name
	}
	target.ParentID = parentID
	target.Level = level
	if err := m.store.Update(target); err != nil {
		return nil, err
	}

	// Cascade the recomputed level through the subtree, breadth-first,
	// one save per child as each node's level is its parent's + 1.
	queue := append([]*models.Category(nil), a.children[id]...)
	levels := map[uuid.UUID]int{id: level}
	for len(queue) > 0 {
		child := queue[0]
		queue = queue[1:]
		childLevel := levels[*child.ParentID] + 1
		levels[child.ID] = childLevel
		if child.Level != childLevel {
			if err := m.store.UpdateLevel(child.ID, childLevel); err != nil {
				return nil, err
			}
			child.Level = childLevel
		}
		queue = append(queue, a.children[child.ID]...)
	}

	m.invalidate(ctx)
	slog.Info("category updated", "id", target.ID, "name", target.Name, "level", target.Level)
	return target, nil
}

// Delete removes a category. Only privileged requesters may delete, and
// a category that still has children is not deletable — re-parent or
// delete the children first.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID, privileged bool) error {
	if !privileged {
		return apperr.Unauthorized("access denied")
	}

	flat, err := m.store.List()
	if err != nil {
		return err
	}
	a := newArena(flat)

	target, ok := a.byID[id]
	if !ok {
		return apperr.NotFound("category not found")
	}
	if a.hasChildren(id) {
		return apperr.Conflict("category has children; delete or re-parent them first")
	}

	if err := m.store.Delete(id); err != nil {
		return err
	}

	m.invalidate(ctx)
	if m.notifier != nil {
		m.notifier.Notify(ctx, uuid.Nil, "category.deleted", map[string]string{
			"id":   id.String(),
			"name": target.Name,
		})
	}
	slog.Info("category deleted", "id", id, "name", target.Name)
	return nil
}

// Tree returns the full category tree, roots first, served from the
// cache when warm.
func (m *Manager) Tree(ctx context.Context) ([]*models.Category, error) {
	if m.cache != nil {
		if tree, ok := m.cache.GetTree(ctx); ok {
			return tree, nil
		}
	}

	flat, err := m.store.List()
	if err != nil {
		return nil, err
	}
	tree := buildTree(flat)
	if tree == nil {
		tree = []*models.Category{}
	}

	if m.cache != nil {
		m.cache.SetTree(ctx, tree)
	}
	return tree, nil
}

// Get returns a single category with its direct children attached.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	flat, err := m.store.List()
	if err != nil {
		return nil, err
	}
	a := newArena(flat)

	c, ok := a.byID[id]
	if !ok {
		return nil, apperr.NotFound("category not found")
	}
	c.Children = a.children[id]
	return c, nil
}

// AncestorChain returns the ordered path from the root to the given
// category, inclusive. Post creation uses it to materialize the
// denormalized path and to require a complete four-level hierarchy.
func (m *Manager) AncestorChain(ctx context.Context, id uuid.UUID) ([]*models.Category, error) {
	flat, err := m.store.List()
	if err != nil {
		return nil, err
	}
	a := newArena(flat)

	if _, ok := a.byID[id]; !ok {
		return nil, apperr.NotFound("category not found")
	}
	return a.ancestorChain(id), nil
}

// invalidate drops the cached tree after any mutation.
func (m *Manager) invalidate(ctx context.Context) {
	if m.cache != nil {
		m.cache.Invalidate(ctx)
	}
}
