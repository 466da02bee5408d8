// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"plume/internal/apperr"
	"plume/internal/models"
)

// fakeStore is an in-memory Store. List returns copies so the manager's
// cascade writes are only visible through Update/UpdateLevel calls.
type fakeStore struct {
	order []uuid.UUID
	items map[uuid.UUID]*models.Category
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[uuid.UUID]*models.Category)}
}

func (f *fakeStore) List() ([]*models.Category, error) {
	out := make([]*models.Category, 0, len(f.order))
	for _, id := range f.order {
		c := *f.items[id]
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeStore) Create(c *models.Category) (*models.Category, error) {
	cp := *c
	cp.ID = uuid.New()
	f.items[cp.ID] = &cp
	f.order = append(f.order, cp.ID)
	out := cp
	return &out, nil
}

func (f *fakeStore) Update(c *models.Category) error {
	cp := *c
	f.items[c.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateLevel(id uuid.UUID, level int) error {
	f.items[id].Level = level
	return nil
}

func (f *fakeStore) Delete(id uuid.UUID) error {
	delete(f.items, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// mustCreate creates a category or fails the test.
func mustCreate(t *testing.T, m *Manager, name string, parentID *uuid.UUID) *models.Category {
	t.Helper()
	c, err := m.Create(context.Background(), name, parentID)
	if err != nil {
		t.Fatalf("create %q: %v", name, err)
	}
	return c
}

// chain builds the four-level Arts > Music > Guitar > Acoustic chain.
func chain(t *testing.T, m *Manager) (a, b, c, d *models.Category) {
	t.Helper()
	a = mustCreate(t, m, "Arts", nil)
	b = mustCreate(t, m, "Music", &a.ID)
	c = mustCreate(t, m, "Guitar", &b.ID)
	d = mustCreate(t, m, "Acoustic", &c.ID)
	return
}

func TestCreateComputesLevels(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)
	a, b, c, d := chain(t, m)

	for i, cat := range []*models.Category{a, b, c, d} {
		if cat.Level != i+1 {
			t.Errorf("%s: level got %d, want %d", cat.Name, cat.Level, i+1)
		}
	}
}

func TestCreateRejectsFifthLevel(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)
	_, _, _, d := chain(t, m)

	_, err := m.Create(context.Background(), "Too Deep", &d.ID)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "category hierarchy cannot exceed 4 levels" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestCreateRejectsMissingParent(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)

	missing := uuid.New()
	_, err := m.Create(context.Background(), "Orphan", &missing)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)

	_, err := m.Create(context.Background(), "   ", nil)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateNameUniqueness(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)
	a, _, c, _ := chain(t, m)

	// Duplicate name on a non-leaf level is rejected, case-insensitively.
	_, err := m.Create(context.Background(), "music", &a.ID)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The same name is fine at level 4.
	if _, err := m.Create(context.Background(), "Music", &c.ID); err != nil {
		t.Fatalf("level-4 duplicate name: %v", err)
	}
}

func TestUpdateRejectsSelfParent(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)
	a := mustCreate(t, m, "Arts", nil)

	_, err := m.Update(context.Background(), a.ID, "", &a.ID)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "a category cannot be its own parent" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestUpdateRejectsDescendantParent(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)
	a, b, c, _ := chain(t, m)
	_ = b

	_, err := m.Update(context.Background(), a.ID, "", &c.ID)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "cannot set a child category as parent" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestUpdateRejectsDescendantParentAtMaxDepth(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)
	_, _, c, _ := chain(t, m)

	// A second leaf under Guitar sits at the depth cap. Proposing it as
	// Guitar's parent is still a cycle, not a depth problem.
	leaf := mustCreate(t, m, "Electric", &c.ID)

	_, err := m.Update(context.Background(), c.ID, "", &leaf.ID)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "cannot set a child category as parent" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestUpdateCascadesLevels(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, nil, nil)
	_, b, c, d := chain(t, m)

	// Promote Music to a root. Guitar and Acoustic shift up with it.
	updated, err := m.Update(context.Background(), b.ID, "", nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Level != 1 {
		t.Errorf("moved node level: got %d, want 1", updated.Level)
	}
	if store.items[c.ID].Level != 2 {
		t.Errorf("child level: got %d, want 2", store.items[c.ID].Level)
	}
	if store.items[d.ID].Level != 3 {
		t.Errorf("grandchild level: got %d, want 3", store.items[d.ID].Level)
	}
}

func TestUpdateRejectsSubtreeOverflow(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)
	a, b, _, _ := chain(t, m)
	other := mustCreate(t, m, "Other", nil)

	// Music carries a three-deep subtree; under a level-2 parent its
	// leaves would land on level 5.
	extra := mustCreate(t, m, "Extra", &other.ID)
	_, err := m.Update(context.Background(), b.ID, "", &extra.ID)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Directly under a root the subtree fits exactly.
	if _, err := m.Update(context.Background(), b.ID, "", &other.ID); err != nil {
		t.Fatalf("reparent within depth: %v", err)
	}
	_ = a
}

func TestUpdateRename(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, nil, nil)
	a := mustCreate(t, m, "Arts", nil)
	mustCreate(t, m, "Science", nil)

	// Renaming onto an existing non-leaf name conflicts.
	_, err := m.Update(context.Background(), a.ID, "science", nil)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// A fresh name goes through; empty name keeps the old one.
	updated, err := m.Update(context.Background(), a.ID, "Culture", nil)
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if updated.Name != "Culture" {
		t.Errorf("name: got %q, want Culture", updated.Name)
	}

	updated, err = m.Update(context.Background(), a.ID, "", nil)
	if err != nil {
		t.Fatalf("update without rename: %v", err)
	}
	if updated.Name != "Culture" {
		t.Errorf("name after empty rename: got %q, want Culture", updated.Name)
	}
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, nil, nil)
	a, b, c, d := chain(t, m)

	if err := m.Delete(context.Background(), a.ID, false); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("unprivileged delete: expected unauthorized, got %v", err)
	}

	if err := m.Delete(context.Background(), uuid.New(), true); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("missing delete: expected not found, got %v", err)
	}

	if err := m.Delete(context.Background(), b.ID, true); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("delete with children: expected conflict, got %v", err)
	}

	// Leaf-first deletion works all the way up.
	for _, id := range []uuid.UUID{d.ID, c.ID, b.ID, a.ID} {
		if err := m.Delete(context.Background(), id, true); err != nil {
			t.Fatalf("delete leaf %s: %v", id, err)
		}
	}
	if len(store.items) != 0 {
		t.Errorf("store not empty after deleting all: %d left", len(store.items))
	}
}

func TestTreeAssembly(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)
	a, b, c, d := chain(t, m)
	other := mustCreate(t, m, "Other", nil)

	tree, err := m.Tree(context.Background())
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("roots: got %d, want 2", len(tree))
	}

	var root *models.Category
	for _, r := range tree {
		if r.ID == a.ID {
			root = r
		}
	}
	if root == nil {
		t.Fatalf("root %s missing from tree", a.Name)
	}
	if len(root.Children) != 1 || root.Children[0].ID != b.ID {
		t.Fatalf("expected single child Music under Arts")
	}
	if root.Children[0].Children[0].ID != c.ID {
		t.Error("Guitar not nested under Music")
	}
	if root.Children[0].Children[0].Children[0].ID != d.ID {
		t.Error("Acoustic not nested under Guitar")
	}
	_ = other
}

func TestTreeEmpty(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)

	tree, err := m.Tree(context.Background())
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if tree == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(tree) != 0 {
		t.Errorf("expected no roots, got %d", len(tree))
	}
}

func TestGetAttachesChildren(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)
	a, b, _, _ := chain(t, m)

	got, err := m.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Children) != 1 || got.Children[0].ID != b.ID {
		t.Error("expected direct child attached")
	}

	if _, err := m.Get(context.Background(), uuid.New()); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAncestorChain(t *testing.T) {
	m := NewManager(newFakeStore(), nil, nil)
	a, b, c, d := chain(t, m)

	got, err := m.AncestorChain(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("ancestor chain: %v", err)
	}
	want := []uuid.UUID{a.ID, b.ID, c.ID, d.ID}
	if len(got) != len(want) {
		t.Fatalf("chain length: got %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("chain[%d]: got %s, want %s", i, got[i].ID, id)
		}
	}
}

// fakeCache records tree cache traffic.
type fakeCache struct {
	tree        []*models.Category
	sets, drops int
}

func (f *fakeCache) GetTree(ctx context.Context) ([]*models.Category, bool) {
	return f.tree, f.tree != nil
}

func (f *fakeCache) SetTree(ctx context.Context, tree []*models.Category) {
	f.tree = tree
	f.sets++
}

func (f *fakeCache) Invalidate(ctx context.Context) {
	f.tree = nil
	f.drops++
}

func TestTreeUsesCache(t *testing.T) {
	cache := &fakeCache{}
	m := NewManager(newFakeStore(), cache, nil)
	a := mustCreate(t, m, "Arts", nil)

	// Create invalidates whatever was cached.
	if cache.drops == 0 {
		t.Error("expected create to invalidate the cache")
	}

	// First read populates, second read hits.
	if _, err := m.Tree(context.Background()); err != nil {
		t.Fatalf("tree: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets: got %d, want 1", cache.sets)
	}
	tree, err := m.Tree(context.Background())
	if err != nil {
		t.Fatalf("tree (cached): %v", err)
	}
	if len(tree) != 1 || tree[0].ID != a.ID {
		t.Error("cached tree mismatch")
	}
	if cache.sets != 1 {
		t.Errorf("cache sets after hit: got %d, want 1", cache.sets)
	}
}
