// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"plume/internal/apperr"
	"plume/internal/models"
	"plume/internal/taxonomy"
)

// PostStore is the persistence surface the post handlers need.
type PostStore interface {
	FindByID(id uuid.UUID) (*models.Post, error)
	Create(p *models.Post) (*models.Post, error)
	IncrementView(id uuid.UUID) (bool, error)
	ListByCategory(categoryID uuid.UUID) ([]*models.Post, error)
}

// Posts serves the post endpoints. Posts attach to leaf categories only;
// the full ancestor chain is materialized at creation time.
type Posts struct {
	store    PostStore
	taxonomy *taxonomy.Manager
}

// NewPosts creates the post handler group.
func NewPosts(store PostStore, m *taxonomy.Manager) *Posts {
	return &Posts{store: store, taxonomy: m}
}

// postRequest is the create payload.
type postRequest struct {
	CreatorID  uuid.UUID `json:"creator_id"`
	Title      string    `json:"title"`
	CategoryID uuid.UUID `json:"category_id"`
}

// Create handles POST /api/posts. The category must sit at the bottom of
// a complete four-level chain; the chain is stored on the post so
// category filtering never needs to walk the tree.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondError(w, apperr.Validation("post title is required"))
		return
	}
	if req.CreatorID == uuid.Nil {
		respondError(w, apperr.Validation("creator_id is required"))
		return
	}
	if req.CategoryID == uuid.Nil {
		respondError(w, apperr.Validation("category_id is required"))
		return
	}

	chain, err := h.taxonomy.AncestorChain(r.Context(), req.CategoryID)
	if err != nil {
		respondError(w, err)
		return
	}
	if len(chain) != models.MaxCategoryDepth {
		respondError(w, apperr.Validation("posts must be filed under a level-4 category"))
		return
	}

	path := make([]uuid.UUID, len(chain))
	for i, c := range chain {
		path[i] = c.ID
	}

	post, err := h.store.Create(&models.Post{
		CreatorID:    req.CreatorID,
		Title:        req.Title,
		CategoryID:   req.CategoryID,
		CategoryPath: path,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// Get handles GET /api/posts/{id}.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	post, err := h.store.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		respondError(w, apperr.NotFound("post not found"))
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// RecordView handles POST /api/posts/{id}/view. Counters accumulate
// until the nightly earnings run drains them.
func (h *Posts) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	found, err := h.store.IncrementView(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if !found {
		respondError(w, apperr.NotFound("post not found"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "view recorded"})
}

// ListByCategory handles GET /api/categories/{id}/posts. A category at
// any level matches every post filed beneath it.
func (h *Posts) ListByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.taxonomy.Get(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	posts, err := h.store.ListByCategory(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}
