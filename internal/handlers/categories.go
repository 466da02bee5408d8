// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"plume/internal/apperr"
	"plume/internal/taxonomy"
)

// Categories serves the category tree endpoints.
type Categories struct {
	taxonomy *taxonomy.Manager
}

// NewCategories creates the category handler group.
func NewCategories(m *taxonomy.Manager) *Categories {
	return &Categories{taxonomy: m}
}

// categoryRequest is the create/update payload. A null or absent
// parent_id places the category at the root.
type categoryRequest struct {
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// Tree handles GET /api/categories.
func (h *Categories) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.taxonomy.Tree(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tree)
}

// Get handles GET /api/categories/{id}.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	category, err := h.taxonomy.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// Create handles POST /api/admin/categories.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	category, err := h.taxonomy.Create(r.Context(), req.Name, req.ParentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// Update handles PATCH /api/admin/categories/{id}.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	category, err := h.taxonomy.Update(r.Context(), id, req.Name, req.ParentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/admin/categories/{id}. The route sits
// behind the admin-key middleware, so the requester is privileged.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.taxonomy.Delete(r.Context(), id, true); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

// pathID parses a uuid path parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", name)
	}
	return id, nil
}
