// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"plume/internal/models"
)

// PostStore exposes the slice of posts the core consumes: view counters
// for the earnings job and the denormalized category path for filtering.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, creator_id, title, view_count, category_id, category_path, created_at, updated_at`

// scanPost scans a row into a Post struct, decoding the array-literal
// form the stdlib driver returns for uuid[] columns.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var path string
	err := scanner.Scan(&p.ID, &p.CreatorID, &p.Title, &p.ViewCount,
		&p.CategoryID, &path, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CategoryPath, err = parseUUIDArray(path)
	if err != nil {
		return nil, fmt.Errorf("decode category path: %w", err)
	}
	return &p, nil
}

// List returns every post with its creator and current view counter.
func (s *PostStore) List() ([]*models.Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// FindByID retrieves a post. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a post with its materialized category path and returns it.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO posts (creator_id, title, category_id, category_path)
		VALUES ($1, $2, $3, $4)
		RETURNING `+postColumns,
		p.CreatorID, p.Title, p.CategoryID, uuidArrayLiteral(p.CategoryPath),
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// IncrementView bumps the view counter by one.
func (s *PostStore) IncrementView(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE posts SET view_count = view_count + 1, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("increment view: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("increment view rows: %w", err)
	}
	return n > 0, nil
}

// ResetViewCount zeroes the counter after an earnings run consumed it.
func (s *PostStore) ResetViewCount(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE posts SET view_count = 0, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("reset view count: %w", err)
	}
	return nil
}

// ListByCategory returns posts whose path contains the category at any
// level, so a level-1 query matches everything beneath it.
func (s *PostStore) ListByCategory(categoryID uuid.UUID) ([]*models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE category_path @> ARRAY[$1]::uuid[]
		ORDER BY created_at DESC
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list posts by category: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// collectPosts drains a result set into a slice.
func collectPosts(rows *sql.Rows) ([]*models.Post, error) {
	var items []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// uuidArrayLiteral renders a uuid slice in Postgres array-literal form.
func uuidArrayLiteral(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// parseUUIDArray parses the array-literal form back into a uuid slice.
func parseUUIDArray(literal string) ([]uuid.UUID, error) {
	trimmed := strings.Trim(literal, "{}")
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, ",")
	ids := make([]uuid.UUID, len(parts))
	for i, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
