package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Seed populates the database with initial development data: a complete
// four-level category chain, one creator with a wallet, and a post
// attached to the leaf. No-op if any categories already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	names := []string{"Arts", "Music", "Guitar", "Acoustic Covers"}
	ids := make([]uuid.UUID, len(names))
	var parent *uuid.UUID
	for i, name := range names {
		err := db.QueryRow(`
			INSERT INTO categories (name, level, parent_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, name, i+1, parent).Scan(&ids[i])
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", name, err)
		}
		parent = &ids[i]
	}

	creatorID := uuid.New()
	if _, err := db.Exec(`
		INSERT INTO wallets (creator_id, balance) VALUES ($1, 0)
	`, creatorID); err != nil {
		return fmt.Errorf("seed insert wallet: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO posts (creator_id, title, view_count, category_id, category_path)
		VALUES ($1, $2, $3, $4, $5)
	`, creatorID, "First acoustic session", 0, ids[3], pgUUIDArray(ids)); err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	slog.Info("database seeded with sample taxonomy and creator",
		"creator_id", creatorID,
		"leaf_category", ids[3],
	)

	return nil
}

// pgUUIDArray renders a uuid slice as a Postgres array literal. The pgx
// stdlib driver does not bind []uuid.UUID directly through database/sql.
func pgUUIDArray(ids []uuid.UUID) string {
	s := "{"
	for i, id := range ids {
		if i > 0 {
			s += ","
		}
		s += id.String()
	}
	return s + "}"
}
