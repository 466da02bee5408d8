// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"plume/internal/models"
)

// EarningStore manages the per-(creator, day) earnings ledger.
type EarningStore struct {
	db *sql.DB
}

// NewEarningStore returns a new EarningStore.
func NewEarningStore(db *sql.DB) *EarningStore {
	return &EarningStore{db: db}
}

const earningColumns = `id, creator_id, date, views_today, earning_today, post_id`

// scanEarning scans a row into a DailyEarning struct.
func scanEarning(scanner interface{ Scan(...any) error }) (*models.DailyEarning, error) {
	var e models.DailyEarning
	err := scanner.Scan(&e.ID, &e.CreatorID, &e.Date, &e.ViewsToday, &e.EarningToday, &e.PostID)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Accumulate adds a post's daily views and earning to the creator's row
// for the given day, creating the row if needed. The whole upsert is one
// statement, so two posts for the same creator in the same run add up
// instead of overwriting. post_id records the last post folded in.
func (s *EarningStore) Accumulate(creatorID uuid.UUID, day time.Time, views, earning int64, postID uuid.UUID) (*models.DailyEarning, error) {
	row := s.db.QueryRow(`
		INSERT INTO daily_earnings (creator_id, date, views_today, earning_today, post_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (creator_id, date) DO UPDATE SET
			views_today = daily_earnings.views_today + EXCLUDED.views_today,
			earning_today = daily_earnings.earning_today + EXCLUDED.earning_today,
			post_id = EXCLUDED.post_id
		RETURNING `+earningColumns,
		creatorID, day.Format("2006-01-02"), views, earning, postID,
	)
	e, err := scanEarning(row)
	if err != nil {
		return nil, fmt.Errorf("accumulate daily earning: %w", err)
	}
	return e, nil
}

// FindByCreatorAndDate retrieves one day's row. Returns nil if absent.
func (s *EarningStore) FindByCreatorAndDate(creatorID uuid.UUID, day time.Time) (*models.DailyEarning, error) {
	row := s.db.QueryRow(`
		SELECT `+earningColumns+` FROM daily_earnings
		WHERE creator_id = $1 AND date = $2
	`, creatorID, day.Format("2006-01-02"))
	e, err := scanEarning(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find daily earning: %w", err)
	}
	return e, nil
}
