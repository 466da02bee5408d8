// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyEarning accumulates a creator's views and earnings for one
// calendar day. One row per (creator, day); repeated runs on the same
// day add to it rather than overwrite. PostID records the last post
// folded into the row, kept for compatibility with the admin report.
type DailyEarning struct {
	ID           uuid.UUID `json:"id"`
	CreatorID    uuid.UUID `json:"creator_id"`
	Date         time.Time `json:"date"`
	ViewsToday   int64     `json:"views_today"`
	EarningToday int64     `json:"earning_today"`
	PostID       uuid.UUID `json:"post_id"`
}

// EarningResult is one per-post entry of a daily earnings run.
type EarningResult struct {
	CreatorID    uuid.UUID `json:"creator_id"`
	ViewsToday   int64     `json:"views_today"`
	EarningToday int64     `json:"earning_today"`
	TotalBalance int64     `json:"total_balance"`
	PostID       uuid.UUID `json:"post_id"`
}
