// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is the slice of the post entity the core consumes: ownership,
// the view counter drained by the earnings job, and the denormalized
// category path used for ancestor-inclusive filtering.
type Post struct {
	ID         uuid.UUID   `json:"id"`
	CreatorID  uuid.UUID   `json:"creator_id"`
	Title      string      `json:"title"`
	ViewCount  int64       `json:"view_count"`
	CategoryID uuid.UUID   `json:"category_id"`
	// CategoryPath is the ordered ancestor chain, root first, always
	// exactly four ids. Stored denormalized so "posts under category X"
	// is a single array-membership query.
	CategoryPath []uuid.UUID `json:"category_path"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ViewReportRow is one line of the admin views report: current counter
// plus the payout it would produce at the configured rate.
type ViewReportRow struct {
	PostID    uuid.UUID `json:"post_id"`
	CreatorID uuid.UUID `json:"creator_id"`
	Title     string    `json:"title"`
	ViewCount int64     `json:"view_count"`
	Projected int64     `json:"projected_payout"`
}
