// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds a creator's accumulated earnings balance. One wallet per
// creator; balance never goes negative. Amounts are whole USD units.
type Wallet struct {
	ID             uuid.UUID `json:"id"`
	CreatorID      uuid.UUID `json:"creator_id"`
	Balance        int64     `json:"balance"`
	PayPalEmail    *string   `json:"paypal_email"`
	PayPalVerified bool      `json:"paypal_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
