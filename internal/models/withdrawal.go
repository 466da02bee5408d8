// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// WithdrawalStatus is the payout lifecycle state of a withdrawal.
//
// PENDING → PROCESSING (payout submitted) → COMPLETED | FAILED.
// PENDING → FAILED directly when submission itself errors.
// COMPLETED withdrawals are immutable history; FAILED ones have had
// their amount refunded to the wallet.
type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "PENDING"
	WithdrawalProcessing WithdrawalStatus = "PROCESSING"
	WithdrawalCompleted  WithdrawalStatus = "COMPLETED"
	WithdrawalFailed     WithdrawalStatus = "FAILED"
)

// Withdrawal records one payout request against a creator's wallet.
type Withdrawal struct {
	ID                 uuid.UUID        `json:"id"`
	CreatorID          uuid.UUID        `json:"creator_id"`
	Amount             int64            `json:"amount"`
	Status             WithdrawalStatus `json:"status"`
	PayPalBatchID      *string          `json:"paypal_batch_id"`
	PayPalPayoutItemID *string          `json:"paypal_payout_item_id"`
	PayPalEmail        string           `json:"paypal_email"`
	FailureReason      *string          `json:"failure_reason"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}
