// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"plume/internal/models"
)

// WithdrawalStore manages withdrawal records and their status transitions.
type WithdrawalStore struct {
	db *sql.DB
}

// NewWithdrawalStore returns a new WithdrawalStore.
func NewWithdrawalStore(db *sql.DB) *WithdrawalStore {
	return &WithdrawalStore{db: db}
}

const withdrawalColumns = `id, creator_id, amount, status, paypal_batch_id,
	paypal_payout_item_id, paypal_email, failure_reason, created_at, updated_at`

// scanWithdrawal scans a row into a Withdrawal struct.
func scanWithdrawal(scanner interface{ Scan(...any) error }) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := scanner.Scan(&w.ID, &w.CreatorID, &w.Amount, &w.Status, &w.PayPalBatchID,
		&w.PayPalPayoutItemID, &w.PayPalEmail, &w.FailureReason, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserts a PENDING withdrawal and returns it.
func (s *WithdrawalStore) Create(creatorID uuid.UUID, amount int64, paypalEmail string) (*models.Withdrawal, error) {
	row := s.db.QueryRow(`
		INSERT INTO withdrawals (creator_id, amount, status, paypal_email)
		VALUES ($1, $2, 'PENDING', $3)
		RETURNING `+withdrawalColumns,
		creatorID, amount, paypalEmail,
	)
	w, err := scanWithdrawal(row)
	if err != nil {
		return nil, fmt.Errorf("create withdrawal: %w", err)
	}
	return w, nil
}

// FindByID retrieves a withdrawal. Returns nil if not found.
func (s *WithdrawalStore) FindByID(id uuid.UUID) (*models.Withdrawal, error) {
	row := s.db.QueryRow(`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id)
	w, err := scanWithdrawal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find withdrawal by id: %w", err)
	}
	return w, nil
}

// MarkProcessing records a successful payout submission: stores the
// provider batch/item identifiers and moves the row to PROCESSING.
func (s *WithdrawalStore) MarkProcessing(id uuid.UUID, batchID, payoutItemID string) error {
	_, err := s.db.Exec(`
		UPDATE withdrawals
		SET status = 'PROCESSING', paypal_batch_id = $1, paypal_payout_item_id = $2, updated_at = NOW()
		WHERE id = $3
	`, batchID, nullable(payoutItemID), id)
	if err != nil {
		return fmt.Errorf("mark withdrawal processing: %w", err)
	}
	return nil
}

// MarkCompleted moves a withdrawal to its terminal COMPLETED state.
func (s *WithdrawalStore) MarkCompleted(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE withdrawals SET status = 'COMPLETED', updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("mark withdrawal completed: %w", err)
	}
	return nil
}

// MarkFailed moves a withdrawal to FAILED and captures the reason.
func (s *WithdrawalStore) MarkFailed(id uuid.UUID, reason string) error {
	_, err := s.db.Exec(`
		UPDATE withdrawals SET status = 'FAILED', failure_reason = $1, updated_at = NOW()
		WHERE id = $2
	`, reason, id)
	if err != nil {
		return fmt.Errorf("mark withdrawal failed: %w", err)
	}
	return nil
}

// ListProcessing returns all withdrawals awaiting payout reconciliation.
func (s *WithdrawalStore) ListProcessing() ([]*models.Withdrawal, error) {
	rows, err := s.db.Query(`
		SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE status = 'PROCESSING'
	`)
	if err != nil {
		return nil, fmt.Errorf("list processing withdrawals: %w", err)
	}
	defer rows.Close()

	var items []*models.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

// ListByCreator returns a creator's withdrawal history, newest first.
func (s *WithdrawalStore) ListByCreator(creatorID uuid.UUID) ([]*models.Withdrawal, error) {
	rows, err := s.db.Query(`
		SELECT `+withdrawalColumns+` FROM withdrawals
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals by creator: %w", err)
	}
	defer rows.Close()

	var items []*models.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
