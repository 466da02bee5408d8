// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"plume/internal/models"
)

// WalletStore manages creator wallets. All balance mutations are single
// atomic UPDATE statements so the earnings job, withdrawal requests and
// payout reconciliation can interleave without lost updates.
type WalletStore struct {
	db *sql.DB
}

// NewWalletStore returns a new WalletStore.
func NewWalletStore(db *sql.DB) *WalletStore {
	return &WalletStore{db: db}
}

const walletColumns = `id, creator_id, balance, paypal_email, paypal_verified, created_at, updated_at`

// scanWallet scans a row into a Wallet struct.
func scanWallet(scanner interface{ Scan(...any) error }) (*models.Wallet, error) {
	var w models.Wallet
	err := scanner.Scan(&w.ID, &w.CreatorID, &w.Balance, &w.PayPalEmail,
		&w.PayPalVerified, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// FindByCreator retrieves the wallet for a creator. Returns nil if none exists.
func (s *WalletStore) FindByCreator(creatorID uuid.UUID) (*models.Wallet, error) {
	row := s.db.QueryRow(`SELECT `+walletColumns+` FROM wallets WHERE creator_id = $1`, creatorID)
	w, err := scanWallet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find wallet by creator: %w", err)
	}
	return w, nil
}

// Create inserts a zero-balance wallet for a creator and returns it.
// The unique constraint on creator_id rejects a second wallet.
func (s *WalletStore) Create(creatorID uuid.UUID) (*models.Wallet, error) {
	row := s.db.QueryRow(`
		INSERT INTO wallets (creator_id, balance)
		VALUES ($1, 0)
		RETURNING `+walletColumns,
		creatorID,
	)
	w, err := scanWallet(row)
	if err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return w, nil
}

// LinkPayPal sets the payout email on a creator's wallet and marks it
// verified. Reports whether a wallet existed.
func (s *WalletStore) LinkPayPal(creatorID uuid.UUID, email string) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE wallets SET paypal_email = $1, paypal_verified = TRUE, updated_at = NOW()
		WHERE creator_id = $2
	`, email, creatorID)
	if err != nil {
		return false, fmt.Errorf("link paypal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("link paypal rows: %w", err)
	}
	return n > 0, nil
}

// Credit atomically adds amount to a creator's balance and returns the
// new balance. Reports false when no wallet exists for the creator.
func (s *WalletStore) Credit(creatorID uuid.UUID, amount int64) (int64, bool, error) {
	var balance int64
	err := s.db.QueryRow(`
		UPDATE wallets SET balance = balance + $1, updated_at = NOW()
		WHERE creator_id = $2
		RETURNING balance
	`, amount, creatorID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("credit wallet: %w", err)
	}
	return balance, true, nil
}

// Debit atomically subtracts amount from a creator's balance, guarded so
// the balance never goes negative. Reports false when the wallet is
// missing or the balance is insufficient — detected by zero rows
// affected instead of a racy pre-read.
func (s *WalletStore) Debit(creatorID uuid.UUID, amount int64) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE wallets SET balance = balance - $1, updated_at = NOW()
		WHERE creator_id = $2 AND balance >= $1
	`, amount, creatorID)
	if err != nil {
		return false, fmt.Errorf("debit wallet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("debit wallet rows: %w", err)
	}
	return n > 0, nil
}
