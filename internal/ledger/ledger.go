// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

// Package ledger implements the creator earnings and withdrawal
// subsystem: wallet lifecycle, daily earnings aggregation from post
// views, and withdrawal requests reconciled against an external payout
// provider with a debit-then-compensate pattern.
package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"plume/internal/apperr"
	"plume/internal/models"
)

// WalletStore is the wallet persistence surface. Credit and Debit must
// be atomic at the storage layer; Debit reports false instead of letting
// a balance go negative.
type WalletStore interface {
	FindByCreator(creatorID uuid.UUID) (*models.Wallet, error)
	Create(creatorID uuid.UUID) (*models.Wallet, error)
	LinkPayPal(creatorID uuid.UUID, email string) (bool, error)
	Credit(creatorID uuid.UUID, amount int64) (int64, bool, error)
	Debit(creatorID uuid.UUID, amount int64) (bool, error)
}

// WithdrawalStore persists withdrawal rows and their state transitions.
type WithdrawalStore interface {
	Create(creatorID uuid.UUID, amount int64, paypalEmail string) (*models.Withdrawal, error)
	MarkProcessing(id uuid.UUID, batchID, payoutItemID string) error
	MarkCompleted(id uuid.UUID) error
	MarkFailed(id uuid.UUID, reason string) error
	ListProcessing() ([]*models.Withdrawal, error)
	ListByCreator(creatorID uuid.UUID) ([]*models.Withdrawal, error)
}

// EarningStore accumulates the per-(creator, day) ledger rows.
type EarningStore interface {
	Accumulate(creatorID uuid.UUID, day time.Time, views, earning int64, postID uuid.UUID) (*models.DailyEarning, error)
}

// PostStore is the read/reset view the earnings job needs over posts.
type PostStore interface {
	List() ([]*models.Post, error)
	ResetViewCount(id uuid.UUID) error
}

// PayoutResult is the provider's answer to a payout submission.
type PayoutResult struct {
	BatchID      string
	Status       string
	PayoutItemID string
}

// PayoutItem is one item of a payout batch status report.
type PayoutItem struct {
	TransactionStatus string
	ErrorMessage      string
}

// PayoutStatus is the provider's current view of a payout batch.
type PayoutStatus struct {
	BatchID string
	Status  string
	Items   []PayoutItem
}

// PayoutGateway is the external payout provider.
type PayoutGateway interface {
	SubmitPayout(ctx context.Context, recipientEmail string, amount int64, currency string) (*PayoutResult, error)
	GetPayoutStatus(ctx context.Context, batchID string) (*PayoutStatus, error)
}

// Notifier receives fire-and-forget ledger events.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind string, payload any)
}

// Service coordinates wallets, withdrawals and earnings. Notifier may
// be nil.
type Service struct {
	wallets     WalletStore
	withdrawals WithdrawalStore
	earnings    EarningStore
	posts       PostStore
	gateway     PayoutGateway
	notifier    Notifier

	earningRate   int64
	minWithdrawal int64
}

// NewService returns a ledger service. earningRate is the units credited
// per view; minWithdrawal the smallest accepted withdrawal.
func NewService(
	wallets WalletStore,
	withdrawals WithdrawalStore,
	earnings EarningStore,
	posts PostStore,
	gateway PayoutGateway,
	notifier Notifier,
	earningRate, minWithdrawal int64,
) *Service {
	return &Service{
		wallets:       wallets,
		withdrawals:   withdrawals,
		earnings:      earnings,
		posts:         posts,
		gateway:       gateway,
		notifier:      notifier,
		earningRate:   earningRate,
		minWithdrawal: minWithdrawal,
	}
}

// CreateWallet creates the single wallet a creator may own. A second
// create for the same creator fails.
func (s *Service) CreateWallet(ctx context.Context, creatorID uuid.UUID) (*models.Wallet, error) {
	existing, err := s.wallets.FindByCreator(creatorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("wallet already exists for this creator")
	}
	return s.wallets.Create(creatorID)
}

// Wallet returns a creator's wallet.
func (s *Service) Wallet(ctx context.Context, creatorID uuid.UUID) (*models.Wallet, error) {
	w, err := s.wallets.FindByCreator(creatorID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperr.NotFound("wallet not found for creator %s", creatorID)
	}
	return w, nil
}

// LinkPayPal stores the payout email on a creator's wallet and marks it
// verified. Ownership of the address is not independently verified.
func (s *Service) LinkPayPal(ctx context.Context, creatorID uuid.UUID, email string) (*models.Wallet, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("a valid PayPal email is required")
	}

	ok, err := s.wallets.LinkPayPal(creatorID, email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("wallet not found for creator %s", creatorID)
	}
	return s.Wallet(ctx, creatorID)
}

// History returns a creator's withdrawals, newest first.
func (s *Service) History(ctx context.Context, creatorID uuid.UUID) ([]*models.Withdrawal, error) {
	if _, err := s.Wallet(ctx, creatorID); err != nil {
		return nil, err
	}
	items, err := s.withdrawals.ListByCreator(creatorID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Withdrawal{}
	}
	return items, nil
}
