// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"plume/internal/apperr"
	"plume/internal/models"
)

// payoutCurrency is the only currency the platform disburses in.
const payoutCurrency = "USD"

// RequestWithdrawal debits the wallet optimistically, records a PENDING
// withdrawal, and submits the payout. On submission failure the debit is
// compensated: the amount is re-credited and the withdrawal marked
// FAILED. The external call cannot join a local transaction, hence
// debit-then-compensate instead of two-phase commit.
func (s *Service) RequestWithdrawal(ctx context.Context, creatorID uuid.UUID, amount int64) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, apperr.Validation("invalid withdrawal amount")
	}
	if amount < s.minWithdrawal {
		return nil, apperr.Validation("minimum withdrawal amount is %d", s.minWithdrawal)
	}

	wallet, err := s.wallets.FindByCreator(creatorID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, apperr.NotFound("wallet not found for creator %s", creatorID)
	}
	if wallet.PayPalEmail == nil || *wallet.PayPalEmail == "" {
		return nil, apperr.Validation("link your PayPal account before requesting a withdrawal")
	}

	// Optimistic debit. The guarded update is the authority on
	// sufficiency; a concurrent earnings credit or another withdrawal
	// cannot make it lose an update.
	debited, err := s.wallets.Debit(creatorID, amount)
	if err != nil {
		return nil, err
	}
	if !debited {
		return nil, apperr.Conflict("insufficient balance")
	}

	withdrawal, err := s.withdrawals.Create(creatorID, amount, *wallet.PayPalEmail)
	if err != nil {
		// The debit already went through; hand the money back.
		s.refund(creatorID, amount, "withdrawal record creation failed")
		return nil, err
	}

	result, err := s.gateway.SubmitPayout(ctx, *wallet.PayPalEmail, amount, payoutCurrency)
	if err != nil {
		s.refund(creatorID, amount, "payout submission failed")
		reason := err.Error()
		if markErr := s.withdrawals.MarkFailed(withdrawal.ID, reason); markErr != nil {
			slog.Error("failed to mark withdrawal failed", "withdrawal_id", withdrawal.ID, "error", markErr)
		}
		s.notify(ctx, creatorID, "withdrawal.failed", map[string]any{
			"withdrawal_id": withdrawal.ID.String(),
			"amount":        amount,
			"reason":        reason,
		})
		return nil, apperr.Gateway("withdrawal failed", err)
	}

	if err := s.withdrawals.MarkProcessing(withdrawal.ID, result.BatchID, result.PayoutItemID); err != nil {
		return nil, err
	}

	withdrawal.Status = models.WithdrawalProcessing
	withdrawal.PayPalBatchID = &result.BatchID
	if result.PayoutItemID != "" {
		withdrawal.PayPalPayoutItemID = &result.PayoutItemID
	}
	slog.Info("withdrawal submitted",
		"withdrawal_id", withdrawal.ID,
		"creator_id", creatorID,
		"amount", amount,
		"batch_id", result.BatchID,
	)
	return withdrawal, nil
}

// Reconcile queries the payout provider for every PROCESSING withdrawal
// and applies terminal outcomes: COMPLETED on success, FAILED plus a
// wallet refund on failure. A provider error for one withdrawal is
// logged and does not abort the rest of the batch.
func (s *Service) Reconcile(ctx context.Context) error {
	processing, err := s.withdrawals.ListProcessing()
	if err != nil {
		return err
	}

	for _, w := range processing {
		if w.PayPalBatchID == nil {
			continue
		}

		status, err := s.gateway.GetPayoutStatus(ctx, *w.PayPalBatchID)
		if err != nil {
			slog.Error("failed to fetch payout status",
				"withdrawal_id", w.ID, "batch_id", *w.PayPalBatchID, "error", err)
			continue
		}
		if len(status.Items) == 0 {
			continue
		}

		item := status.Items[0]
		switch item.TransactionStatus {
		case "SUCCESS":
			if err := s.withdrawals.MarkCompleted(w.ID); err != nil {
				slog.Error("failed to complete withdrawal", "withdrawal_id", w.ID, "error", err)
				continue
			}
			s.notify(ctx, w.CreatorID, "withdrawal.completed", map[string]any{
				"withdrawal_id": w.ID.String(),
				"amount":        w.Amount,
			})
			slog.Info("withdrawal completed", "withdrawal_id", w.ID, "amount", w.Amount)

		case "FAILED":
			reason := item.ErrorMessage
			if reason == "" {
				reason = "PayPal transaction failed"
			}
			if err := s.withdrawals.MarkFailed(w.ID, reason); err != nil {
				slog.Error("failed to mark withdrawal failed", "withdrawal_id", w.ID, "error", err)
				continue
			}
			s.refund(w.CreatorID, w.Amount, "payout reported failed")
			s.notify(ctx, w.CreatorID, "withdrawal.failed", map[string]any{
				"withdrawal_id": w.ID.String(),
				"amount":        w.Amount,
				"reason":        reason,
			})
			slog.Info("withdrawal failed and refunded", "withdrawal_id", w.ID, "amount", w.Amount)
		}
	}
	return nil
}

// refund re-credits a compensated amount. A missing wallet here means it
// vanished between debit and refund; that is logged loudly because the
// money has nowhere to go.
func (s *Service) refund(creatorID uuid.UUID, amount int64, cause string) {
	_, ok, err := s.wallets.Credit(creatorID, amount)
	if err != nil {
		slog.Error("refund failed", "creator_id", creatorID, "amount", amount, "cause", cause, "error", err)
		return
	}
	if !ok {
		slog.Error("refund target wallet missing", "creator_id", creatorID, "amount", amount, "cause", cause)
	}
}

// notify fires an event when a notifier is configured.
func (s *Service) notify(ctx context.Context, userID uuid.UUID, kind string, payload any) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, kind, payload)
	}
}
