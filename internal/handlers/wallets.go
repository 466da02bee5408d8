// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"plume/internal/ledger"
)

// Wallets serves the creator wallet and withdrawal endpoints.
type Wallets struct {
	ledger *ledger.Service
}

// NewWallets creates the wallet handler group.
func NewWallets(svc *ledger.Service) *Wallets {
	return &Wallets{ledger: svc}
}

// Create handles POST /api/creators/{creatorID}/wallet.
func (h *Wallets) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathID(r, "creatorID")
	if err != nil {
		respondError(w, err)
		return
	}

	wallet, err := h.ledger.CreateWallet(r.Context(), creatorID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, wallet)
}

// Get handles GET /api/creators/{creatorID}/wallet.
func (h *Wallets) Get(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathID(r, "creatorID")
	if err != nil {
		respondError(w, err)
		return
	}

	wallet, err := h.ledger.Wallet(r.Context(), creatorID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wallet)
}

// linkPayPalRequest is the payload for linking a payout email.
type linkPayPalRequest struct {
	Email string `json:"email"`
}

// LinkPayPal handles POST /api/creators/{creatorID}/wallet/paypal.
func (h *Wallets) LinkPayPal(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathID(r, "creatorID")
	if err != nil {
		respondError(w, err)
		return
	}

	var req linkPayPalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	wallet, err := h.ledger.LinkPayPal(r.Context(), creatorID, req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wallet)
}

// withdrawalRequest is the payload for requesting a payout.
type withdrawalRequest struct {
	Amount int64 `json:"amount"`
}

// RequestWithdrawal handles POST /api/creators/{creatorID}/withdrawals.
func (h *Wallets) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathID(r, "creatorID")
	if err != nil {
		respondError(w, err)
		return
	}

	var req withdrawalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	withdrawal, err := h.ledger.RequestWithdrawal(r.Context(), creatorID, req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, withdrawal)
}

// History handles GET /api/creators/{creatorID}/withdrawals.
func (h *Wallets) History(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathID(r, "creatorID")
	if err != nil {
		respondError(w, err)
		return
	}

	history, err := h.ledger.History(r.Context(), creatorID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
