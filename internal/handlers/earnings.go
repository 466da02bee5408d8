// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"plume/internal/ledger"
)

// Earnings serves the admin earnings endpoints: the manual trigger for
// the daily run and the per-post views report.
type Earnings struct {
	ledger *ledger.Service
}

// NewEarnings creates the earnings handler group.
func NewEarnings(svc *ledger.Service) *Earnings {
	return &Earnings{ledger: svc}
}

// Run handles POST /api/admin/earnings/run. It executes the same job the
// scheduler runs nightly and returns the per-post results.
func (h *Earnings) Run(w http.ResponseWriter, r *http.Request) {
	results, err := h.ledger.RunDailyEarnings(r.Context(), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "daily earnings calculated",
		"result":  results,
	})
}

// Views handles GET /api/admin/views.
func (h *Earnings) Views(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.ViewsReport(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
