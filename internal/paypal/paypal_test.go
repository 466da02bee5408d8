// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestServer fakes the token and payouts endpoints. tokenCalls counts
// client-credentials exchanges so tests can assert token caching.
func newTestServer(t *testing.T, tokenCalls *int, payoutHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token method: got %s", r.Method)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if tokenCalls != nil {
			*tokenCalls++
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("/v1/payments/payouts", payoutHandler)
	mux.HandleFunc("/v1/payments/payouts/", payoutHandler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSubmitPayout(t *testing.T) {
	var tokenCalls int
	var captured payoutRequest

	srv := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("authorization: got %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode payout request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"batch_header": map[string]any{
				"payout_batch_id": "BATCH123",
				"batch_status":    "PENDING",
			},
			"items": []map[string]any{
				{"payout_item_id": "ITEM456", "transaction_status": "PENDING"},
			},
		})
	})

	c := New(srv.URL, "client-id", "client-secret")
	result, err := c.SubmitPayout(context.Background(), "creator@example.com", 40, "USD")
	if err != nil {
		t.Fatalf("submit payout: %v", err)
	}

	if result.BatchID != "BATCH123" {
		t.Errorf("batch id: got %q, want BATCH123", result.BatchID)
	}
	if result.PayoutItemID != "ITEM456" {
		t.Errorf("payout item id: got %q, want ITEM456", result.PayoutItemID)
	}

	if !strings.HasPrefix(captured.SenderBatchHeader.SenderBatchID, "batch_") {
		t.Errorf("sender batch id: got %q", captured.SenderBatchHeader.SenderBatchID)
	}
	if len(captured.Items) != 1 {
		t.Fatalf("items: got %d, want 1", len(captured.Items))
	}
	item := captured.Items[0]
	if item.RecipientType != "EMAIL" || item.Receiver != "creator@example.com" {
		t.Errorf("recipient: got %s %q", item.RecipientType, item.Receiver)
	}
	if item.Amount.Value != "40" || item.Amount.Currency != "USD" {
		t.Errorf("amount: got %s %s", item.Amount.Value, item.Amount.Currency)
	}
}

func TestSubmitPayoutAPIError(t *testing.T) {
	srv := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"name":"INSUFFICIENT_FUNDS"}`))
	})

	c := New(srv.URL, "client-id", "client-secret")
	_, err := c.SubmitPayout(context.Background(), "creator@example.com", 40, "USD")
	if err == nil {
		t.Fatal("expected error on 422 response")
	}
	if !strings.Contains(err.Error(), "INSUFFICIENT_FUNDS") {
		t.Errorf("error should carry the API body: %v", err)
	}
}

func TestGetPayoutStatus(t *testing.T) {
	srv := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("status method: got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/BATCH123") {
			t.Errorf("status path: got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"batch_header": map[string]any{
				"payout_batch_id": "BATCH123",
				"batch_status":    "SUCCESS",
			},
			"items": []map[string]any{
				{
					"payout_item_id":     "ITEM456",
					"transaction_status": "FAILED",
					"errors":             map[string]any{"message": "receiver unconfirmed"},
				},
			},
		})
	})

	c := New(srv.URL, "client-id", "client-secret")
	status, err := c.GetPayoutStatus(context.Background(), "BATCH123")
	if err != nil {
		t.Fatalf("get payout status: %v", err)
	}

	if status.BatchID != "BATCH123" || status.Status != "SUCCESS" {
		t.Errorf("batch: got %q %q", status.BatchID, status.Status)
	}
	if len(status.Items) != 1 {
		t.Fatalf("items: got %d, want 1", len(status.Items))
	}
	if status.Items[0].TransactionStatus != "FAILED" {
		t.Errorf("transaction status: got %q", status.Items[0].TransactionStatus)
	}
	if status.Items[0].ErrorMessage != "receiver unconfirmed" {
		t.Errorf("error message: got %q", status.Items[0].ErrorMessage)
	}
}

func TestTokenCaching(t *testing.T) {
	var tokenCalls int
	srv := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"batch_header": map[string]any{"payout_batch_id": "B", "batch_status": "PENDING"},
		})
	})

	c := New(srv.URL, "client-id", "client-secret")
	for i := 0; i < 3; i++ {
		if _, err := c.SubmitPayout(context.Background(), "a@b.com", 5, "USD"); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if tokenCalls != 1 {
		t.Errorf("token exchanges: got %d, want 1", tokenCalls)
	}
}

func TestTokenFailure(t *testing.T) {
	srv := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {})

	c := New(srv.URL, "wrong-id", "wrong-secret")
	_, err := c.SubmitPayout(context.Background(), "a@b.com", 5, "USD")
	if err == nil {
		t.Fatal("expected token exchange failure")
	}
	if !strings.Contains(err.Error(), "paypal token") {
		t.Errorf("error: got %v", err)
	}
}
