// Package paypal implements the payout gateway against the PayPal
// Payouts REST API: an OAuth2 client-credentials token exchange plus the
// payouts submit/status endpoints.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"plume/internal/ledger"
)

// Client talks to the PayPal Payouts API and implements
// ledger.PayoutGateway.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// New creates a PayPal client. baseURL selects the sandbox or live
// environment.
func New(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

// token returns a valid bearer token, refreshing it via the OAuth2
// client-credentials grant when the cached one is near expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-30*time.Second)) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("paypal token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("paypal token read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token error (status %d): %s", resp.StatusCode, string(body))
	}

	var result tokenResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("paypal token unmarshal: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("paypal token: empty access token")
	}

	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

// SubmitPayout sends a single-item payout batch to the recipient email.
func (c *Client) SubmitPayout(ctx context.Context, recipientEmail string, amount int64, currency string) (*ledger.PayoutResult, error) {
	now := strconv.FormatInt(time.Now().UnixNano(), 10)
	body := payoutRequest{
		SenderBatchHeader: senderBatchHeader{
			SenderBatchID: "batch_" + now,
			EmailSubject:  "You have a payout!",
			EmailMessage:  "You have received a payout from Plume.",
		},
		Items: []payoutRequestItem{
			{
				RecipientType: "EMAIL",
				Amount: payoutAmount{
					Value:    strconv.FormatInt(amount, 10),
					Currency: currency,
				},
				Receiver:     recipientEmail,
				Note:         "Withdrawal from wallet",
				SenderItemID: "item_" + now,
			},
		},
	}

	var result payoutResponse
	if err := c.do(ctx, http.MethodPost, "/v1/payments/payouts", body, &result); err != nil {
		return nil, err
	}
	if result.BatchHeader.PayoutBatchID == "" {
		return nil, fmt.Errorf("paypal payout: response missing batch header")
	}

	out := &ledger.PayoutResult{
		BatchID: result.BatchHeader.PayoutBatchID,
		Status:  result.BatchHeader.BatchStatus,
	}
	if len(result.Items) > 0 {
		out.PayoutItemID = result.Items[0].PayoutItemID
	}
	return out, nil
}

// GetPayoutStatus fetches the current state of a payout batch.
func (c *Client) GetPayoutStatus(ctx context.Context, batchID string) (*ledger.PayoutStatus, error) {
	var result payoutResponse
	if err := c.do(ctx, http.MethodGet, "/v1/payments/payouts/"+url.PathEscape(batchID), nil, &result); err != nil {
		return nil, err
	}

	status := &ledger.PayoutStatus{
		BatchID: result.BatchHeader.PayoutBatchID,
		Status:  result.BatchHeader.BatchStatus,
	}
	if status.BatchID == "" {
		status.BatchID = batchID
	}
	if status.Status == "" {
		status.Status = "UNKNOWN"
	}
	for _, item := range result.Items {
		status.Items = append(status.Items, ledger.PayoutItem{
			TransactionStatus: item.TransactionStatus,
			ErrorMessage:      item.Errors.Message,
		})
	}
	return status, nil
}

// do performs an authenticated JSON request against the Payouts API.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	tok, err := c.token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("paypal marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("paypal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("paypal http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("paypal read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("paypal API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("paypal unmarshal: %w", err)
	}
	return nil
}

// --- Payouts API request/response types ---

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type senderBatchHeader struct {
	SenderBatchID string `json:"sender_batch_id"`
	EmailSubject  string `json:"email_subject"`
	EmailMessage  string `json:"email_message"`
}

type payoutAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type payoutRequestItem struct {
	RecipientType string       `json:"recipient_type"`
	Amount        payoutAmount `json:"amount"`
	Receiver      string       `json:"receiver"`
	Note          string       `json:"note"`
	SenderItemID  string       `json:"sender_item_id"`
}

type payoutRequest struct {
	SenderBatchHeader senderBatchHeader   `json:"sender_batch_header"`
	Items             []payoutRequestItem `json:"items"`
}

type payoutBatchHeader struct {
	PayoutBatchID string `json:"payout_batch_id"`
	BatchStatus   string `json:"batch_status"`
}

type payoutItemError struct {
	Message string `json:"message"`
}

type payoutResponseItem struct {
	PayoutItemID      string          `json:"payout_item_id"`
	TransactionStatus string          `json:"transaction_status"`
	Errors            payoutItemError `json:"errors"`
}

type payoutResponse struct {
	BatchHeader payoutBatchHeader    `json:"batch_header"`
	Items       []payoutResponseItem `json:"items"`
}
