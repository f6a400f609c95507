// Package paymentapi implements the payment gateway client. The storefront
// never trusts gateway callbacks alone: a transaction counts as settled only
// after VerifyTransaction reports a completed status.
package paymentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/ports"
)

// Client talks to the payment gateway's merchant API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a gateway client with a bounded request timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateCharge opens a charge session for an invoice and amount in minor
// currency units.
func (c *Client) CreateCharge(ctx context.Context, invoice string, amount int64) (ports.PaymentCharge, error) {
	payload, err := json.Marshal(map[string]any{
		"invoice": invoice,
		"amount":  amount,
	})
	if err != nil {
		return ports.PaymentCharge{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/charges", bytes.NewReader(payload))
	if err != nil {
		return ports.PaymentCharge{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.PaymentCharge{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return ports.PaymentCharge{}, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body struct {
		TransactionID string `json:"transaction_id"`
		RedirectURL   string `json:"redirect_url"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.PaymentCharge{}, err
	}

	return ports.PaymentCharge{
		TransactionID: body.TransactionID,
		RedirectURL:   body.RedirectURL,
	}, nil
}

// VerifyTransaction fetches the gateway's status for a transaction.
func (c *Client) VerifyTransaction(ctx context.Context, transactionID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/transactions/%s", c.baseURL, transactionID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Status, nil
}
