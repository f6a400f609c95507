// Package riskapi implements the risk history client over the courier
// aggregation service's HTTP API. The client only fetches and decodes;
// degradation to an inconclusive assessment is the caller's concern.
package riskapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/core/domain/model/risk"
)

// Client talks to the courier-history aggregation service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a risk history client with a bounded request timeout.
// The timeout should be short; lookups sit on the order confirmation path.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type historyResponseBody struct {
	Couriers []struct {
		Name      string `json:"name"`
		Total     int    `json:"total_parcels"`
		Success   int    `json:"successful"`
		Cancelled int    `json:"cancelled"`
	} `json:"couriers"`
}

// Lookup fetches the per-courier delivery history for a phone number.
func (c *Client) Lookup(ctx context.Context, phone string) ([]risk.CourierHistory, error) {
	endpoint := fmt.Sprintf("%s/history?phone=%s", c.baseURL, url.QueryEscape(phone))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("risk service returned status %d", resp.StatusCode)
	}

	var body historyResponseBody
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	history := make([]risk.CourierHistory, 0, len(body.Couriers))
	for _, courier := range body.Couriers {
		history = append(history, risk.CourierHistory{
			Name:      courier.Name,
			Total:     courier.Total,
			Success:   courier.Success,
			Cancelled: courier.Cancelled,
		})
	}

	return history, nil
}
