// Package courierapi implements the carrier client over the courier
// partner's HTTP API.
//
// Error mapping is the heart of this adapter: an explicit carrier refusal
// becomes a DispatchRejectedError carrying the carrier's message verbatim,
// while transport failures and carrier-side 5xx map to
// ErrDispatchOutcomeUnknown because the booking may or may not exist.
package courierapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// Client talks to the carrier's partner API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a carrier client with a bounded request timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type consignmentRequestBody struct {
	Invoice        string `json:"invoice"`
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	CODAmount      int64  `json:"cod_amount"`
	ItemCount      int    `json:"item_count"`
	Note           string `json:"note,omitempty"`
}

type consignmentResponseBody struct {
	ConsignmentID string `json:"consignment_id"`
	TrackingCode  string `json:"tracking_code"`
	Status        string `json:"status"`
}

type errorResponseBody struct {
	Message string `json:"message"`
}

// CreateConsignment books a parcel with the carrier.
func (c *Client) CreateConsignment(
	ctx context.Context, request services.ConsignmentRequest,
) (ports.Consignment, error) {
	payload, err := json.Marshal(consignmentRequestBody{
		Invoice:        request.Invoice,
		RecipientName:  request.RecipientName,
		RecipientPhone: request.Phone,
		Address:        request.Address,
		City:           request.City,
		CODAmount:      request.CashToCollect,
		ItemCount:      request.ItemCount,
		Note:           request.Note,
	})
	if err != nil {
		return ports.Consignment{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/consignments", bytes.NewReader(payload))
	if err != nil {
		return ports.Consignment{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The request may have reached the carrier before the failure.
		return ports.Consignment{}, fmt.Errorf("%w: %w", ports.ErrDispatchOutcomeUnknown, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var body consignmentResponseBody
		if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return ports.Consignment{}, fmt.Errorf("%w: decoding response: %w",
				ports.ErrDispatchOutcomeUnknown, err)
		}
		return ports.Consignment{
			ConsignmentID: body.ConsignmentID,
			TrackingCode:  body.TrackingCode,
			Status:        body.Status,
		}, nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var body errorResponseBody
		reason := fmt.Sprintf("status %d", resp.StatusCode)
		if err = json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
			reason = body.Message
		}
		return ports.Consignment{}, &ports.DispatchRejectedError{Reason: reason}

	default:
		return ports.Consignment{}, fmt.Errorf("%w: carrier returned status %d",
			ports.ErrDispatchOutcomeUnknown, resp.StatusCode)
	}
}

// GetConsignmentStatus fetches the carrier's status for a booked parcel.
func (c *Client) GetConsignmentStatus(ctx context.Context, consignmentID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/consignments/%s/status", c.baseURL, consignmentID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", errs.NewObjectNotFoundError("consignment", consignmentID)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("carrier returned status %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Status, nil
}

// GetBalance fetches the merchant's cash-on-delivery balance.
func (c *Client) GetBalance(ctx context.Context) (ports.CourierBalance, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/balance", nil)
	if err != nil {
		return ports.CourierBalance{}, err
	}
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.CourierBalance{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.CourierBalance{}, fmt.Errorf("carrier returned status %d", resp.StatusCode)
	}

	var body struct {
		Available int64  `json:"available"`
		Pending   int64  `json:"pending"`
		Currency  string `json:"currency"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.CourierBalance{}, err
	}

	return ports.CourierBalance{
		Available: body.Available,
		Pending:   body.Pending,
		Currency:  body.Currency,
	}, nil
}
