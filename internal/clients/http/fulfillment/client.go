// Package fulfillment is a thin JSON client for the external fulfillment API.
package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client posts placed orders to the fulfillment partner.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the fulfillment client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("fulfillment base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// OrderPayload is the wire shape the fulfillment API accepts.
type OrderPayload struct {
	OrderID    uuid.UUID     `json:"orderId"`
	CustomerID uuid.UUID     `json:"customerId"`
	Lines      []LinePayload `json:"lines"`
	PlacedAt   time.Time     `json:"placedAt"`
}

// LinePayload is one fulfillable line item.
type LinePayload struct {
	ProductID uuid.UUID       `json:"productId"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// SubmitOrder pushes the payload to the fulfillment API.
func (c *Client) SubmitOrder(ctx context.Context, payload OrderPayload) error {
	if c == nil || c.httpClient == nil {
		return errors.New("fulfillment client not configured")
	}
	if payload.OrderID == uuid.Nil {
		return errors.New("fulfillment order id is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode fulfillment payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build fulfillment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The order id doubles as the idempotency key on the partner side.
	req.Header.Set("Idempotency-Key", payload.OrderID.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call fulfillment API: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusConflict:
		// Already submitted under the same idempotency key.
		return nil
	default:
		return fmt.Errorf("fulfillment API error: %s: %s", resp.Status, readErrorBody(resp.Body))
	}
}

func readErrorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
