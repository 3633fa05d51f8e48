package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glow24organics/storefront-backend/pkg/config"
	"github.com/glow24organics/storefront-backend/pkg/enums"
)

// RemoteClient mirrors order writes to the upstream order API. Callers treat
// every method as best-effort; local rows stay authoritative.
type RemoteClient struct {
	baseURL string
	http    *http.Client
}

// NewRemoteClient builds the upstream client. An empty base URL disables it.
func NewRemoteClient(cfg config.OrderAPIConfig) *RemoteClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether remote mirroring is configured.
func (c *RemoteClient) Enabled() bool {
	return c != nil && c.baseURL != ""
}

type remoteOrderPayload struct {
	OrderID         string            `json:"orderId"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerPhone   string            `json:"customerPhone"`
	ShippingAddress string            `json:"shippingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
	ShippingCost    float64           `json:"shippingCost"`
	GrandTotal      float64           `json:"grandTotal"`
	Items           []remoteOrderItem `json:"items"`
}

type remoteOrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CreateOrder mirrors a freshly submitted order upstream.
func (c *RemoteClient) CreateOrder(ctx context.Context, order remoteOrderPayload) error {
	return c.post(ctx, http.MethodPost, "/orders", order)
}

// UpdateStatus mirrors a status transition upstream.
func (c *RemoteClient) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	path := fmt.Sprintf("/orders/%s/status", orderID)
	return c.post(ctx, http.MethodPatch, path, map[string]string{"status": string(status)})
}

func (c *RemoteClient) post(ctx context.Context, method, path string, body any) error {
	if !c.Enabled() {
		return nil
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call order api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("order api returned %d for %s %s", resp.StatusCode, method, path)
	}
	return nil
}
