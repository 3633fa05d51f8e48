package checkout

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"

	"github.com/glow24organics/storefront-backend/internal/cart"
	"github.com/glow24organics/storefront-backend/internal/storage"
)

// CheckoutInfo is the handover snapshot written at submission and read by the
// payment and COD sessions.
type CheckoutInfo struct {
	OrderID       string              `json:"orderId"`
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail"`
	CustomerPhone string              `json:"customerPhone"`
	Address       string              `json:"address"`
	City          string              `json:"city"`
	State         string              `json:"state"`
	Pincode       string              `json:"pincode"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	ShippingCost  decimal.Decimal     `json:"shippingCost"`
	GrandTotal    decimal.Decimal     `json:"grandTotal"`
	Items         []cart.Item         `json:"items"`
}

// SaveCheckoutInfo persists the snapshot for the downstream payment flows.
func SaveCheckoutInfo(ctx context.Context, store storage.Store, sessionID string, info CheckoutInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode checkout info")
	}
	return store.Set(ctx, sessionID, storage.KeyCheckoutInfo, string(raw))
}

// LoadCheckoutInfo reads the snapshot. A missing or malformed snapshot means
// the session never completed checkout, reported as not found.
func LoadCheckoutInfo(ctx context.Context, store storage.Store, sessionID string) (*CheckoutInfo, error) {
	raw, ok, err := store.Get(ctx, sessionID, storage.KeyCheckoutInfo)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no submitted checkout for session")
	}

	var info CheckoutInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no submitted checkout for session")
	}
	return &info, nil
}
