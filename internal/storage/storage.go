// Package storage provides the flat string-keyed store that holds per-session
// checkout state. Every consumer treats reads as possibly absent or malformed
// and falls back to empty defaults.
package storage

import "context"

// Canonical keys for per-session checkout state.
const (
	KeyCartItems      = "cartItems"
	KeyFormData       = "checkoutFormData"
	KeyCheckoutInfo   = "checkoutInfo"
	KeyOrderConfirmed = "orderConfirmed"
	KeyPaymentMethod  = "paymentMethod"
	KeyTransactionID  = "transactionId"
)

// Store is the storage-access abstraction injected into the checkout state
// owners. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Remove(ctx context.Context, sessionID, key string) error
}

// ClearSession removes every checkout key for the session. Missing keys are
// not an error.
func ClearSession(ctx context.Context, store Store, sessionID string) error {
	keys := []string{
		KeyCartItems,
		KeyFormData,
		KeyCheckoutInfo,
		KeyOrderConfirmed,
		KeyPaymentMethod,
		KeyTransactionID,
	}
	for _, key := range keys {
		if err := store.Remove(ctx, sessionID, key); err != nil {
			return err
		}
	}
	return nil
}
