package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/glow24organics/storefront-backend/pkg/logger"
)

const sessionHeader = "X-Checkout-Session"

type sessionCtxKey struct{}

// CheckoutSession resolves the caller's checkout session id from the
// X-Checkout-Session header, minting a fresh one when the header is absent
// or not a valid UUID. The resolved id is echoed back on the response so
// clients can persist it.
func CheckoutSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionHeader)
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionHeader, sessionID)

			ctx := WithSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCheckoutSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession returns a context carrying the checkout session id.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sessionID)
}

// SessionFromContext returns the checkout session id attached by
// CheckoutSession, or an empty string when the middleware did not run.
func SessionFromContext(ctx context.Context) string {
	if sessionID, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return sessionID
	}
	return ""
}
