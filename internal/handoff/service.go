package handoff

import (
	"context"
	"fmt"
	"time"

	"github.com/glow24organics/storefront-backend/pkg/config"
	"github.com/glow24organics/storefront-backend/pkg/logger"
	"github.com/glow24organics/storefront-backend/pkg/metrics"

	"github.com/glow24organics/storefront-backend/internal/checkout"
	"github.com/glow24organics/storefront-backend/internal/storage"
)

// Handoff is the composed WhatsApp handoff for a submitted checkout.
type Handoff struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// Service renders the WhatsApp handoff from the session's checkout snapshot.
type Service interface {
	Compose(ctx context.Context, sessionID string) (*Handoff, error)
}

type service struct {
	store    storage.Store
	merchant config.MerchantConfig
	metrics  *metrics.PaymentMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the handoff service. Metrics may be nil.
func NewService(store storage.Store, merchant config.MerchantConfig, paymentMetrics *metrics.PaymentMetrics, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if merchant.WhatsAppNumber == "" {
		return nil, fmt.Errorf("merchant whatsapp number required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:    store,
		merchant: merchant,
		metrics:  paymentMetrics,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) Compose(ctx context.Context, sessionID string) (*Handoff, error) {
	info, err := checkout.LoadCheckoutInfo(ctx, s.store, sessionID)
	if err != nil {
		return nil, err
	}

	message := ComposeMessage(*info, s.now())
	s.metrics.IncHandoff(string(info.PaymentMethod))
	s.logg.Info(s.logg.WithOrderID(ctx, info.OrderID), "whatsapp handoff composed")

	return &Handoff{
		Message: message,
		URL:     DeepLink(s.merchant.WhatsAppNumber, message),
	}, nil
}
