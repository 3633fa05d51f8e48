// Package cod runs the cash-on-delivery confirmation flow: order preview
// with simulated tracking, then a confirm step that settles the session.
package cod

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glow24organics/storefront-backend/pkg/config"
	"github.com/glow24organics/storefront-backend/pkg/db/models"
	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
	"github.com/glow24organics/storefront-backend/pkg/logger"

	"github.com/glow24organics/storefront-backend/internal/cart"
	"github.com/glow24organics/storefront-backend/internal/checkout"
	"github.com/glow24organics/storefront-backend/internal/storage"
)

type cartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

type orderUpdater interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, transactionID *string) (*models.Order, error)
}

// Overview is the COD confirmation screen payload.
type Overview struct {
	OrderID         string          `json:"orderId"`
	Items           []cart.Item     `json:"items"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
	ShippingAddress string          `json:"shippingAddress"`
	Pincode         string          `json:"pincode"`
	Tracking        Tracking        `json:"tracking"`
}

// Confirmation is returned after the order is confirmed.
type Confirmation struct {
	OrderID           string    `json:"orderId"`
	DeliveryDays      int       `json:"deliveryDays"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
	Message           string    `json:"message"`
}

// Service owns the COD confirmation flow for a session.
type Service interface {
	Preview(ctx context.Context, sessionID string) (*Overview, error)
	Confirm(ctx context.Context, sessionID string) (*Confirmation, error)
}

type service struct {
	store        storage.Store
	cart         cartClearer
	orders       orderUpdater
	confirmDelay time.Duration
	logg         *logger.Logger
	now          func() time.Time
}

// NewService wires the COD service. The confirm delay simulates courier
// booking latency and may be zero.
func NewService(store storage.Store, cartSvc cartClearer, orderSvc orderUpdater, cfg config.PaymentConfig, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:        store,
		cart:         cartSvc,
		orders:       orderSvc,
		confirmDelay: cfg.VerificationDelay,
		logg:         logg,
		now:          time.Now,
	}, nil
}

func (s *service) Preview(ctx context.Context, sessionID string) (*Overview, error) {
	info, err := s.loadCODCheckout(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	address := fmt.Sprintf("%s, %s, %s", info.Address, info.City, info.State)
	return &Overview{
		OrderID:         info.OrderID,
		Items:           info.Items,
		GrandTotal:      info.GrandTotal,
		ShippingAddress: address,
		Pincode:         info.Pincode,
		Tracking:        SimulateTracking(info.OrderID, info.Pincode, s.now()),
	}, nil
}

// Confirm settles the COD session: after a short simulated delay it flags the
// session confirmed, clears the cart and moves the order to pending. The
// order status mirror is best-effort; a second confirm is rejected.
func (s *service) Confirm(ctx context.Context, sessionID string) (*Confirmation, error) {
	info, err := s.loadCODCheckout(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if confirmed, _, _ := s.store.Get(ctx, sessionID, storage.KeyOrderConfirmed); confirmed == "true" {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already confirmed")
	}

	if s.confirmDelay > 0 {
		timer := time.NewTimer(s.confirmDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, ctx.Err(), "confirmation interrupted")
		}
	}

	ctx = s.logg.WithOrderID(ctx, info.OrderID)

	writes := map[string]string{
		storage.KeyOrderConfirmed: "true",
		storage.KeyPaymentMethod:  string(enums.PaymentMethodCOD),
	}
	for key, value := range writes {
		if err := s.store.Set(ctx, sessionID, key, value); err != nil {
			return nil, err
		}
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		s.logg.Error(ctx, "clearing cart after cod confirmation failed", err)
	}

	if id, parseErr := uuid.Parse(info.OrderID); parseErr == nil {
		if _, err := s.orders.UpdateStatus(ctx, id, enums.OrderStatusPending, nil); err != nil {
			s.logg.Error(ctx, "marking cod order pending failed", err)
		}
	} else {
		s.logg.Error(ctx, "cod session carries invalid order id", parseErr)
	}

	days := DeliveryDays(info.Pincode)
	s.logg.Info(ctx, "cod order confirmed")

	return &Confirmation{
		OrderID:           info.OrderID,
		DeliveryDays:      days,
		EstimatedDelivery: s.now().AddDate(0, 0, days),
		Message: fmt.Sprintf(
			"Thank you! Your order has been placed. Our team will deliver it within %d days based on your location.", days),
	}, nil
}

func (s *service) loadCODCheckout(ctx context.Context, sessionID string) (*checkout.CheckoutInfo, error) {
	info, err := checkout.LoadCheckoutInfo(ctx, s.store, sessionID)
	if err != nil {
		return nil, err
	}
	if info.PaymentMethod != enums.PaymentMethodCOD {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout was not submitted for cash on delivery")
	}
	return info, nil
}
