// Package payment runs the QR payment session: UPI deep link, countdown
// window, transaction id validation and verification.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glow24organics/storefront-backend/pkg/config"
	"github.com/glow24organics/storefront-backend/pkg/db/models"
	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
	"github.com/glow24organics/storefront-backend/pkg/logger"
	"github.com/glow24organics/storefront-backend/pkg/metrics"

	"github.com/glow24organics/storefront-backend/internal/checkout"
	"github.com/glow24organics/storefront-backend/internal/storage"
)

type cartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

type orderUpdater interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, transactionID *string) (*models.Order, error)
}

// Service manages QR payment sessions keyed by checkout session.
type Service interface {
	Start(ctx context.Context, sessionID string) (*View, error)
	Get(ctx context.Context, sessionID string) (*View, error)
	Submit(ctx context.Context, sessionID, transactionID string) (*View, error)
	Reset(ctx context.Context, sessionID string) (*View, error)
	Shutdown()
}

type service struct {
	store    storage.Store
	cart     cartClearer
	orders   orderUpdater
	verifier Verifier
	merchant config.MerchantConfig
	cfg      config.PaymentConfig
	metrics  *metrics.PaymentMetrics
	logg     *logger.Logger

	registry     *registry
	tickInterval time.Duration
}

// NewService wires the payment service. Metrics may be nil.
func NewService(
	store storage.Store,
	cartSvc cartClearer,
	orderSvc orderUpdater,
	verifier Verifier,
	merchant config.MerchantConfig,
	cfg config.PaymentConfig,
	paymentMetrics *metrics.PaymentMetrics,
	logg *logger.Logger,
) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	if verifier == nil {
		return nil, fmt.Errorf("verifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.CountdownSeconds <= 0 {
		return nil, fmt.Errorf("countdown must be positive")
	}
	return &service{
		store:        store,
		cart:         cartSvc,
		orders:       orderSvc,
		verifier:     verifier,
		merchant:     merchant,
		cfg:          cfg,
		metrics:      paymentMetrics,
		logg:         logg,
		registry:     newRegistry(),
		tickInterval: time.Second,
	}, nil
}

// Start opens a fresh payment session for the submitted checkout, replacing
// any previous attempt for the same checkout session.
func (s *service) Start(ctx context.Context, sessionID string) (*View, error) {
	info, err := checkout.LoadCheckoutInfo(ctx, s.store, sessionID)
	if err != nil {
		return nil, err
	}
	if info.PaymentMethod != enums.PaymentMethodQRCode {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout was submitted for cash on delivery")
	}

	uri := BuildUPIURI(s.merchant.UPIPayeeID, s.merchant.UPIPayeeName, info.GrandTotal, DefaultNote)
	session := newSession(sessionID, info.OrderID, info.GrandTotal, uri, s.merchant.UPIPayeeID, s.cfg.CountdownSeconds, s.metrics)
	session.start(s.tickInterval)
	s.registry.put(sessionID, session)

	s.logg.Info(s.logg.WithOrderID(ctx, info.OrderID), "payment session started")
	view := session.View()
	return &view, nil
}

func (s *service) Get(_ context.Context, sessionID string) (*View, error) {
	session, ok := s.registry.get(sessionID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active payment session")
	}
	view := session.View()
	return &view, nil
}

// Submit runs one verification attempt. Only a single attempt may be in
// flight; results landing after a reset or close are dropped.
func (s *service) Submit(ctx context.Context, sessionID, transactionID string) (*View, error) {
	session, ok := s.registry.get(sessionID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active payment session")
	}

	normalized, generation, err := session.beginVerification(transactionID)
	if err != nil {
		return nil, err
	}

	result, verifyErr := s.verifier.Verify(ctx, transactionID, session.amount)
	if verifyErr != nil {
		if session.failVerification(generation, "An error occurred during verification. Please try again.") {
			s.metrics.ObserveVerification("error")
		}
		view := session.View()
		return &view, nil
	}

	applied := session.completeVerification(generation, normalized, result)
	if !applied {
		// the attempt went stale while the verifier was running
		s.logg.Warn(ctx, "dropping stale verification result")
		view := session.View()
		return &view, nil
	}

	if result.Success {
		s.metrics.ObserveVerification("accepted")
		s.finalizePayment(ctx, sessionID, session.orderID, normalized)
	} else {
		s.metrics.ObserveVerification("rejected")
	}

	view := session.View()
	return &view, nil
}

func (s *service) Reset(_ context.Context, sessionID string) (*View, error) {
	session, ok := s.registry.get(sessionID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active payment session")
	}
	view := session.Reset()
	return &view, nil
}

// Shutdown closes every active session and stops their tickers.
func (s *service) Shutdown() {
	s.registry.closeAll()
}

// finalizePayment records the completed payment: session flags, cart clear
// and the order status transition. Storage and order failures are logged but
// do not undo the completed verification.
func (s *service) finalizePayment(ctx context.Context, sessionID, orderID, transactionID string) {
	ctx = s.logg.WithOrderID(ctx, orderID)

	writes := map[string]string{
		storage.KeyOrderConfirmed: "true",
		storage.KeyPaymentMethod:  string(enums.PaymentMethodQRCode),
		storage.KeyTransactionID:  transactionID,
	}
	for key, value := range writes {
		if err := s.store.Set(ctx, sessionID, key, value); err != nil {
			s.logg.Error(ctx, "persisting payment confirmation failed", err)
		}
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		s.logg.Error(ctx, "clearing cart after payment failed", err)
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		s.logg.Error(ctx, "payment session carries invalid order id", err)
		return
	}
	if _, err := s.orders.UpdateStatus(ctx, id, enums.OrderStatusPaid, &transactionID); err != nil {
		s.logg.Error(ctx, "marking order paid failed", err)
		return
	}
	s.logg.Info(ctx, "payment verified and order marked paid")
}
