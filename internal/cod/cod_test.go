package cod

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
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

func TestDeliveryDays(t *testing.T) {
	tests := []struct {
		pincode string
		want    int
	}{
		{"641001", 641001%3 + 2},
		{"641002", 641002%3 + 2},
		{"600001", 600001%3 + 2},
		{"", 3},
		{"abc", 3},
	}
	for _, tc := range tests {
		if got := DeliveryDays(tc.pincode); got != tc.want {
			t.Errorf("DeliveryDays(%q) = %d, want %d", tc.pincode, got, tc.want)
		}
	}
}

func TestSimulateTrackingDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	first := SimulateTracking("order-abc", "641001", now)
	second := SimulateTracking("order-abc", "641001", now)

	if first.CurrentStage != second.CurrentStage {
		t.Fatal("tracking must be deterministic per order id")
	}
	if len(first.Stages) != 5 {
		t.Fatalf("expected 5 stages, got %d", len(first.Stages))
	}

	// the first stage is always cleared, the last never is for a fresh order
	if !first.Stages[0].Completed || first.Stages[0].Timestamp == nil {
		t.Fatalf("order placed stage should be completed: %+v", first.Stages[0])
	}
	if first.Stages[4].Completed {
		t.Fatal("delivered stage must not be completed on a fresh order")
	}

	wantDays := 641001%3 + 2
	if first.DeliveryDays != wantDays {
		t.Fatalf("delivery days = %d, want %d", first.DeliveryDays, wantDays)
	}
	if !first.EstimatedDelivery.Equal(now.AddDate(0, 0, wantDays)) {
		t.Fatalf("estimated delivery = %s", first.EstimatedDelivery)
	}
}

type recordingCart struct {
	mu      sync.Mutex
	cleared int
}

func (r *recordingCart) Clear(context.Context, string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared++
	return nil
}

type recordingOrders struct {
	mu      sync.Mutex
	updates []enums.OrderStatus
}

func (r *recordingOrders) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus, _ *string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, status)
	return &models.Order{ID: id, Status: status}, nil
}

type codFixture struct {
	store   *storage.MemoryStore
	cart    *recordingCart
	orders  *recordingOrders
	orderID uuid.UUID
	svc     Service
}

func newCODFixture(t *testing.T) *codFixture {
	t.Helper()

	f := &codFixture{
		store:   storage.NewMemoryStore(),
		cart:    &recordingCart{},
		orders:  &recordingOrders{},
		orderID: uuid.New(),
	}

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(f.store, f.cart, f.orders, config.PaymentConfig{VerificationDelay: 0}, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	f.svc = svc
	return f
}

func (f *codFixture) seedCheckout(t *testing.T, method enums.PaymentMethod) {
	t.Helper()
	info := checkout.CheckoutInfo{
		OrderID:       f.orderID.String(),
		CustomerName:  "Priya Raman",
		Address:       "12 Cross St",
		City:          "Coimbatore",
		State:         "Tamil Nadu",
		Pincode:       "641001",
		PaymentMethod: method,
		GrandTotal:    decimal.NewFromInt(450),
		Items:         []cart.Item{{Name: "Hair Oil", Quantity: 1, Price: decimal.NewFromInt(450)}},
	}
	if err := checkout.SaveCheckoutInfo(context.Background(), f.store, "sess", info); err != nil {
		t.Fatalf("seed checkout info: %v", err)
	}
}

func TestPreview(t *testing.T) {
	f := newCODFixture(t)
	f.seedCheckout(t, enums.PaymentMethodCOD)

	overview, err := f.svc.Preview(context.Background(), "sess")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if overview.OrderID != f.orderID.String() {
		t.Fatalf("order id = %s", overview.OrderID)
	}
	if overview.ShippingAddress != "12 Cross St, Coimbatore, Tamil Nadu" {
		t.Fatalf("address = %q", overview.ShippingAddress)
	}
	if len(overview.Tracking.Stages) != 5 {
		t.Fatalf("expected tracking stages, got %+v", overview.Tracking)
	}
}

func TestPreviewRejectsQRCheckout(t *testing.T) {
	f := newCODFixture(t)
	f.seedCheckout(t, enums.PaymentMethodQRCode)

	_, err := f.svc.Preview(context.Background(), "sess")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestConfirmSettlesSession(t *testing.T) {
	ctx := context.Background()
	f := newCODFixture(t)
	f.seedCheckout(t, enums.PaymentMethodCOD)

	confirmation, err := f.svc.Confirm(ctx, "sess")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	wantDays := 641001%3 + 2
	if confirmation.DeliveryDays != wantDays {
		t.Fatalf("delivery days = %d, want %d", confirmation.DeliveryDays, wantDays)
	}
	if !strings.Contains(confirmation.Message, "Your order has been placed") {
		t.Fatalf("unexpected message: %q", confirmation.Message)
	}

	for key, want := range map[string]string{
		storage.KeyOrderConfirmed: "true",
		storage.KeyPaymentMethod:  "cod",
	} {
		value, ok, _ := f.store.Get(ctx, "sess", key)
		if !ok || value != want {
			t.Fatalf("storage %s = %q (ok=%v), want %q", key, value, ok, want)
		}
	}

	if f.cart.cleared != 1 {
		t.Fatalf("cart cleared %d times", f.cart.cleared)
	}
	if len(f.orders.updates) != 1 || f.orders.updates[0] != enums.OrderStatusPending {
		t.Fatalf("order updates = %v", f.orders.updates)
	}
}

func TestConfirmIsRejectedTwice(t *testing.T) {
	ctx := context.Background()
	f := newCODFixture(t)
	f.seedCheckout(t, enums.PaymentMethodCOD)

	if _, err := f.svc.Confirm(ctx, "sess"); err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	_, err := f.svc.Confirm(ctx, "sess")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on double confirm, got %v", err)
	}
}

func TestConfirmWithoutCheckout(t *testing.T) {
	f := newCODFixture(t)

	_, err := f.svc.Confirm(context.Background(), "sess")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
