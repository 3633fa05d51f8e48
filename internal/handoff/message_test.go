package handoff

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/glow24organics/storefront-backend/pkg/config"
	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
	"github.com/glow24organics/storefront-backend/pkg/logger"

	"github.com/glow24organics/storefront-backend/internal/cart"
	"github.com/glow24organics/storefront-backend/internal/checkout"
	"github.com/glow24organics/storefront-backend/internal/storage"
)

func sampleInfo() checkout.CheckoutInfo {
	return checkout.CheckoutInfo{
		OrderID:       "a4f7c2d1",
		CustomerName:  "Priya Raman",
		CustomerEmail: "priya@example.com",
		CustomerPhone: "9876543210",
		Address:       "12 Cross St",
		City:          "Coimbatore",
		State:         "Tamil Nadu",
		Pincode:       "641001",
		PaymentMethod: enums.PaymentMethodQRCode,
		Subtotal:      decimal.NewFromInt(598),
		ShippingCost:  decimal.NewFromInt(100),
		GrandTotal:    decimal.NewFromInt(698),
		Items: []cart.Item{
			{Name: "Hair Oil", Quantity: 2, Price: decimal.NewFromInt(299)},
		},
	}
}

func TestComposeMessageStructure(t *testing.T) {
	now := time.Date(2026, 8, 31, 17, 4, 5, 0, time.UTC)
	msg := ComposeMessage(sampleInfo(), now)

	wantLines := []string{
		"🛍️ *NEW ORDER FROM GLOW24 ORGANICS*",
		"📋 *Order ID:* a4f7c2d1",
		"Name: Priya Raman",
		"Email: priya@example.com",
		"Phone: 9876543210",
		"City: Coimbatore",
		"Pincode: 641001",
		"1. Hair Oil",
		"   Quantity: 2",
		"   Price: ₹299",
		"   Subtotal: ₹598",
		"💰 *ORDER TOTAL: ₹698*",
		"💳 *Payment Method:* UPI/Online Payment",
		"📅 *Order Date:* 31/8/2026",
		"⏰ *Order Time:* 5:04:05 pm",
		"Thank you for choosing Glow24 Organics! 🌿",
	}
	for _, line := range wantLines {
		if !strings.Contains(msg, line) {
			t.Errorf("message missing %q", line)
		}
	}
}

func TestComposeMessageFallbacks(t *testing.T) {
	info := checkout.CheckoutInfo{
		PaymentMethod: enums.PaymentMethodCOD,
		GrandTotal:    decimal.NewFromInt(99),
	}
	msg := ComposeMessage(info, time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC))

	for _, line := range []string{
		"Name: Not provided",
		"Email: Not provided",
		"Phone: Not provided",
		"City: Not provided",
		"State: Not provided",
		"Pincode: Not provided",
		"💳 *Payment Method:* Cash on Delivery",
		"📅 *Order Date:* 2/1/2026",
		"⏰ *Order Time:* 9:00:00 am",
	} {
		if !strings.Contains(msg, line) {
			t.Errorf("message missing %q", line)
		}
	}
}

func TestEncodeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "Hello%20World"},
		{"a+b", "a%2Bb"},
		{"line\nbreak", "line%0Abreak"},
		{"₹299", "%E2%82%B9299"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"100%", "100%25"},
	}
	for _, tc := range tests {
		if got := EncodeComponent(tc.in); got != tc.want {
			t.Errorf("EncodeComponent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeepLink(t *testing.T) {
	url := DeepLink("+919363717744", "New Order")
	if url != "https://wa.me/+919363717744?text=New%20Order" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestServiceCompose(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	svc, err := NewService(store, config.MerchantConfig{WhatsAppNumber: "+919363717744"}, nil, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	// no submitted checkout yet
	_, err = svc.Compose(ctx, "sess")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := checkout.SaveCheckoutInfo(ctx, store, "sess", sampleInfo()); err != nil {
		t.Fatalf("seed info: %v", err)
	}

	handoff, err := svc.Compose(ctx, "sess")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.HasPrefix(handoff.URL, "https://wa.me/+919363717744?text=") {
		t.Fatalf("unexpected url: %s", handoff.URL)
	}
	if !strings.Contains(handoff.Message, "Priya Raman") {
		t.Fatal("message missing customer name")
	}
}
