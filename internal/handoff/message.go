// Package handoff composes the WhatsApp order handoff message and deep link.
package handoff

import (
	"fmt"
	"strings"
	"time"

	"github.com/glow24organics/storefront-backend/pkg/enums"

	"github.com/glow24organics/storefront-backend/internal/checkout"
)

const notProvided = "Not provided"

func orValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return notProvided
	}
	return value
}

func methodLabel(method enums.PaymentMethod) string {
	if method == enums.PaymentMethodCOD {
		return "Cash on Delivery"
	}
	return "UPI/Online Payment"
}

// formatDateEnIN renders d/m/yyyy the way the storefront always has.
func formatDateEnIN(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// formatTimeEnIN renders a 12-hour clock with a lowercase meridiem.
func formatTimeEnIN(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "am"
	if t.Hour() >= 12 {
		meridiem = "pm"
	}
	return fmt.Sprintf("%d:%02d:%02d %s", hour, t.Minute(), t.Second(), meridiem)
}

// ComposeMessage renders the full WhatsApp order message. Every customer
// field falls back to "Not provided" so the merchant always sees a complete
// template.
func ComposeMessage(info checkout.CheckoutInfo, now time.Time) string {
	var b strings.Builder

	b.WriteString("🛍️ *NEW ORDER FROM GLOW24 ORGANICS*\n\n")
	b.WriteString(fmt.Sprintf("📋 *Order ID:* %s\n\n", orValue(info.OrderID)))

	b.WriteString("👤 *CUSTOMER DETAILS:*\n")
	b.WriteString(fmt.Sprintf("Name: %s\n", orValue(info.CustomerName)))
	b.WriteString(fmt.Sprintf("Email: %s\n", orValue(info.CustomerEmail)))
	b.WriteString(fmt.Sprintf("Phone: %s\n\n", orValue(info.CustomerPhone)))

	b.WriteString("📍 *SHIPPING ADDRESS:*\n")
	b.WriteString(fmt.Sprintf("%s\n", orValue(info.Address)))
	b.WriteString(fmt.Sprintf("City: %s\n", orValue(info.City)))
	b.WriteString(fmt.Sprintf("State: %s\n", orValue(info.State)))
	b.WriteString(fmt.Sprintf("Pincode: %s\n\n", orValue(info.Pincode)))

	b.WriteString("🛒 *ORDER ITEMS:*\n")
	for i, item := range info.Items {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, item.Name))
		b.WriteString(fmt.Sprintf("   Quantity: %d\n", item.Quantity))
		b.WriteString(fmt.Sprintf("   Price: ₹%s\n", item.Price))
		b.WriteString(fmt.Sprintf("   Subtotal: ₹%s\n\n", item.Subtotal()))
	}

	b.WriteString(fmt.Sprintf("💰 *ORDER TOTAL: ₹%s*\n\n", info.GrandTotal))
	b.WriteString(fmt.Sprintf("💳 *Payment Method:* %s\n\n", methodLabel(info.PaymentMethod)))

	b.WriteString(fmt.Sprintf("📅 *Order Date:* %s\n", formatDateEnIN(now)))
	b.WriteString(fmt.Sprintf("⏰ *Order Time:* %s\n\n", formatTimeEnIN(now)))

	b.WriteString("✅ *Please confirm this order and provide delivery timeline.*\n\n")
	b.WriteString("Thank you for choosing Glow24 Organics! 🌿")

	return b.String()
}

// DeepLink builds the wa.me URL that opens WhatsApp with the message filled
// in.
func DeepLink(number, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, EncodeComponent(message))
}
