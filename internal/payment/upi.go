package payment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/glow24organics/storefront-backend/internal/handoff"
)

// DefaultNote is the transaction note shown in the payer's UPI app.
const DefaultNote = "Payment for Order"

// BuildUPIURI renders the upi://pay deep link encoded into the QR code. The
// payee id is embedded as-is; name and note are percent-encoded per field.
// Parameter order is fixed so the rendered QR stays byte-stable for a given
// amount.
func BuildUPIURI(payeeID, payeeName string, amount decimal.Decimal, note string) string {
	if note == "" {
		note = DefaultNote
	}
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR&tn=%s",
		payeeID,
		handoff.EncodeComponent(payeeName),
		amount.String(),
		handoff.EncodeComponent(note),
	)
}
