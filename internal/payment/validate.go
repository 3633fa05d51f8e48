package payment

import (
	"regexp"
	"strings"

	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
)

// Transaction id shapes accepted from UPI apps. Ordered from most to least
// specific; matching any one is enough.
var transactionIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[0-9]{12}$`),            // UPI reference number
	regexp.MustCompile(`(?i)^[A-Z0-9]{10,20}$`),  // bank alphanumeric reference
	regexp.MustCompile(`(?i)^pay_[A-Za-z0-9]{14}$`),
	regexp.MustCompile(`(?i)^txn_[A-Za-z0-9]{10,}$`),
	regexp.MustCompile(`^[0-9]{6,16}$`),
}

// NormalizeTransactionID trims and uppercases the id for storage.
func NormalizeTransactionID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// MatchesTransactionIDPattern reports whether the trimmed id fits any known
// shape. Matching is case-insensitive; normalization happens separately.
func MatchesTransactionIDPattern(raw string) bool {
	id := strings.TrimSpace(raw)
	for _, pattern := range transactionIDPatterns {
		if pattern.MatchString(id) {
			return true
		}
	}
	return false
}

// ValidateTransactionID rejects empty and malformed ids with the messages the
// storefront shows verbatim.
func ValidateTransactionID(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Please enter a transaction ID")
	}
	if !MatchesTransactionIDPattern(raw) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Please enter a valid transaction ID (minimum 6 characters)")
	}
	return nil
}
