package checkout

import (
	"fmt"
	"strings"

	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
)

// FormValues is the persisted checkout form snapshot. Field names follow the
// storefront's storage payload so older persisted snapshots keep parsing.
type FormValues struct {
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Address       string              `json:"address"`
	City          string              `json:"city"`
	State         string              `json:"state"`
	Pincode       string              `json:"pincode"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
}

// formFieldOrder fixes validation order so the first missing field reported is
// stable.
var formFieldOrder = []string{
	"name", "email", "phone", "address", "city", "state", "pincode", "paymentMethod",
}

// NewFormValues returns the default form state. QR payment is preselected.
func NewFormValues() FormValues {
	return FormValues{PaymentMethod: enums.PaymentMethodQRCode}
}

func (f FormValues) fieldValue(name string) string {
	switch name {
	case "name":
		return f.Name
	case "email":
		return f.Email
	case "phone":
		return f.Phone
	case "address":
		return f.Address
	case "city":
		return f.City
	case "state":
		return f.State
	case "pincode":
		return f.Pincode
	case "paymentMethod":
		return string(f.PaymentMethod)
	}
	return ""
}

// setField updates one named field. Unknown fields and invalid payment
// methods are validation errors.
func (f *FormValues) setField(name, value string) error {
	switch name {
	case "name":
		f.Name = value
	case "email":
		f.Email = value
	case "phone":
		f.Phone = value
	case "address":
		f.Address = value
	case "city":
		f.City = value
	case "state":
		f.State = value
	case "pincode":
		f.Pincode = value
	case "paymentMethod":
		method, err := enums.ParsePaymentMethod(value)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method").
				WithDetails(map[string]any{"field": name, "value": value})
		}
		f.PaymentMethod = method
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout field").
			WithDetails(map[string]any{"field": name})
	}
	return nil
}

// Validate checks every field is filled, reporting the first empty one with
// the storefront's message wording.
func (f FormValues) Validate() error {
	for _, name := range formFieldOrder {
		if strings.TrimSpace(f.fieldValue(name)) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Please fill in your %s", name)).
				WithDetails(map[string]any{"field": name})
		}
	}
	return nil
}

// ShippingAddress renders the single-line address used on orders.
func (f FormValues) ShippingAddress() string {
	return fmt.Sprintf("%s, %s, %s - %s", f.Address, f.City, f.State, f.Pincode)
}

// hasAnyIdentity reports whether the snapshot is worth persisting.
func (f FormValues) hasAnyIdentity() bool {
	return f.Name != "" || f.Email != "" || f.Phone != "" || f.Address != ""
}
