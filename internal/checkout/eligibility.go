package checkout

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/glow24organics/storefront-backend/pkg/enums"
)

// deliveryZonePincodes is the serviceable Coimbatore pincode set. Zone
// eligibility drives shipping economics only; the COD gate keys off the city
// field instead.
var deliveryZonePincodes = map[string]struct{}{}

func init() {
	pincodes := []string{
		"641001", "641002", "641003", "641004", "641005", "641006", "641007",
		"641008", "641009", "641010", "641011", "641012", "641013", "641014",
		"641015", "641016", "641017", "641018", "641019", "641020", "641021",
		"641022", "641023", "641024", "641025", "641026", "641027", "641028",
		"641029", "641030", "641031", "641032", "641033", "641034", "641035",
		"641036", "641037", "641038", "641039", "641040", "641041", "641042",
		"641043", "641044", "641045", "641046", "641047", "641048", "641049",
		"641050", "641061", "641062", "641063", "641064", "641065", "641101",
		"641102", "641103", "641104", "641105", "641106", "641107", "641108",
		"641109", "641110", "641111", "641112", "641113", "641114", "641201",
		"641202", "641301", "641302", "641303", "641304", "641305", "641401",
		"641402", "641403", "641404", "641405", "641406", "641407",
	}
	for _, pin := range pincodes {
		deliveryZonePincodes[pin] = struct{}{}
	}
}

// InDeliveryZone reports whether the pincode is in the serviceable zone.
func InDeliveryZone(pincode string) bool {
	_, ok := deliveryZonePincodes[strings.TrimSpace(pincode)]
	return ok
}

// CODAvailable reports whether cash on delivery is offered for the city.
// Matching is a case-insensitive substring check, so "Coimbatore North" and
// "coimbatore" both qualify.
func CODAvailable(city string) bool {
	return strings.Contains(strings.ToLower(city), "coimbatore")
}

// Eligibility is the shipping and payment availability view for the current
// form state.
type Eligibility struct {
	InDeliveryZone bool            `json:"inDeliveryZone"`
	FreeShipping   bool            `json:"freeShipping"`
	CODAvailable   bool            `json:"codAvailable"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// MethodChoice describes one payment method option shown at checkout.
type MethodChoice struct {
	Method    enums.PaymentMethod `json:"method"`
	Available bool                `json:"available"`
	Reason    string              `json:"reason,omitempty"`
}

type shippingRules struct {
	freeMinimum decimal.Decimal
	flatRate    decimal.Decimal
}

// evaluate derives eligibility from the pincode, city and cart subtotal.
func (r shippingRules) evaluate(pincode, city string, subtotal decimal.Decimal) Eligibility {
	inZone := InDeliveryZone(pincode)
	free := inZone && subtotal.GreaterThanOrEqual(r.freeMinimum)

	shipping := r.flatRate
	if free {
		shipping = decimal.Zero
	}

	return Eligibility{
		InDeliveryZone: inZone,
		FreeShipping:   free,
		CODAvailable:   CODAvailable(city),
		ShippingCost:   shipping,
		Subtotal:       subtotal,
		GrandTotal:     subtotal.Add(shipping),
	}
}

// methodChoices lists the selectable payment methods for the city.
func methodChoices(city string) []MethodChoice {
	choices := []MethodChoice{
		{Method: enums.PaymentMethodQRCode, Available: true},
	}
	if CODAvailable(city) {
		choices = append(choices, MethodChoice{Method: enums.PaymentMethodCOD, Available: true})
	} else {
		choices = append(choices, MethodChoice{
			Method:    enums.PaymentMethodCOD,
			Available: false,
			Reason:    "Cash on delivery is available only in Coimbatore",
		})
	}
	return choices
}
