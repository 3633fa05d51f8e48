package enums

import "fmt"

// OrderStatus is the local order lifecycle. Orders are drafted while the
// checkout form is open, pending once submitted, and paid/confirmed after the
// payment or COD session completes.
type OrderStatus string

const (
	OrderStatusDrafted   OrderStatus = "drafted"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusDrafted,
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusConfirmed,
}

func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts the raw string to OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
