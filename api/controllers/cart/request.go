package cart

import (
	cartsvc "github.com/glow24organics/storefront-backend/internal/cart"

	"github.com/shopspring/decimal"
)

type replaceCartRequest struct {
	Items []replaceCartItem `json:"items"`
}

type replaceCartItem struct {
	Name     string          `json:"name" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
	Price    decimal.Decimal `json:"price"`
}

func toItems(payload replaceCartRequest) []cartsvc.Item {
	items := make([]cartsvc.Item, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, cartsvc.Item{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return items
}
