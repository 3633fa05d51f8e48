package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem snapshots a cart line at submission time.
type OrderItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	Name           string    `gorm:"column:name;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	UnitPricePaise int64     `gorm:"column:unit_price_paise;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

// UnitPrice returns the per-unit price in rupees.
func (i OrderItem) UnitPrice() decimal.Decimal {
	return decimal.New(i.UnitPricePaise, -2)
}

// LineSubtotal returns quantity times unit price in rupees.
func (i OrderItem) LineSubtotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}
