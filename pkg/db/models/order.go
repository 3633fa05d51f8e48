package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glow24organics/storefront-backend/pkg/enums"
)

// Order is the local record for a submitted checkout. A row exists for every
// order the UI ever shows; the remote order API is best-effort only.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	SessionID       string              `gorm:"column:session_id;not null;index"`
	CustomerName    string              `gorm:"column:customer_name;not null"`
	CustomerEmail   string              `gorm:"column:customer_email"`
	CustomerPhone   string              `gorm:"column:customer_phone"`
	ShippingAddress string              `gorm:"column:shipping_address;not null"`
	Pincode         string              `gorm:"column:pincode;not null"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;not null"`
	TransactionID   *string             `gorm:"column:transaction_id"`
	SubtotalPaise   int64               `gorm:"column:subtotal_paise;not null"`
	ShippingPaise   int64               `gorm:"column:shipping_paise;not null"`
	TotalPaise      int64               `gorm:"column:total_paise;not null"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:'drafted'"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// Total returns the grand total in rupees.
func (o Order) Total() decimal.Decimal {
	return decimal.New(o.TotalPaise, -2)
}

// Subtotal returns the pre-shipping total in rupees.
func (o Order) Subtotal() decimal.Decimal {
	return decimal.New(o.SubtotalPaise, -2)
}
