// Package orders owns the local order record and mirrors writes to the
// upstream order API when one is configured.
package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glow24organics/storefront-backend/pkg/db/models"
	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
	"github.com/glow24organics/storefront-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ItemInput snapshots one cart line for order creation.
type ItemInput struct {
	Name           string
	Quantity       int
	UnitPricePaise int64
}

// CreateInput carries everything needed to persist a submitted checkout.
type CreateInput struct {
	SessionID       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	Pincode         string
	PaymentMethod   enums.PaymentMethod
	SubtotalPaise   int64
	ShippingPaise   int64
	TotalPaise      int64
	Items           []ItemInput
}

// Service defines order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, transactionID *string) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetLatestBySession(ctx context.Context, sessionID string) (*models.Order, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	remote *RemoteClient
	logg   *logger.Logger
}

// NewService builds the order service with the required dependencies. The
// remote client may be disabled but never nil.
func NewService(repo Repository, tx txRunner, remote *RemoteClient, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if remote == nil {
		return nil, fmt.Errorf("remote order client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, remote: remote, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if input.SessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order has no items")
	}

	order := &models.Order{
		ID:              uuid.New(),
		SessionID:       input.SessionID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		ShippingAddress: input.ShippingAddress,
		Pincode:         input.Pincode,
		PaymentMethod:   input.PaymentMethod,
		SubtotalPaise:   input.SubtotalPaise,
		ShippingPaise:   input.ShippingPaise,
		TotalPaise:      input.TotalPaise,
		Status:          enums.OrderStatusDrafted,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPricePaise: item.UnitPricePaise,
		})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	s.mirrorCreate(ctx, order)
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, transactionID *string) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	if err := s.repo.UpdateStatus(ctx, id, status, transactionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	s.mirrorStatus(ctx, id, status)

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return order, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) GetLatestBySession(ctx context.Context, sessionID string) (*models.Order, error) {
	order, err := s.repo.FindLatestBySession(ctx, sessionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// mirrorCreate pushes the new order upstream. Failures are logged only.
func (s *service) mirrorCreate(ctx context.Context, order *models.Order) {
	if !s.remote.Enabled() {
		return
	}

	payload := remoteOrderPayload{
		OrderID:         order.ID.String(),
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   string(order.PaymentMethod),
		ShippingCost:    order.Total().Sub(order.Subtotal()).InexactFloat64(),
		GrandTotal:      order.Total().InexactFloat64(),
	}
	for _, item := range order.Items {
		payload.Items = append(payload.Items, remoteOrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.UnitPrice().InexactFloat64(),
		})
	}

	if err := s.remote.CreateOrder(ctx, payload); err != nil {
		s.logg.Warn(s.logg.WithOrderID(ctx, order.ID.String()), "mirroring order upstream failed: "+err.Error())
	}
}

// mirrorStatus pushes a status transition upstream. Failures are logged only.
func (s *service) mirrorStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) {
	if !s.remote.Enabled() {
		return
	}
	if err := s.remote.UpdateStatus(ctx, id, status); err != nil {
		s.logg.Warn(s.logg.WithOrderID(ctx, id.String()), "mirroring order status upstream failed: "+err.Error())
	}
}
