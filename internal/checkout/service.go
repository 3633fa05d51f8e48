// Package checkout owns the persisted checkout form, the delivery and payment
// eligibility rules, and order submission.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/glow24organics/storefront-backend/pkg/config"
	"github.com/glow24organics/storefront-backend/pkg/db/models"
	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
	"github.com/glow24organics/storefront-backend/pkg/logger"
	"github.com/glow24organics/storefront-backend/pkg/metrics"

	"github.com/glow24organics/storefront-backend/internal/cart"
	"github.com/glow24organics/storefront-backend/internal/orders"
	"github.com/glow24organics/storefront-backend/internal/storage"
)

type cartReader interface {
	Get(ctx context.Context, sessionID string) ([]cart.Item, error)
}

type orderCreator interface {
	Create(ctx context.Context, input orders.CreateInput) (*models.Order, error)
}

// Profile carries saved account details used to prefill an empty form.
type Profile struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// State is the full checkout view returned to the storefront.
type State struct {
	Form          FormValues     `json:"form"`
	Eligibility   Eligibility    `json:"eligibility"`
	MethodChoices []MethodChoice `json:"methodChoices"`
}

// Submission is returned when the form is accepted and an order is created.
type Submission struct {
	OrderID    string              `json:"orderId"`
	NextStep   string              `json:"nextStep"`
	GrandTotal decimal.Decimal     `json:"grandTotal"`
	Method     enums.PaymentMethod `json:"paymentMethod"`
}

// Service owns the checkout form lifecycle for a session.
type Service interface {
	Hydrate(ctx context.Context, sessionID string, profile Profile) (*State, error)
	Get(ctx context.Context, sessionID string) (*State, error)
	SetField(ctx context.Context, sessionID, field, value string) (*State, error)
	Submit(ctx context.Context, sessionID string) (*Submission, error)
}

type service struct {
	store   storage.Store
	cart    cartReader
	orders  orderCreator
	rules   shippingRules
	metrics *metrics.PaymentMetrics
	logg    *logger.Logger
}

// NewService wires the checkout service. Metrics may be nil.
func NewService(
	store storage.Store,
	cartSvc cartReader,
	orderSvc orderCreator,
	shipping config.ShippingConfig,
	paymentMetrics *metrics.PaymentMetrics,
	logg *logger.Logger,
) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:  store,
		cart:   cartSvc,
		orders: orderSvc,
		rules: shippingRules{
			freeMinimum: decimal.NewFromInt(int64(shipping.FreeShippingMinimum)),
			flatRate:    decimal.NewFromInt(int64(shipping.FlatRate)),
		},
		metrics: paymentMetrics,
		logg:    logg,
	}, nil
}

// Hydrate loads the stored form, falling back to profile prefill when no
// snapshot exists. A stored snapshot always wins over the profile.
func (s *service) Hydrate(ctx context.Context, sessionID string, profile Profile) (*State, error) {
	form, stored, err := s.loadForm(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !stored {
		form.Name = profile.Name
		form.Email = profile.Email
		form.Phone = profile.Phone
		form.Address = profile.Address
		if form.hasAnyIdentity() {
			if err := s.persistForm(ctx, sessionID, form); err != nil {
				return nil, err
			}
		}
	}

	return s.stateFor(ctx, sessionID, form)
}

func (s *service) Get(ctx context.Context, sessionID string) (*State, error) {
	form, _, err := s.loadForm(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.stateFor(ctx, sessionID, form)
}

// SetField applies a single field change, silently correcting cash on
// delivery back to QR payment when the city leaves the serviceable area, and
// persists the full snapshot write-through.
func (s *service) SetField(ctx context.Context, sessionID, field, value string) (*State, error) {
	form, _, err := s.loadForm(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := form.setField(field, value); err != nil {
		return nil, err
	}
	s.enforceMethodGate(&form)

	if err := s.persistForm(ctx, sessionID, form); err != nil {
		return nil, err
	}
	return s.stateFor(ctx, sessionID, form)
}

// Submit validates the form, prices the cart and creates the local order. The
// caller routes to the QR or COD flow based on NextStep.
func (s *service) Submit(ctx context.Context, sessionID string) (*Submission, error) {
	form, _, err := s.loadForm(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.enforceMethodGate(&form)

	if err := form.Validate(); err != nil {
		return nil, err
	}

	items, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	subtotal := cart.Subtotal(items)
	elig := s.rules.evaluate(form.Pincode, form.City, subtotal)

	input := orders.CreateInput{
		SessionID:       sessionID,
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		CustomerPhone:   form.Phone,
		ShippingAddress: form.ShippingAddress(),
		Pincode:         form.Pincode,
		PaymentMethod:   form.PaymentMethod,
		SubtotalPaise:   toPaise(subtotal),
		ShippingPaise:   toPaise(elig.ShippingCost),
		TotalPaise:      toPaise(elig.GrandTotal),
	}
	for _, item := range items {
		input.Items = append(input.Items, orders.ItemInput{
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPricePaise: toPaise(item.Price),
		})
	}

	order, err := s.orders.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	// persist the accepted snapshot before handing over to the payment flow
	if err := s.persistForm(ctx, sessionID, form); err != nil {
		return nil, err
	}
	info := CheckoutInfo{
		OrderID:       order.ID.String(),
		CustomerName:  form.Name,
		CustomerEmail: form.Email,
		CustomerPhone: form.Phone,
		Address:       form.Address,
		City:          form.City,
		State:         form.State,
		Pincode:       form.Pincode,
		PaymentMethod: form.PaymentMethod,
		Subtotal:      subtotal,
		ShippingCost:  elig.ShippingCost,
		GrandTotal:    elig.GrandTotal,
		Items:         items,
	}
	if err := SaveCheckoutInfo(ctx, s.store, sessionID, info); err != nil {
		return nil, err
	}

	s.metrics.IncFormSubmitted()
	s.logg.Info(s.logg.WithOrderID(ctx, info.OrderID), "checkout submitted")

	nextStep := "payment"
	if form.PaymentMethod == enums.PaymentMethodCOD {
		nextStep = "cod"
	}
	return &Submission{
		OrderID:    info.OrderID,
		NextStep:   nextStep,
		GrandTotal: elig.GrandTotal,
		Method:     form.PaymentMethod,
	}, nil
}

// enforceMethodGate flips cash on delivery back to QR payment when the city
// no longer qualifies. The correction is silent.
func (s *service) enforceMethodGate(form *FormValues) {
	if form.PaymentMethod == enums.PaymentMethodCOD && !CODAvailable(form.City) {
		form.PaymentMethod = enums.PaymentMethodQRCode
	}
}

func (s *service) loadForm(ctx context.Context, sessionID string) (FormValues, bool, error) {
	raw, ok, err := s.store.Get(ctx, sessionID, storage.KeyFormData)
	if err != nil {
		return FormValues{}, false, err
	}
	if !ok || raw == "" {
		return NewFormValues(), false, nil
	}

	form := NewFormValues()
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		s.logg.Warn(ctx, "discarding malformed form snapshot")
		return NewFormValues(), false, nil
	}
	if !form.PaymentMethod.IsValid() {
		form.PaymentMethod = enums.PaymentMethodQRCode
	}
	return form, true, nil
}

func (s *service) persistForm(ctx context.Context, sessionID string, form FormValues) error {
	raw, err := json.Marshal(form)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode form snapshot")
	}
	return s.store.Set(ctx, sessionID, storage.KeyFormData, string(raw))
}

func (s *service) stateFor(ctx context.Context, sessionID string, form FormValues) (*State, error) {
	items, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &State{
		Form:          form,
		Eligibility:   s.rules.evaluate(form.Pincode, form.City, cart.Subtotal(items)),
		MethodChoices: methodChoices(form.City),
	}, nil
}

func toPaise(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
