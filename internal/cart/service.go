package cart

import (
	"context"
	"encoding/json"
	"fmt"

	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
	"github.com/glow24organics/storefront-backend/pkg/logger"

	"github.com/glow24organics/storefront-backend/internal/storage"
)

// Service owns the persisted cart for a checkout session.
type Service interface {
	Get(ctx context.Context, sessionID string) ([]Item, error)
	Replace(ctx context.Context, sessionID string, items []Item) ([]Item, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store storage.Store
	logg  *logger.Logger
}

// NewService wires the cart service onto the session store.
func NewService(store storage.Store, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{store: store, logg: logg}, nil
}

// Get loads the persisted cart. A missing or malformed payload reads as an
// empty cart rather than an error so a poisoned entry cannot wedge checkout.
func (s *service) Get(ctx context.Context, sessionID string) ([]Item, error) {
	raw, ok, err := s.store.Get(ctx, sessionID, storage.KeyCartItems)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []Item{}, nil
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logg.Warn(ctx, "discarding malformed cart payload")
		return []Item{}, nil
	}
	return items, nil
}

func (s *service) Replace(ctx context.Context, sessionID string, items []Item) ([]Item, error) {
	if err := ValidateItems(items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, sessionID, storage.KeyCartItems, string(raw)); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Remove(ctx, sessionID, storage.KeyCartItems)
}
