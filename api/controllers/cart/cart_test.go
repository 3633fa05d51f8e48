package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glow24organics/storefront-backend/api/middleware"
	cartsvc "github.com/glow24organics/storefront-backend/internal/cart"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
)

type stubCartService struct {
	items       []cartsvc.Item
	err         error
	lastReplace []cartsvc.Item
	cleared     bool
}

func (s *stubCartService) Get(ctx context.Context, sessionID string) ([]cartsvc.Item, error) {
	return s.items, s.err
}

func (s *stubCartService) Replace(ctx context.Context, sessionID string, items []cartsvc.Item) ([]cartsvc.Item, error) {
	s.lastReplace = items
	if s.err != nil {
		return nil, s.err
	}
	return items, nil
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string) error {
	s.cleared = true
	return s.err
}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithSession(req.Context(), uuid.NewString()))
}

func TestCartFetchSuccess(t *testing.T) {
	items := []cartsvc.Item{{Name: "Hair Oil", Quantity: 2, Price: decimal.NewFromInt(499)}}
	handler := CartFetch(&stubCartService{items: items}, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Items []cartsvc.Item `json:"items"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].Name != "Hair Oil" {
		t.Fatalf("unexpected items: %+v", envelope.Data.Items)
	}
}

func TestCartFetchMissingSession(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}

func TestCartReplaceSuccess(t *testing.T) {
	service := &stubCartService{}
	handler := CartReplace(service, nil)

	body := `{"items":[{"name":"Face Serum","quantity":1,"price":"1299"}]}`
	req := withSession(httptest.NewRequest(http.MethodPut, "/api/v1/cart", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(service.lastReplace) != 1 {
		t.Fatalf("expected 1 item passed to service, got %d", len(service.lastReplace))
	}
	if service.lastReplace[0].Name != "Face Serum" || service.lastReplace[0].Quantity != 1 {
		t.Fatalf("unexpected item: %+v", service.lastReplace[0])
	}
}

func TestCartReplaceRejectsBadQuantity(t *testing.T) {
	handler := CartReplace(&stubCartService{}, nil)

	body := `{"items":[{"name":"Face Serum","quantity":0,"price":"1299"}]}`
	req := withSession(httptest.NewRequest(http.MethodPut, "/api/v1/cart", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartReplaceServiceValidation(t *testing.T) {
	service := &stubCartService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart item 1: price must not be negative")}
	handler := CartReplace(service, nil)

	body := `{"items":[{"name":"Face Serum","quantity":1,"price":"-2"}]}`
	req := withSession(httptest.NewRequest(http.MethodPut, "/api/v1/cart", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "cart item 1: price must not be negative" {
		t.Fatalf("unexpected message: %s", envelope.Error.Message)
	}
}

func TestCartClear(t *testing.T) {
	service := &stubCartService{}
	handler := CartClear(service, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !service.cleared {
		t.Fatal("expected service.Clear to be called")
	}
}
