package checkout

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
	checkoutsvc "github.com/glow24organics/storefront-backend/internal/checkout"
	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
)

type stubCheckoutService struct {
	state       *checkoutsvc.State
	submission  *checkoutsvc.Submission
	err         error
	lastProfile checkoutsvc.Profile
	lastField   string
	lastValue   string
}

func (s *stubCheckoutService) Hydrate(ctx context.Context, sessionID string, profile checkoutsvc.Profile) (*checkoutsvc.State, error) {
	s.lastProfile = profile
	return s.state, s.err
}

func (s *stubCheckoutService) Get(ctx context.Context, sessionID string) (*checkoutsvc.State, error) {
	return s.state, s.err
}

func (s *stubCheckoutService) SetField(ctx context.Context, sessionID, field, value string) (*checkoutsvc.State, error) {
	s.lastField = field
	s.lastValue = value
	return s.state, s.err
}

func (s *stubCheckoutService) Submit(ctx context.Context, sessionID string) (*checkoutsvc.Submission, error) {
	return s.submission, s.err
}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithSession(req.Context(), uuid.NewString()))
}

func TestCheckoutHydratePassesProfile(t *testing.T) {
	service := &stubCheckoutService{state: &checkoutsvc.State{}}
	handler := CheckoutHydrate(service, nil)

	body := `{"name":"Priya","email":"priya@example.com","phone":"9876543210","address":"12 Gandhi Road"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/hydrate", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if service.lastProfile.Name != "Priya" || service.lastProfile.Phone != "9876543210" {
		t.Fatalf("unexpected profile: %+v", service.lastProfile)
	}
}

func TestCheckoutSetField(t *testing.T) {
	service := &stubCheckoutService{state: &checkoutsvc.State{}}
	handler := CheckoutSetField(service, nil)

	body := `{"field":"city","value":"Coimbatore"}`
	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/checkout/field", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if service.lastField != "city" || service.lastValue != "Coimbatore" {
		t.Fatalf("unexpected field write: %s=%s", service.lastField, service.lastValue)
	}
}

func TestCheckoutSetFieldRequiresField(t *testing.T) {
	handler := CheckoutSetField(&stubCheckoutService{}, nil)

	body := `{"value":"Coimbatore"}`
	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/checkout/field", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutSubmitCreated(t *testing.T) {
	submission := &checkoutsvc.Submission{
		OrderID:    uuid.NewString(),
		NextStep:   "payment",
		GrandTotal: decimal.NewFromInt(1047),
		Method:     enums.PaymentMethodQRCode,
	}
	handler := CheckoutSubmit(&stubCheckoutService{submission: submission}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/submit", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data checkoutsvc.Submission `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.NextStep != "payment" {
		t.Fatalf("unexpected next step: %s", envelope.Data.NextStep)
	}
}

func TestCheckoutSubmitValidationMessagePassthrough(t *testing.T) {
	service := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "Please fill in your name")}
	handler := CheckoutSubmit(service, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/submit", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "Please fill in your name" {
		t.Fatalf("unexpected message: %s", envelope.Error.Message)
	}
}

func TestCheckoutSubmitEmptyCartConflict(t *testing.T) {
	service := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")}
	handler := CheckoutSubmit(service, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/submit", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}
