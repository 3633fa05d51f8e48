package payment

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
	paymentsvc "github.com/glow24organics/storefront-backend/internal/payment"
	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
)

type stubPaymentService struct {
	view    *paymentsvc.View
	err     error
	lastTxn string
}

func (s *stubPaymentService) Start(ctx context.Context, sessionID string) (*paymentsvc.View, error) {
	return s.view, s.err
}

func (s *stubPaymentService) Get(ctx context.Context, sessionID string) (*paymentsvc.View, error) {
	return s.view, s.err
}

func (s *stubPaymentService) Submit(ctx context.Context, sessionID, transactionID string) (*paymentsvc.View, error) {
	s.lastTxn = transactionID
	return s.view, s.err
}

func (s *stubPaymentService) Reset(ctx context.Context, sessionID string) (*paymentsvc.View, error) {
	return s.view, s.err
}

func (s *stubPaymentService) Shutdown() {}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithSession(req.Context(), uuid.NewString()))
}

func TestPaymentStartCreated(t *testing.T) {
	view := &paymentsvc.View{
		SessionID: uuid.NewString(),
		OrderID:   uuid.NewString(),
		Amount:    decimal.NewFromInt(1047),
		Countdown: 300,
		Status:    enums.PaymentStatusPending,
	}
	handler := PaymentStart(&stubPaymentService{view: view}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/payment", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data paymentsvc.View `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Countdown != 300 || envelope.Data.Status != enums.PaymentStatusPending {
		t.Fatalf("unexpected view: %+v", envelope.Data)
	}
}

func TestPaymentStartCODConflict(t *testing.T) {
	service := &stubPaymentService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "checkout was submitted for cash on delivery")}
	handler := PaymentStart(service, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/payment", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestPaymentFetchNotFound(t *testing.T) {
	service := &stubPaymentService{err: pkgerrors.New(pkgerrors.CodeNotFound, "no active payment session")}
	handler := PaymentFetch(service, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/payment", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestPaymentSubmitPassesTransactionID(t *testing.T) {
	service := &stubPaymentService{view: &paymentsvc.View{Status: enums.PaymentStatusCompleted}}
	handler := PaymentSubmit(service, nil)

	body := `{"transactionId":"123456789012"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/payment/submit", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if service.lastTxn != "123456789012" {
		t.Fatalf("unexpected transaction id: %s", service.lastTxn)
	}
}

func TestPaymentSubmitValidationMessage(t *testing.T) {
	service := &stubPaymentService{err: pkgerrors.New(pkgerrors.CodeValidation, "Please enter a transaction ID")}
	handler := PaymentSubmit(service, nil)

	body := `{"transactionId":""}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/payment/submit", strings.NewReader(body)))
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
	if envelope.Error.Message != "Please enter a transaction ID" {
		t.Fatalf("unexpected message: %s", envelope.Error.Message)
	}
}

func TestPaymentResetMissingSession(t *testing.T) {
	handler := PaymentReset(&stubPaymentService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/reset", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
