package payment

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
)

func newTestSession(countdown int) *Session {
	return newSession("sess", "order-1", decimal.NewFromInt(450), "upi://pay?pa=x", "x@upi", countdown, nil)
}

func TestSessionTickCountsDownAndExpires(t *testing.T) {
	s := newTestSession(3)

	s.tick()
	s.tick()
	if view := s.View(); view.Countdown != 1 || view.Expired {
		t.Fatalf("unexpected view: %+v", view)
	}

	s.tick()
	view := s.View()
	if view.Countdown != 0 || !view.Expired {
		t.Fatalf("expected expiry at zero, got %+v", view)
	}

	// further ticks are no-ops
	s.tick()
	if view := s.View(); view.Countdown != 0 {
		t.Fatalf("countdown went below zero: %+v", view)
	}
}

func TestSessionTickPausesWhileProcessing(t *testing.T) {
	s := newTestSession(10)

	if _, _, err := s.beginVerification("123456789012"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	s.tick()
	if view := s.View(); view.Countdown != 10 {
		t.Fatalf("countdown should freeze during verification, got %d", view.Countdown)
	}
}

func TestSessionExpiredRejectsSubmission(t *testing.T) {
	s := newTestSession(1)
	s.tick()

	_, _, err := s.beginVerification("123456789012")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if appErr.Message() != "Session expired. Please reset the timer to continue." {
		t.Fatalf("unexpected message: %q", appErr.Message())
	}
}

func TestSessionResetRestoresWindow(t *testing.T) {
	s := newTestSession(2)
	s.tick()
	s.tick()
	if !s.View().Expired {
		t.Fatal("expected expired session")
	}

	view := s.Reset()
	if view.Expired || view.Countdown != 2 || view.Status != enums.PaymentStatusPending {
		t.Fatalf("reset view: %+v", view)
	}
	if view.TransactionID != "" || view.Error != "" {
		t.Fatalf("reset should clear attempt state: %+v", view)
	}
}

func TestSessionDuplicateSubmitRejected(t *testing.T) {
	s := newTestSession(100)

	if _, _, err := s.beginVerification("123456789012"); err != nil {
		t.Fatalf("begin: %v", err)
	}

	_, _, err := s.beginVerification("123456789012")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for in-flight verification, got %v", err)
	}
}

func TestSessionStaleResultDroppedAfterReset(t *testing.T) {
	s := newTestSession(100)

	normalized, generation, err := s.beginVerification("txn_abcdef1234")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	s.Reset()

	if applied := s.completeVerification(generation, normalized, Result{Success: true}); applied {
		t.Fatal("stale result must be dropped after reset")
	}
	if view := s.View(); view.Status != enums.PaymentStatusPending || view.TransactionID != "" {
		t.Fatalf("stale result mutated session: %+v", view)
	}
}

func TestSessionCompleteVerification(t *testing.T) {
	s := newTestSession(100)

	normalized, generation, err := s.beginVerification("txn_abcdef1234")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if normalized != "TXN_ABCDEF1234" {
		t.Fatalf("normalized = %q", normalized)
	}

	if !s.completeVerification(generation, normalized, Result{Success: true}) {
		t.Fatal("expected result to apply")
	}
	view := s.View()
	if view.Status != enums.PaymentStatusCompleted || view.TransactionID != "TXN_ABCDEF1234" {
		t.Fatalf("unexpected view: %+v", view)
	}

	// a completed session refuses further submissions
	_, _, err = s.beginVerification("123456789012")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestSessionFailedVerificationAllowsRetry(t *testing.T) {
	s := newTestSession(100)

	_, generation, err := s.beginVerification("123456789012")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	s.completeVerification(generation, "", Result{Success: false, Message: "Payment verification failed. Please check your transaction ID."})

	view := s.View()
	if view.Status != enums.PaymentStatusFailed || view.Error == "" {
		t.Fatalf("unexpected view: %+v", view)
	}

	// a failed attempt can be retried without a reset
	if _, _, err := s.beginVerification("123456789012"); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}
