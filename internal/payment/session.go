package payment

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/glow24organics/storefront-backend/pkg/enums"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
	"github.com/glow24organics/storefront-backend/pkg/metrics"
)

// View is the read-only snapshot returned to the storefront.
type View struct {
	SessionID     string              `json:"sessionId"`
	OrderID       string              `json:"orderId"`
	Amount        decimal.Decimal     `json:"amount"`
	UPIURI        string              `json:"upiUri"`
	PayeeID       string              `json:"payeeId"`
	Countdown     int                 `json:"countdown"`
	Status        enums.PaymentStatus `json:"status"`
	Expired       bool                `json:"expired"`
	TransactionID string              `json:"transactionId,omitempty"`
	Error         string              `json:"error,omitempty"`
}

// Session holds the state of one QR payment attempt. Each session owns a
// one-second ticker that counts the payment window down while the status is
// pending; the ticker stops when the session is closed.
type Session struct {
	sessionID string
	orderID   string
	amount    decimal.Decimal
	upiURI    string
	payeeID   string

	mu            sync.Mutex
	countdown     int
	initial       int
	status        enums.PaymentStatus
	transactionID string
	lastError     string
	expired       bool
	closed        bool
	generation    int

	metrics  *metrics.PaymentMetrics
	stop     chan struct{}
	stopOnce sync.Once
}

func newSession(sessionID, orderID string, amount decimal.Decimal, upiURI, payeeID string, countdown int, m *metrics.PaymentMetrics) *Session {
	return &Session{
		sessionID: sessionID,
		orderID:   orderID,
		amount:    amount,
		upiURI:    upiURI,
		payeeID:   payeeID,
		countdown: countdown,
		initial:   countdown,
		status:    enums.PaymentStatusPending,
		metrics:   m,
		stop:      make(chan struct{}),
	}
}

// start launches the countdown ticker goroutine.
func (s *Session) start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.tick()
			case <-s.stop:
				return
			}
		}
	}()
}

// tick decrements the countdown. The clock only runs while the attempt is
// pending, mirroring how the payment screen freezes during verification.
func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.expired || s.status != enums.PaymentStatusPending {
		return
	}
	if s.countdown > 0 {
		s.countdown--
	}
	if s.countdown == 0 {
		s.expired = true
		s.metrics.IncExpired()
	}
}

// Close stops the ticker and marks the session dead. In-flight verification
// results are dropped afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.generation++
	s.mu.Unlock()
	s.stopOnce.Do(func() { close(s.stop) })
}

// Reset restores the full payment window and clears the previous attempt.
func (s *Session) Reset() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.countdown = s.initial
	s.expired = false
	s.status = enums.PaymentStatusPending
	s.transactionID = ""
	s.lastError = ""
	s.generation++
	return s.viewLocked()
}

// beginVerification validates the submitted id and transitions the session to
// processing. The returned generation ties the eventual result back to this
// attempt; a reset or close in between makes the result stale.
func (s *Session) beginVerification(raw string) (normalized string, generation int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", 0, pkgerrors.New(pkgerrors.CodeNotFound, "payment session closed")
	}
	if s.expired {
		return "", 0, pkgerrors.New(pkgerrors.CodeStateConflict, "Session expired. Please reset the timer to continue.")
	}
	if s.status == enums.PaymentStatusProcessing {
		return "", 0, pkgerrors.New(pkgerrors.CodeConflict, "verification already in progress")
	}
	if s.status == enums.PaymentStatusCompleted {
		return "", 0, pkgerrors.New(pkgerrors.CodeStateConflict, "payment already completed")
	}
	if err := ValidateTransactionID(raw); err != nil {
		s.lastError = pkgerrors.As(err).Message()
		return "", 0, err
	}

	s.status = enums.PaymentStatusProcessing
	s.lastError = ""
	return NormalizeTransactionID(raw), s.generation, nil
}

// completeVerification applies the verifier outcome. It reports false when
// the attempt went stale (reset or close raced the verifier), in which case
// the session state is untouched.
func (s *Session) completeVerification(generation int, transactionID string, result Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || generation != s.generation {
		return false
	}

	if result.Success {
		s.status = enums.PaymentStatusCompleted
		s.transactionID = transactionID
		s.lastError = ""
	} else {
		s.status = enums.PaymentStatusFailed
		s.lastError = result.Message
	}
	return true
}

// failVerification records a verifier error for the attempt.
func (s *Session) failVerification(generation int, message string) bool {
	return s.completeVerification(generation, "", Result{Success: false, Message: message})
}

// View returns the current snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	return View{
		SessionID:     s.sessionID,
		OrderID:       s.orderID,
		Amount:        s.amount,
		UPIURI:        s.upiURI,
		PayeeID:       s.payeeID,
		Countdown:     s.countdown,
		Status:        s.status,
		Expired:       s.expired,
		TransactionID: s.transactionID,
		Error:         s.lastError,
	}
}
