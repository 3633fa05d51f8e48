package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Result is the outcome of a verification attempt.
type Result struct {
	Success bool
	Message string
}

// Verifier checks a submitted transaction id against the payment rail. The
// production implementation is simulated until a PSP webhook integration
// lands.
type Verifier interface {
	Verify(ctx context.Context, transactionID string, amount decimal.Decimal) (Result, error)
}

// SimulatedVerifier approves any well-formed transaction id after a fixed
// delay that mimics a gateway round trip.
type SimulatedVerifier struct {
	Delay time.Duration
}

func (v SimulatedVerifier) Verify(ctx context.Context, transactionID string, _ decimal.Decimal) (Result, error) {
	if v.Delay > 0 {
		timer := time.NewTimer(v.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	if !MatchesTransactionIDPattern(transactionID) {
		return Result{
			Success: false,
			Message: "Payment verification failed. Please check your transaction ID.",
		}, nil
	}
	return Result{Success: true, Message: "Payment verified successfully!"}, nil
}
