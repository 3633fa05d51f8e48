package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PaymentMetrics records checkout/payment session activity.
type PaymentMetrics struct {
	verifications  *prometheus.CounterVec
	expiries       prometheus.Counter
	handoffs       *prometheus.CounterVec
	submittedForms prometheus.Counter
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_verification_total",
		Help: "Transaction-id verification attempts by outcome.",
	}, []string{"outcome"})
	expiries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_session_expired_total",
		Help: "QR payment sessions whose countdown reached zero.",
	})
	handoffs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_handoff_total",
		Help: "WhatsApp handoff links composed, by payment method.",
	}, []string{"method"})
	submitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_form_submitted_total",
		Help: "Checkout forms submitted successfully.",
	})
	reg.MustRegister(verifications, expiries, handoffs, submitted)
	return &PaymentMetrics{
		verifications:  verifications,
		expiries:       expiries,
		handoffs:       handoffs,
		submittedForms: submitted,
	}
}

// ObserveVerification records one verification attempt outcome
// (accepted, rejected, errored).
func (p *PaymentMetrics) ObserveVerification(outcome string) {
	if p == nil || p.verifications == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	p.verifications.WithLabelValues(outcome).Inc()
}

// IncExpired counts a session countdown reaching zero.
func (p *PaymentMetrics) IncExpired() {
	if p == nil || p.expiries == nil {
		return
	}
	p.expiries.Inc()
}

// IncHandoff counts a composed WhatsApp handoff link.
func (p *PaymentMetrics) IncHandoff(method string) {
	if p == nil || p.handoffs == nil {
		return
	}
	if method == "" {
		method = "unknown"
	}
	p.handoffs.WithLabelValues(method).Inc()
}

// IncFormSubmitted counts a successful checkout form submission.
func (p *PaymentMetrics) IncFormSubmitted() {
	if p == nil || p.submittedForms == nil {
		return
	}
	p.submittedForms.Inc()
}
