package model

import "github.com/shopspring/decimal"

// CompletedCheckout is the parsed content of a payment-completion notification.
type CompletedCheckout struct {
	SessionID   string
	AmountTotal int64
	Free        bool
	EventID     string
	BuyerID     string
}

// TotalAmount converts the minor-unit amount to a major-unit decimal string.
func (c CompletedCheckout) TotalAmount() string {
	if c.Free || c.AmountTotal == 0 {
		return "0"
	}
	return decimal.New(c.AmountTotal, -2).String()
}

// CheckoutSession is a hosted payment page created for a buyer.
type CheckoutSession struct {
	ID  string
	URL string
}

// WebhookOutcome classifies how an inbound notification was handled.
type WebhookOutcome string

const (
	WebhookOutcomeCreated   WebhookOutcome = "created"
	WebhookOutcomeDuplicate WebhookOutcome = "duplicate"
	WebhookOutcomeIgnored   WebhookOutcome = "ignored"
	WebhookOutcomeRejected  WebhookOutcome = "rejected"
	WebhookOutcomeFailed    WebhookOutcome = "failed"
)

// PaymentEventCheckoutCompleted is the only payment event kind that produces orders.
const PaymentEventCheckoutCompleted = "checkout.session.completed"

// PaymentEvent is a verified notification from the payment provider.
// Checkout is set only for completed checkout sessions.
type PaymentEvent struct {
	ID       string
	Kind     string
	Checkout *CompletedCheckout
}

// CheckoutRequest describes a single-ticket hosted payment page.
type CheckoutRequest struct {
	EventID    string
	EventTitle string
	BuyerID    string
	UnitAmount int64
	Free       bool
}

// WebhookResult describes how a webhook delivery was handled.
type WebhookResult struct {
	Kind    string
	Outcome WebhookOutcome
	Order   *Order
}
