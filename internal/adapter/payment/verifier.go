package payment

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

// Metadata keys attached to checkout sessions.
const (
	MetadataEventID = "eventId"
	MetadataBuyerID = "buyerId"
	MetadataIsFree  = "isFree"
)

// Verifier authenticates payment-provider webhook deliveries.
type Verifier struct {
	secret string
}

// NewVerifier builds verifier for the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify checks the signature over the raw payload and decodes the event.
// Completed checkout sessions are parsed into CompletedCheckout.
func (v *Verifier) Verify(payload []byte, signature string) (*model.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrSignatureInvalid, err)
	}

	result := &model.PaymentEvent{ID: event.ID, Kind: string(event.Type)}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return result, nil
	}

	if event.Data == nil || len(event.Data.Raw) == 0 {
		return nil, fmt.Errorf("%w: empty event object", domainErrors.ErrMalformedEvent)
	}
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: decode checkout session: %v", domainErrors.ErrMalformedEvent, err)
	}
	checkout, err := CompletedCheckoutFromSession(&session)
	if err != nil {
		return nil, err
	}
	result.Checkout = &checkout
	return result, nil
}

// CompletedCheckoutFromSession extracts reconciliation input from a checkout session.
func CompletedCheckoutFromSession(s *stripe.CheckoutSession) (model.CompletedCheckout, error) {
	if s == nil || s.ID == "" {
		return model.CompletedCheckout{}, fmt.Errorf("%w: missing session id", domainErrors.ErrMalformedEvent)
	}
	eventID := s.Metadata[MetadataEventID]
	buyerID := s.Metadata[MetadataBuyerID]
	if eventID == "" || buyerID == "" {
		return model.CompletedCheckout{}, fmt.Errorf("%w: session %s lacks eventId or buyerId", domainErrors.ErrMalformedEvent, s.ID)
	}
	free, _ := strconv.ParseBool(s.Metadata[MetadataIsFree])
	return model.CompletedCheckout{
		SessionID:   s.ID,
		AmountTotal: s.AmountTotal,
		Free:        free || s.AmountTotal == 0,
		EventID:     eventID,
		BuyerID:     buyerID,
	}, nil
}
