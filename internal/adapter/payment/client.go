package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

// Gateway exposes outbound operations against the payment provider.
type Gateway interface {
	CreateCheckout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutSession, error)
	CompletedSince(ctx context.Context, since time.Time) ([]model.CompletedCheckout, error)
}

// Client implements Gateway via Stripe Checkout.
type Client struct {
	sessions  session.Client
	serverURL string
	logger    *slog.Logger
}

// NewClient creates client using the default Stripe API backend.
func NewClient(key, serverURL string, logger *slog.Logger) *Client {
	return NewClientWithBackend(stripe.GetBackend(stripe.APIBackend), key, serverURL, logger)
}

// NewClientWithBackend creates client over an explicit backend.
func NewClientWithBackend(backend stripe.Backend, key, serverURL string, logger *slog.Logger) *Client {
	return &Client{
		sessions:  session.Client{B: backend, Key: key},
		serverURL: serverURL,
		logger:    logger,
	}
}

// CreateCheckout opens a hosted payment page for one ticket.
func (c *Client) CreateCheckout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutSession, error) {
	unitAmount := req.UnitAmount
	if req.Free {
		unitAmount = 0
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.serverURL + "/profile"),
		CancelURL:  stripe.String(c.serverURL + "/"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(unitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.EventTitle),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataEventID, req.EventID)
	params.AddMetadata(MetadataBuyerID, req.BuyerID)
	params.AddMetadata(MetadataIsFree, strconv.FormatBool(req.Free))

	s, err := c.sessions.New(params)
	if err != nil {
		return nil, providerError(err)
	}
	return &model.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// CompletedSince lists completed checkout sessions created after since.
// Sessions without reconciliation metadata are logged and skipped.
func (c *Client) CompletedSince(ctx context.Context, since time.Time) ([]model.CompletedCheckout, error) {
	params := &stripe.CheckoutSessionListParams{
		Status: stripe.String(string(stripe.CheckoutSessionStatusComplete)),
		CreatedRange: &stripe.RangeQueryParams{
			GreaterThanOrEqual: since.Unix(),
		},
	}
	params.Context = ctx

	var result []model.CompletedCheckout
	iter := c.sessions.List(params)
	for iter.Next() {
		s := iter.CheckoutSession()
		if s.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
			continue
		}
		checkout, err := CompletedCheckoutFromSession(s)
		if err != nil {
			c.logger.Warn("skip checkout session", slog.String("session_id", s.ID), slog.String("error", err.Error()))
			continue
		}
		result = append(result, checkout)
	}
	if err := iter.Err(); err != nil {
		return nil, providerError(err)
	}
	return result, nil
}

func providerError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf("%w: %s (%s)", domainErrors.ErrPaymentProvider, stripeErr.Msg, stripeErr.Code)
	}
	return fmt.Errorf("%w: %v", domainErrors.ErrPaymentProvider, err)
}
