package test

import (
	"context"
	"net/http"
	"time"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

// EventhubFacadeStub provides controllable behaviour for every HTTP endpoint.
type EventhubFacadeStub struct {
	ParseTokenFn      func(string) (string, error)
	PaymentWebhookFn  func(context.Context, []byte, string) (*model.WebhookResult, error)
	IdentityWebhookFn func(context.Context, []byte, http.Header) (*model.WebhookResult, error)
	IdentityEnabled   bool
	CheckoutFn        func(context.Context, string, string) (*model.CheckoutSession, error)
	OrdersFn          func(context.Context, string, int, int) (*model.OrderPage, error)
	RegistrantsFn     func(context.Context, string, string, string) ([]model.OrderView, error)
	CreateEventFn     func(context.Context, string, model.Event) (*model.Event, error)
	EventFn           func(context.Context, string) (*model.Event, error)
	MeFn              func(context.Context, string) (*model.User, error)
	CompleteProfileFn func(context.Context, string, model.Profile) (*model.User, error)
	HealthCheckFn     func(context.Context) error
}

// ParseToken accepts every token as user_1 unless overridden.
func (s EventhubFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return "user_1", nil
}

// HandlePaymentWebhook reports an ignored delivery unless overridden.
func (s EventhubFacadeStub) HandlePaymentWebhook(ctx context.Context, payload []byte, signature string) (*model.WebhookResult, error) {
	if s.PaymentWebhookFn != nil {
		return s.PaymentWebhookFn(ctx, payload, signature)
	}
	return &model.WebhookResult{Kind: "unknown", Outcome: model.WebhookOutcomeIgnored}, nil
}

// HandleIdentityWebhook reports an ignored delivery unless overridden.
func (s EventhubFacadeStub) HandleIdentityWebhook(ctx context.Context, payload []byte, headers http.Header) (*model.WebhookResult, error) {
	if s.IdentityWebhookFn != nil {
		return s.IdentityWebhookFn(ctx, payload, headers)
	}
	return &model.WebhookResult{Kind: "unknown", Outcome: model.WebhookOutcomeIgnored}, nil
}

// IdentityWebhookEnabled returns the configured flag.
func (s EventhubFacadeStub) IdentityWebhookEnabled() bool {
	return s.IdentityEnabled
}

// Checkout returns a fixed session unless overridden.
func (s EventhubFacadeStub) Checkout(ctx context.Context, buyerID, eventID string) (*model.CheckoutSession, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, buyerID, eventID)
	}
	return &model.CheckoutSession{ID: "cs_test", URL: "https://checkout.example.com/cs_test"}, nil
}

// Orders returns an empty page unless overridden.
func (s EventhubFacadeStub) Orders(ctx context.Context, buyerID string, page, limit int) (*model.OrderPage, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, buyerID, page, limit)
	}
	return &model.OrderPage{Items: []model.OrderView{}}, nil
}

// Registrants returns no orders unless overridden.
func (s EventhubFacadeStub) Registrants(ctx context.Context, organizerID, eventID, search string) ([]model.OrderView, error) {
	if s.RegistrantsFn != nil {
		return s.RegistrantsFn(ctx, organizerID, eventID, search)
	}
	return []model.OrderView{}, nil
}

// CreateEvent echoes the event with a fixed id unless overridden.
func (s EventhubFacadeStub) CreateEvent(ctx context.Context, organizerID string, event model.Event) (*model.Event, error) {
	if s.CreateEventFn != nil {
		return s.CreateEventFn(ctx, organizerID, event)
	}
	event.ID = "evt_test"
	event.OrganizerID = organizerID
	return &event, nil
}

// Event returns a fixed event unless overridden.
func (s EventhubFacadeStub) Event(ctx context.Context, id string) (*model.Event, error) {
	if s.EventFn != nil {
		return s.EventFn(ctx, id)
	}
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	return &model.Event{ID: id, Title: "Test event", StartsAt: start, EndsAt: start.Add(time.Hour), IsFree: true}, nil
}

// Me returns a bare user unless overridden.
func (s EventhubFacadeStub) Me(ctx context.Context, userID string) (*model.User, error) {
	if s.MeFn != nil {
		return s.MeFn(ctx, userID)
	}
	return &model.User{Identity: model.Identity{ID: userID}}, nil
}

// CompleteProfile stores nothing and returns the completed user unless overridden.
func (s EventhubFacadeStub) CompleteProfile(ctx context.Context, userID string, profile model.Profile) (*model.User, error) {
	if s.CompleteProfileFn != nil {
		return s.CompleteProfileFn(ctx, userID, profile)
	}
	return &model.User{Identity: model.Identity{ID: userID}, Profile: profile, HasCompletedProfile: true}, nil
}

// HealthCheck reports healthy unless overridden.
func (s EventhubFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthCheckFn != nil {
		return s.HealthCheckFn(ctx)
	}
	return nil
}
