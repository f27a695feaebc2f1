package app

import (
	"context"
	"net/http"
	"time"

	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/usecase"
)

// TokenParser resolves API bearer tokens.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// HealthChecker pings the backing store.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CompletedCheckoutLister lists completed payment sessions.
type CompletedCheckoutLister interface {
	CompletedSince(ctx context.Context, since time.Time) ([]model.CompletedCheckout, error)
}

// EventhubFacade exposes use cases to the HTTP layer and the sweeper.
type EventhubFacade struct {
	tokens    TokenParser
	webhooks  *usecase.WebhookUseCase
	reconcile *usecase.ReconcileUseCase
	checkout  *usecase.CheckoutUseCase
	orders    *usecase.OrderQueryUseCase
	events    *usecase.EventUseCase
	users     *usecase.UserUseCase
	sessions  CompletedCheckoutLister
	health    HealthChecker
}

// FacadeDeps groups EventhubFacade collaborators.
type FacadeDeps struct {
	Tokens    TokenParser
	Webhooks  *usecase.WebhookUseCase
	Reconcile *usecase.ReconcileUseCase
	Checkout  *usecase.CheckoutUseCase
	Orders    *usecase.OrderQueryUseCase
	Events    *usecase.EventUseCase
	Users     *usecase.UserUseCase
	Sessions  CompletedCheckoutLister
	Health    HealthChecker
}

func NewEventhubFacade(d FacadeDeps) *EventhubFacade {
	return &EventhubFacade{
		tokens:    d.Tokens,
		webhooks:  d.Webhooks,
		reconcile: d.Reconcile,
		checkout:  d.Checkout,
		orders:    d.Orders,
		events:    d.Events,
		users:     d.Users,
		sessions:  d.Sessions,
		health:    d.Health,
	}
}

func (f *EventhubFacade) ParseToken(token string) (string, error) {
	return f.tokens.ParseToken(token)
}

func (f *EventhubFacade) HandlePaymentWebhook(ctx context.Context, payload []byte, signature string) (*model.WebhookResult, error) {
	return f.webhooks.HandlePayment(ctx, payload, signature)
}

func (f *EventhubFacade) HandleIdentityWebhook(ctx context.Context, payload []byte, headers http.Header) (*model.WebhookResult, error) {
	return f.webhooks.HandleIdentity(ctx, payload, headers)
}

func (f *EventhubFacade) IdentityWebhookEnabled() bool {
	return f.webhooks.IdentityEnabled()
}

func (f *EventhubFacade) Checkout(ctx context.Context, buyerID, eventID string) (*model.CheckoutSession, error) {
	return f.checkout.Checkout(ctx, buyerID, eventID)
}

func (f *EventhubFacade) Orders(ctx context.Context, buyerID string, page, limit int) (*model.OrderPage, error) {
	return f.orders.ListByBuyer(ctx, buyerID, page, limit)
}

func (f *EventhubFacade) Registrants(ctx context.Context, organizerID, eventID, search string) ([]model.OrderView, error) {
	return f.orders.Registrants(ctx, organizerID, eventID, search)
}

func (f *EventhubFacade) CreateEvent(ctx context.Context, organizerID string, event model.Event) (*model.Event, error) {
	return f.events.Create(ctx, organizerID, event)
}

func (f *EventhubFacade) Event(ctx context.Context, id string) (*model.Event, error) {
	return f.events.Get(ctx, id)
}

func (f *EventhubFacade) Me(ctx context.Context, userID string) (*model.User, error) {
	return f.users.Me(ctx, userID)
}

func (f *EventhubFacade) CompleteProfile(ctx context.Context, userID string, profile model.Profile) (*model.User, error) {
	return f.users.CompleteProfile(ctx, userID, profile)
}

func (f *EventhubFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

func (f *EventhubFacade) CompletedCheckoutsSince(ctx context.Context, since time.Time) ([]model.CompletedCheckout, error) {
	return f.sessions.CompletedSince(ctx, since)
}

func (f *EventhubFacade) Reconcile(ctx context.Context, checkout model.CompletedCheckout) (*model.Order, error) {
	return f.reconcile.Reconcile(ctx, checkout)
}
