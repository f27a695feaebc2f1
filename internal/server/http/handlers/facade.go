package handlers

import (
	"context"
	"net/http"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

// AuthFacade describes token parsing required by protected routes.
type AuthFacade interface {
	ParseToken(token string) (string, error)
}

// WebhookFacade processes provider notifications.
type WebhookFacade interface {
	HandlePaymentWebhook(ctx context.Context, payload []byte, signature string) (*model.WebhookResult, error)
	HandleIdentityWebhook(ctx context.Context, payload []byte, headers http.Header) (*model.WebhookResult, error)
	IdentityWebhookEnabled() bool
}

// CheckoutFacade starts ticket purchases.
type CheckoutFacade interface {
	Checkout(ctx context.Context, buyerID, eventID string) (*model.CheckoutSession, error)
}

// OrderFacade encapsulates order queries exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, buyerID string, page, limit int) (*model.OrderPage, error)
	Registrants(ctx context.Context, organizerID, eventID, search string) ([]model.OrderView, error)
}

// EventFacade manages events.
type EventFacade interface {
	CreateEvent(ctx context.Context, organizerID string, event model.Event) (*model.Event, error)
	Event(ctx context.Context, id string) (*model.Event, error)
}

// UserFacade manages the caller's profile.
type UserFacade interface {
	Me(ctx context.Context, userID string) (*model.User, error)
	CompleteProfile(ctx context.Context, userID string, profile model.Profile) (*model.User, error)
}

// HealthFacade reports dependency health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// EventhubFacade aggregates the full set of operations used across handlers.
type EventhubFacade interface {
	AuthFacade
	WebhookFacade
	CheckoutFacade
	OrderFacade
	EventFacade
	UserFacade
	HealthFacade
}
