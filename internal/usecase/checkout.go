package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/domain/repository"
)

// CheckoutGateway opens hosted payment pages.
type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutSession, error)
}

// CheckoutUseCase starts ticket purchases.
type CheckoutUseCase struct {
	events  repository.EventRepository
	orders  repository.OrderRepository
	gateway CheckoutGateway
	now     func() time.Time
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(events repository.EventRepository, orders repository.OrderRepository, gateway CheckoutGateway) *CheckoutUseCase {
	return &CheckoutUseCase{events: events, orders: orders, gateway: gateway, now: time.Now}
}

// Checkout creates a payment session for one ticket of the event.
func (u *CheckoutUseCase) Checkout(ctx context.Context, buyerID, eventID string) (*model.CheckoutSession, error) {
	if eventID == "" {
		return nil, domainErrors.ErrInvalidEvent
	}
	event, err := u.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Finished(u.now()) {
		return nil, domainErrors.ErrEventFinished
	}
	if event.OrganizerID != "" && event.OrganizerID == buyerID {
		return nil, domainErrors.ErrOwnEvent
	}

	existing, err := u.orders.FindByEventAndBuyer(ctx, eventID, buyerID)
	switch {
	case err == nil:
		return nil, &domainErrors.DuplicateOrderError{Existing: existing}
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, err
	}

	return u.gateway.CreateCheckout(ctx, model.CheckoutRequest{
		EventID:    event.ID,
		EventTitle: event.Title,
		BuyerID:    buyerID,
		UnitAmount: event.UnitAmount(),
		Free:       event.IsFree || event.UnitAmount() == 0,
	})
}
