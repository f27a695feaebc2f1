package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/domain/repository"
)

// EventUseCase manages events offered for sale.
type EventUseCase struct {
	events repository.EventRepository
	newID  func() string
}

// NewEventUseCase constructs EventUseCase.
func NewEventUseCase(events repository.EventRepository) *EventUseCase {
	return &EventUseCase{events: events, newID: uuid.NewString}
}

// Create validates and stores an event owned by organizerID.
func (u *EventUseCase) Create(ctx context.Context, organizerID string, event model.Event) (*model.Event, error) {
	event.Title = strings.TrimSpace(event.Title)
	if err := ValidateEvent(event); err != nil {
		return nil, err
	}
	if event.IsFree {
		event.Price = decimal.Zero
	}
	event.ID = u.newID()
	event.OrganizerID = organizerID
	return u.events.Create(ctx, event)
}

// Get returns an event by id.
func (u *EventUseCase) Get(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, domainErrors.ErrNotFound
	}
	return u.events.GetByID(ctx, id)
}
