package repository

import (
	"context"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

// EventRepository describes persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, event model.Event) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
}
