package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

// EventRequest describes an event created by an organizer.
type EventRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	StartsAt    time.Time       `json:"startsAt"`
	EndsAt      time.Time       `json:"endsAt"`
	Price       decimal.Decimal `json:"price"`
	IsFree      bool            `json:"isFree"`
}

// Model converts the request to a domain event.
func (r EventRequest) Model() model.Event {
	return model.Event{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
		Price:       r.Price,
		IsFree:      r.IsFree,
	}
}

// EventResponse describes a stored event.
type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	OrganizerID string    `json:"organizerId,omitempty"`
	Price       string    `json:"price"`
	IsFree      bool      `json:"isFree"`
}

// NewEventResponse converts a domain event.
func NewEventResponse(e *model.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		OrganizerID: e.OrganizerID,
		Price:       e.Price.String(),
		IsFree:      e.IsFree,
	}
}
