package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a ticketed happening owned by an organizer.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	OrganizerID string
	Price       decimal.Decimal
	IsFree      bool
	CreatedAt   time.Time
}

// Finished reports whether the event ended before now.
func (e Event) Finished(now time.Time) bool {
	return e.EndsAt.Before(now)
}

// UnitAmount returns the ticket price in minor units.
func (e Event) UnitAmount() int64 {
	if e.IsFree {
		return 0
	}
	return e.Price.Shift(2).Round(0).IntPart()
}
