package repository

import (
	"context"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Insert returns errors.ErrAlreadyExists when a uniqueness constraint rejects the row.
type OrderRepository interface {
	FindByEventAndBuyer(ctx context.Context, eventID, buyerID string) (*model.Order, error)
	GetByStripeID(ctx context.Context, stripeID string) (*model.Order, error)
	Insert(ctx context.Context, order model.Order) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]model.OrderView, int, error)
	ListByEvent(ctx context.Context, eventID, search string) ([]model.OrderView, error)
}
