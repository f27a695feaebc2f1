package repository

import (
	"context"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Upsert(ctx context.Context, identity model.Identity) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, profile model.Profile) (*model.User, error)
	Delete(ctx context.Context, id string, policy model.OrderDeletePolicy) error
}
