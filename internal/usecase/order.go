package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/domain/repository"
)

const (
	DefaultPageLimit = 3
	MaxPageLimit     = 50

	enrichParallelism = 4
)

// OrderQueryUseCase serves buyer and organizer order listings.
type OrderQueryUseCase struct {
	orders   repository.OrderRepository
	events   repository.EventRepository
	enricher Enricher
}

// NewOrderQueryUseCase constructs OrderQueryUseCase.
func NewOrderQueryUseCase(orders repository.OrderRepository, events repository.EventRepository, enricher Enricher) *OrderQueryUseCase {
	return &OrderQueryUseCase{orders: orders, events: events, enricher: enricher}
}

// ListByBuyer returns one page of the buyer's orders, newest first.
func (u *OrderQueryUseCase) ListByBuyer(ctx context.Context, buyerID string, page, limit int) (*model.OrderPage, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if page <= 0 {
		page = 1
	}

	items, total, err := u.orders.ListByBuyer(ctx, buyerID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.OrderView{}
	}
	return &model.OrderPage{Items: items, TotalPages: (total + limit - 1) / limit}, nil
}

// Registrants lists the orders of an event owned by organizerID.
// Orders without a stored snapshot get live metadata that is not persisted.
func (u *OrderQueryUseCase) Registrants(ctx context.Context, organizerID, eventID, search string) ([]model.OrderView, error) {
	event, err := u.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID == "" || event.OrganizerID != organizerID {
		return nil, domainErrors.ErrForbidden
	}

	views, err := u.orders.ListByEvent(ctx, eventID, search)
	if err != nil {
		return nil, err
	}
	if views == nil {
		return []model.OrderView{}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichParallelism)
	for i := range views {
		if len(views[i].Metadata) > 0 || views[i].BuyerID == "" {
			continue
		}
		v := &views[i]
		g.Go(func() error {
			v.Metadata = u.enricher.ProfileMetadata(gctx, v.BuyerID)
			return nil
		})
	}
	_ = g.Wait()
	return views, nil
}
