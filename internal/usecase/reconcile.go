package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/domain/repository"
	"github.com/polkiloo/eventhub/internal/metrics"
)

// ReconcileUseCase turns completed checkouts into exactly one order per (event, buyer).
type ReconcileUseCase struct {
	orders   repository.OrderRepository
	enricher Enricher
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(orders repository.OrderRepository, enricher Enricher, logger *slog.Logger, rec *metrics.Recorder) *ReconcileUseCase {
	return &ReconcileUseCase{orders: orders, enricher: enricher, logger: logger, metrics: rec}
}

// Reconcile persists the order for a completed checkout.
// A pre-existing order, found up front or through the uniqueness constraint,
// is reported as *DuplicateOrderError.
func (u *ReconcileUseCase) Reconcile(ctx context.Context, checkout model.CompletedCheckout) (*model.Order, error) {
	if checkout.SessionID == "" || checkout.EventID == "" || checkout.BuyerID == "" {
		return nil, domainErrors.ErrMalformedEvent
	}

	existing, err := u.orders.FindByEventAndBuyer(ctx, checkout.EventID, checkout.BuyerID)
	switch {
	case err == nil:
		return nil, u.duplicate(existing)
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, storeError(ctx, err)
	}

	order := model.Order{
		StripeID:    checkout.SessionID,
		EventID:     checkout.EventID,
		BuyerID:     checkout.BuyerID,
		TotalAmount: checkout.TotalAmount(),
		Metadata:    u.enricher.ProfileMetadata(ctx, checkout.BuyerID),
	}

	created, err := u.orders.Insert(ctx, order)
	switch {
	case err == nil:
		u.metrics.OrderCreated()
		u.logger.Info("order created",
			slog.String("stripe_id", created.StripeID),
			slog.String("event_id", created.EventID),
			slog.String("buyer_id", created.BuyerID),
			slog.String("total_amount", created.TotalAmount),
		)
		return created, nil
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return nil, u.duplicate(u.conflicting(ctx, checkout))
	case errors.Is(err, domainErrors.ErrUserDeleted):
		u.logger.Info("skipping checkout of deleted buyer",
			slog.String("stripe_id", checkout.SessionID),
			slog.String("buyer_id", checkout.BuyerID),
		)
		return nil, err
	case errors.Is(err, domainErrors.ErrNotFound):
		return nil, errors.Join(domainErrors.ErrMalformedEvent, err)
	default:
		return nil, storeError(ctx, err)
	}
}

// conflicting re-reads the row that won the race. Nil when neither lookup finds it.
func (u *ReconcileUseCase) conflicting(ctx context.Context, checkout model.CompletedCheckout) *model.Order {
	if order, err := u.orders.GetByStripeID(ctx, checkout.SessionID); err == nil {
		return order
	}
	if order, err := u.orders.FindByEventAndBuyer(ctx, checkout.EventID, checkout.BuyerID); err == nil {
		return order
	}
	return nil
}

func (u *ReconcileUseCase) duplicate(existing *model.Order) error {
	u.metrics.DuplicateOrder()
	return &domainErrors.DuplicateOrderError{Existing: existing}
}

func storeError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(domainErrors.ErrTimeout, err)
	}
	return errors.Join(domainErrors.ErrStoreUnavailable, err)
}
