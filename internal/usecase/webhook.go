package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/metrics"
)

// Webhook sources used as metric labels.
const (
	SourcePayment  = "stripe"
	SourceIdentity = "clerk"
)

// PaymentVerifier authenticates payment provider deliveries.
type PaymentVerifier interface {
	Verify(payload []byte, signature string) (*model.PaymentEvent, error)
}

// IdentityVerifier authenticates identity provider deliveries.
type IdentityVerifier interface {
	Verify(payload []byte, headers http.Header) (*model.IdentityEvent, error)
}

// Reconciler is the order creation step behind payment webhooks.
type Reconciler interface {
	Reconcile(ctx context.Context, checkout model.CompletedCheckout) (*model.Order, error)
}

// IdentitySync applies identity provider changes to local users.
type IdentitySync interface {
	SyncIdentity(ctx context.Context, event model.IdentityEvent) error
}

// WebhookUseCase verifies and dispatches provider notifications.
type WebhookUseCase struct {
	payments   PaymentVerifier
	reconciler Reconciler
	identities IdentityVerifier
	users      IdentitySync
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// WebhookDeps groups WebhookUseCase collaborators.
// Identities may be nil when identity webhooks are disabled.
type WebhookDeps struct {
	Payments   PaymentVerifier
	Reconciler Reconciler
	Identities IdentityVerifier
	Users      IdentitySync
	Timeout    time.Duration
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// NewWebhookUseCase constructs WebhookUseCase.
func NewWebhookUseCase(d WebhookDeps) *WebhookUseCase {
	return &WebhookUseCase{
		payments:   d.Payments,
		reconciler: d.Reconciler,
		identities: d.Identities,
		users:      d.Users,
		timeout:    d.Timeout,
		logger:     d.Logger,
		metrics:    d.Metrics,
	}
}

// IdentityEnabled reports whether identity webhooks can be verified.
func (u *WebhookUseCase) IdentityEnabled() bool {
	return u.identities != nil
}

// HandlePayment verifies the raw payload and reconciles completed checkouts.
// The result is always set; err carries the domain failure, if any.
func (u *WebhookUseCase) HandlePayment(ctx context.Context, payload []byte, signature string) (*model.WebhookResult, error) {
	result := &model.WebhookResult{Kind: "unknown"}

	event, err := u.payments.Verify(payload, signature)
	if err != nil {
		result.Outcome = model.WebhookOutcomeRejected
		u.record(SourcePayment, result)
		u.logger.Warn("payment webhook rejected", slog.String("error", err.Error()))
		return result, err
	}
	result.Kind = event.Kind

	if event.Kind != model.PaymentEventCheckoutCompleted || event.Checkout == nil {
		result.Outcome = model.WebhookOutcomeIgnored
		u.record(SourcePayment, result)
		u.logger.Info("payment webhook ignored", slog.String("kind", event.Kind), slog.String("event_id", event.ID))
		return result, nil
	}

	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	order, err := u.reconciler.Reconcile(ctx, *event.Checkout)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) &&
		!errors.Is(err, domainErrors.ErrTimeout) && !errors.Is(err, domainErrors.ErrDuplicateOrder) {
		err = errors.Join(domainErrors.ErrTimeout, err)
	}

	var dup *domainErrors.DuplicateOrderError
	switch {
	case err == nil:
		result.Outcome = model.WebhookOutcomeCreated
		result.Order = order
	case errors.As(err, &dup):
		result.Outcome = model.WebhookOutcomeDuplicate
		result.Order = dup.Existing
	case errors.Is(err, domainErrors.ErrUserDeleted):
		// the buyer is gone, acknowledge so the provider stops redelivering
		result.Outcome = model.WebhookOutcomeIgnored
		err = nil
	case errors.Is(err, domainErrors.ErrMalformedEvent):
		result.Outcome = model.WebhookOutcomeRejected
	default:
		result.Outcome = model.WebhookOutcomeFailed
		u.logger.Error("payment webhook failed",
			slog.String("session_id", event.Checkout.SessionID),
			slog.String("error", err.Error()),
		)
	}
	u.record(SourcePayment, result)
	return result, err
}

// HandleIdentity verifies an identity provider delivery and syncs the local user.
func (u *WebhookUseCase) HandleIdentity(ctx context.Context, payload []byte, headers http.Header) (*model.WebhookResult, error) {
	result := &model.WebhookResult{Kind: "unknown"}
	if u.identities == nil {
		result.Outcome = model.WebhookOutcomeRejected
		return result, domainErrors.ErrNotFound
	}

	event, err := u.identities.Verify(payload, headers)
	if err != nil {
		result.Outcome = model.WebhookOutcomeRejected
		u.record(SourceIdentity, result)
		return result, err
	}
	result.Kind = event.Kind

	switch event.Kind {
	case model.IdentityEventUserCreated, model.IdentityEventUserUpdated, model.IdentityEventUserDeleted:
	default:
		result.Outcome = model.WebhookOutcomeIgnored
		u.record(SourceIdentity, result)
		return result, nil
	}

	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	err = u.users.SyncIdentity(ctx, *event)
	switch {
	case err == nil:
		result.Outcome = model.WebhookOutcomeCreated
	case event.Kind == model.IdentityEventUserDeleted && errors.Is(err, domainErrors.ErrNotFound):
		result.Outcome = model.WebhookOutcomeIgnored
		err = nil
	default:
		result.Outcome = model.WebhookOutcomeFailed
		u.logger.Error("identity webhook failed",
			slog.String("kind", event.Kind),
			slog.String("user_id", event.Identity.ID),
			slog.String("error", err.Error()),
		)
	}
	u.record(SourceIdentity, result)
	return result, err
}

func (u *WebhookUseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, u.timeout)
}

func (u *WebhookUseCase) record(source string, result *model.WebhookResult) {
	u.metrics.WebhookEvent(source, result.Kind, result.Outcome)
}
