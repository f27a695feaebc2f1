package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/metrics"
)

// SweepFacade exposes the subset of application functionality required by the sweeper.
type SweepFacade interface {
	CompletedCheckoutsSince(ctx context.Context, since time.Time) ([]model.CompletedCheckout, error)
	Reconcile(ctx context.Context, checkout model.CompletedCheckout) (*model.Order, error)
}

// SessionSweeper re-reads recently completed checkout sessions and feeds them
// to the reconciler, back-filling orders whose webhook never arrived.
type SessionSweeper struct {
	facade   SweepFacade
	interval time.Duration
	lookback time.Duration
	workers  int
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time

	jobs   chan model.CompletedCheckout
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSessionSweeper constructs the sweeper worker pool. Each reconciliation
// runs under jobTimeout, the same budget a webhook delivery gets.
func NewSessionSweeper(facade SweepFacade, interval, lookback time.Duration, workers int, jobTimeout time.Duration, logger *slog.Logger, rec *metrics.Recorder) *SessionSweeper {
	if workers <= 0 {
		workers = 1
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}
	return &SessionSweeper{
		facade:   facade,
		interval: interval,
		lookback: lookback,
		workers:  workers,
		timeout:  jobTimeout,
		logger:   logger,
		metrics:  rec,
		now:      time.Now,
	}
}

// Start launches background sweeping. It is a no-op when already running.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.jobs = make(chan model.CompletedCheckout, s.workers)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx, s.jobs)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx, s.jobs)
}

// Stop cancels in-flight work and waits for all workers to finish.
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *SessionSweeper) dispatch(ctx context.Context, jobs chan<- model.CompletedCheckout) {
	defer s.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx, jobs)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context, jobs chan<- model.CompletedCheckout) {
	since := s.now().Add(-s.lookback)
	checkouts, err := s.facade.CompletedCheckoutsSince(ctx, since)
	if err != nil {
		s.logger.Error("list completed sessions failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Debug("sweeping completed sessions", slog.Int("count", len(checkouts)), slog.Time("since", since))

	for _, checkout := range checkouts {
		select {
		case <-ctx.Done():
			return
		case jobs <- checkout:
		}
	}
}

func (s *SessionSweeper) worker(ctx context.Context, jobs <-chan model.CompletedCheckout) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case checkout, ok := <-jobs:
			if !ok {
				return
			}
			s.handle(ctx, checkout)
		}
	}
}

func (s *SessionSweeper) handle(ctx context.Context, checkout model.CompletedCheckout) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	order, err := s.facade.Reconcile(ctx, checkout)
	switch {
	case err == nil:
		s.metrics.SessionSwept(model.WebhookOutcomeCreated)
		s.logger.Info("order back-filled",
			slog.String("stripe_id", order.StripeID),
			slog.String("event_id", order.EventID),
			slog.String("buyer_id", order.BuyerID),
		)
	case errors.Is(err, domainErrors.ErrDuplicateOrder):
		s.metrics.SessionSwept(model.WebhookOutcomeDuplicate)
	case errors.Is(err, domainErrors.ErrUserDeleted):
		s.metrics.SessionSwept(model.WebhookOutcomeIgnored)
	case errors.Is(err, domainErrors.ErrMalformedEvent):
		s.metrics.SessionSwept(model.WebhookOutcomeRejected)
		s.logger.Warn("skipping malformed session", slog.String("session_id", checkout.SessionID), slog.String("error", err.Error()))
	default:
		s.metrics.SessionSwept(model.WebhookOutcomeFailed)
		s.logger.Error("back-fill failed", slog.String("session_id", checkout.SessionID), slog.String("error", err.Error()))
	}
}
