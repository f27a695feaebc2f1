package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

// Recorder owns the service counters and their private registry.
// A nil Recorder discards every observation.
type Recorder struct {
	registry           *prometheus.Registry
	webhookEvents      *prometheus.CounterVec
	ordersCreated      prometheus.Counter
	duplicateOrders    prometheus.Counter
	enrichmentFailures prometheus.Counter
	sweptSessions      *prometheus.CounterVec
}

// New registers the counters on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventhub_webhook_events_total",
			Help: "Webhook deliveries by source, event kind and outcome.",
		}, []string{"source", "kind", "outcome"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eventhub_orders_created_total",
			Help: "Orders persisted by the reconciler.",
		}),
		duplicateOrders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eventhub_duplicate_orders_total",
			Help: "Completed checkouts that matched an existing order.",
		}),
		enrichmentFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eventhub_enrichment_failures_total",
			Help: "Buyer metadata lookups that degraded to an empty snapshot.",
		}),
		sweptSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventhub_sweep_sessions_total",
			Help: "Checkout sessions replayed by the sweeper by outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(
		r.webhookEvents,
		r.ordersCreated,
		r.duplicateOrders,
		r.enrichmentFailures,
		r.sweptSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// WebhookEvent counts one delivery by source, kind and outcome.
func (r *Recorder) WebhookEvent(source, kind string, outcome model.WebhookOutcome) {
	if r == nil {
		return
	}
	r.webhookEvents.WithLabelValues(source, kind, string(outcome)).Inc()
}

// OrderCreated counts an order persisted by the reconciler.
func (r *Recorder) OrderCreated() {
	if r == nil {
		return
	}
	r.ordersCreated.Inc()
}

// DuplicateOrder counts a checkout that matched an existing order.
func (r *Recorder) DuplicateOrder() {
	if r == nil {
		return
	}
	r.duplicateOrders.Inc()
}

// EnrichmentFailed counts a metadata lookup that fell back to an empty snapshot.
func (r *Recorder) EnrichmentFailed() {
	if r == nil {
		return
	}
	r.enrichmentFailures.Inc()
}

// SessionSwept counts a session replayed by the sweeper.
func (r *Recorder) SessionSwept(outcome model.WebhookOutcome) {
	if r == nil {
		return
	}
	r.sweptSessions.WithLabelValues(string(outcome)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
