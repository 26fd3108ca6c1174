package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "petshop"

// Recorder holds the shop's prometheus collectors on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	ordersSubmitted   *prometheus.CounterVec
	compensations     *prometheus.CounterVec
	stockWarnings     prometheus.Counter
	cartClearWarnings prometheus.Counter
	notifications     *prometheus.CounterVec
	submitDuration    prometheus.Histogram
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ordersSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "order", Name: "submitted_total",
			Help: "Order submissions by outcome.",
		}, []string{"outcome"}),
		compensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "order", Name: "compensations_total",
			Help: "Compensating deletes of order headers by result.",
		}, []string{"result"}),
		stockWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "order", Name: "stock_reconciliation_warnings_total",
			Help: "Stock adjustments that failed after an order was stored.",
		}),
		cartClearWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "order", Name: "cart_clear_warnings_total",
			Help: "Carts that could not be cleared after an order was stored.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "notification", Name: "attempts_total",
			Help: "Notification attempts by channel and outcome.",
		}, []string{"channel", "outcome"}),
		submitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "order", Name: "submit_duration_seconds",
			Help:    "Wall time of order submission.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	r.registry.MustRegister(
		r.ordersSubmitted,
		r.compensations,
		r.stockWarnings,
		r.cartClearWarnings,
		r.notifications,
		r.submitDuration,
		prometheus.NewGoCollector(),
	)
	return r
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) OrderSubmitted(outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.ordersSubmitted.WithLabelValues(outcome).Inc()
	r.submitDuration.Observe(took.Seconds())
}

func (r *Recorder) Compensation(ok bool) {
	if r == nil {
		return
	}
	result := "deleted"
	if !ok {
		result = "orphaned"
	}
	r.compensations.WithLabelValues(result).Inc()
}

func (r *Recorder) StockWarning() {
	if r == nil {
		return
	}
	r.stockWarnings.Inc()
}

func (r *Recorder) CartClearWarning() {
	if r == nil {
		return
	}
	r.cartClearWarnings.Inc()
}

func (r *Recorder) Notification(channel string, ok bool) {
	if r == nil {
		return
	}
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	r.notifications.WithLabelValues(channel, outcome).Inc()
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
