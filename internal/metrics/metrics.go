// Package metrics provides Prometheus metrics for the reconciliation engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// MetricsNamespace is the namespace for all placesync metrics.
	MetricsNamespace = "placesync"
)

// Callback outcome label values.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Callback metrics
	CallbacksTotal   *prometheus.CounterVec
	CallbackDuration prometheus.Histogram

	// Place reconciliation metrics
	PlacesCreated      prometheus.Counter
	PlacesMerged       prometheus.Counter
	PlacesSkipped      prometheus.Counter
	LinksReplaced      prometheus.Counter
	KeywordsLinked     prometheus.Counter

	// Notification metrics
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
	FanOutDuration      prometheus.Histogram
}

// NewMetrics creates and registers all service metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	m := &Metrics{}

	m.initCallbackMetrics(factory)
	m.initReconcileMetrics(factory)
	m.initNotifyMetrics(factory)

	return m
}

func (m *Metrics) initCallbackMetrics(factory promauto.Factory) {
	m.CallbacksTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "callbacks_total",
			Help:      "Total analysis callbacks received, by outcome",
		},
		[]string{"outcome"},
	)

	m.CallbackDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "callback_duration_seconds",
			Help:      "Time to fully process one callback",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
}

func (m *Metrics) initReconcileMetrics(factory promauto.Factory) {
	m.PlacesCreated = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "places_created_total",
			Help:      "Places created because no dedup key matched",
		},
	)

	m.PlacesMerged = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "places_merged_total",
			Help:      "Incoming place details merged into an existing place",
		},
	)

	m.PlacesSkipped = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "places_skipped_total",
			Help:      "Place entries skipped after a per-place processing error",
		},
	)

	m.LinksReplaced = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "links_replaced_total",
			Help:      "Content-place link sets rebuilt during reprocessing",
		},
	)

	m.KeywordsLinked = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "keywords_linked_total",
			Help:      "Keyword-to-place links written",
		},
	)
}

func (m *Metrics) initNotifyMetrics(factory promauto.Factory) {
	m.NotificationsSent = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "notifications_sent_total",
			Help:      "Completion notices delivered to recipients",
		},
	)

	m.NotificationsFailed = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "notifications_failed_total",
			Help:      "Completion notices that failed delivery",
		},
	)

	m.FanOutDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "fanout_duration_seconds",
			Help:      "Time to notify all recipients of one content item",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
}

// RecordCallback records the outcome and duration of one callback.
func (m *Metrics) RecordCallback(outcome string, duration time.Duration) {
	m.CallbacksTotal.WithLabelValues(outcome).Inc()
	m.CallbackDuration.Observe(duration.Seconds())
}
