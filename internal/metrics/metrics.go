package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/woo-sync/internal/cursor"
)

const namespace = "woosync"

// SyncMetrics records poller activity. It satisfies poller.Recorder.
type SyncMetrics struct {
	registry *prometheus.Registry

	polls        *prometheus.CounterVec
	pollDuration *prometheus.HistogramVec
	orders       *prometheus.CounterVec
	cursorTime   prometheus.Gauge
}

// New creates SyncMetrics on a fresh registry. instance is attached to every
// series as a constant label when non-empty.
func New(instance string) *SyncMetrics {
	var constLabels prometheus.Labels
	if instance != "" {
		constLabels = prometheus.Labels{"instance_id": instance}
	}

	m := &SyncMetrics{
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "polls_total",
			Help:        "Poll attempts by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		pollDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "poll_duration_seconds",
			Help:        "Duration of poll attempts.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"result"}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "orders_total",
			Help:        "Orders seen by the poller, by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		cursorTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "cursor_timestamp_seconds",
			Help:        "Creation time of the newest order acted on.",
			ConstLabels: constLabels,
		}),
	}

	m.registry.MustRegister(m.polls, m.pollDuration, m.orders, m.cursorTime)
	return m
}

// Registry returns the underlying registry.
func (m *SyncMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *SyncMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *SyncMetrics) ObservePoll(d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.polls.WithLabelValues(result).Inc()
	m.pollDuration.WithLabelValues(result).Observe(d.Seconds())
}

func (m *SyncMetrics) OrderProcessed(outcome string) {
	m.orders.WithLabelValues(outcome).Inc()
}

// CursorAdvanced sets the cursor gauge. Unparsable values are ignored.
func (m *SyncMetrics) CursorAdvanced(value string) {
	t, err := cursor.ParseTimestamp(value)
	if err != nil {
		return
	}
	m.cursorTime.Set(float64(t.Unix()))
}
