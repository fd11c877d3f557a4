// Package metrics exposes Prometheus collectors for arsenal operations
package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/items"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

// Metrics holds the collectors registered for one process
type Metrics struct {
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	previewCache *prometheus.CounterVec
	events       *prometheus.CounterVec
	transforms   *prometheus.CounterVec
	levels       prometheus.Counter
	packItems    *prometheus.GaugeVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricNameOperationsTotal,
			Help:      "Arsenal operations by outcome. Failed operations are labeled with their error reason or code.",
		}, []string{LabelOperation, LabelOutcome}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      MetricNameOperationDuration,
			Help:      "Arsenal operation latency.",
			Buckets:   LatencyBuckets,
		}, []string{LabelOperation}),
		previewCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricNamePreviewCache,
			Help:      "Stat preview cache lookups.",
		}, []string{LabelResult}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricNameEventsPublished,
			Help:      "Item events seen on the event bus.",
		}, []string{LabelType}),
		transforms: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricNameTransforms,
			Help:      "Transformations by resulting tier.",
		}, []string{LabelTier}),
		levels: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricNameLevelsGained,
			Help:      "Levels invested across all instances.",
		}),
		packItems: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      MetricNamePackItems,
			Help:      "Item definitions per loaded pack.",
		}, []string{LabelPack}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricNameHTTPRequests,
			Help:      "Admin HTTP requests.",
		}, []string{LabelMethod, LabelPath, LabelStatus}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      MetricNameHTTPDuration,
			Help:      "Admin HTTP latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{LabelMethod, LabelPath}),
	}
}

// ObserveOperation records one operation started at start
func (m *Metrics) ObserveOperation(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, Outcome(err)).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// ObservePreviewCache records a cache hit or miss
func (m *Metrics) ObservePreviewCache(hit bool) {
	if m == nil {
		return
	}
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	m.previewCache.WithLabelValues(result).Inc()
}

// SetPackItems records the size of a loaded pack
func (m *Metrics) SetPackItems(packKey string, n int) {
	if m == nil {
		return
	}
	m.packItems.WithLabelValues(packKey).Set(float64(n))
}

// Outcome labels an error by reason, falling back to its code
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if reason := errors.GetReason(err); reason != "" {
		return reason
	}
	return errors.GetCode(err).String()
}

// Subscribe counts item events published on bus. It returns the
// subscription ids so callers can unsubscribe.
func (m *Metrics) Subscribe(bus events.EventBus) []string {
	return []string{
		bus.SubscribeFunc(items.EventTypeLeveled, 100, m.handleEvent),
		bus.SubscribeFunc(items.EventTypeTransformed, 100, m.handleEvent),
	}
}

func (m *Metrics) handleEvent(ctx context.Context, evt events.Event) error {
	m.events.WithLabelValues(evt.Type()).Inc()

	change, ok := evt.Source().(*items.Change)
	if !ok {
		slog.DebugContext(ctx, "item event without change payload", "type", evt.Type())
		return nil
	}

	switch evt.Type() {
	case items.EventTypeLeveled:
		m.levels.Add(float64(change.ToLevel - change.FromLevel))
	case items.EventTypeTransformed:
		m.transforms.WithLabelValues(change.ToTier.String()).Inc()
	}
	return nil
}
