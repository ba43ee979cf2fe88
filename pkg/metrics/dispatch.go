package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DispatchMetrics records counters for the driver assignment workflow.
type DispatchMetrics struct {
	runDuration   *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	skips         *prometheus.CounterVec
	candidates    prometheus.Histogram
}

// NewDispatchMetrics registers the dispatch metrics on the provided registerer.
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	if reg == nil {
		return &DispatchMetrics{}
	}
	runDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dispatch_run_duration_seconds",
		Help:    "Duration of one dispatch run from event receipt to summary.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"outcome"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_notifications_total",
		Help: "Driver push notification attempts by outcome.",
	}, []string{"outcome"})
	skips := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_skips_total",
		Help: "Dispatch runs skipped before notifying anyone, by reason.",
	}, []string{"reason"})
	candidates := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_candidates",
		Help:    "Number of eligible drivers found per dispatch run.",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})
	reg.MustRegister(runDuration, notifications, skips, candidates)
	return &DispatchMetrics{
		runDuration:   runDuration,
		notifications: notifications,
		skips:         skips,
		candidates:    candidates,
	}
}

// ObserveRun records a completed dispatch run.
func (d *DispatchMetrics) ObserveRun(outcome string, duration time.Duration) {
	if d == nil || d.runDuration == nil {
		return
	}
	d.runDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncNotification counts one push attempt.
func (d *DispatchMetrics) IncNotification(outcome string) {
	if d == nil || d.notifications == nil {
		return
	}
	d.notifications.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncSkip counts a run that exited before notifying any driver.
func (d *DispatchMetrics) IncSkip(reason string) {
	if d == nil || d.skips == nil {
		return
	}
	d.skips.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveCandidates records the eligible driver count for a run.
func (d *DispatchMetrics) ObserveCandidates(count int) {
	if d == nil || d.candidates == nil {
		return
	}
	d.candidates.Observe(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
