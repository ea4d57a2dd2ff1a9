package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"SpanScreener/internal/domain/models"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	upstreamLatency *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	snapshotLookups *prometheus.CounterVec
	recommendations *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		upstreamLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spanscreener_upstream_request_duration_seconds",
				Help:    "Latency of upstream provider calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		upstreamErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spanscreener_upstream_errors_total",
				Help: "Failed upstream provider calls",
			},
			[]string{"endpoint"},
		),
		snapshotLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spanscreener_snapshot_lookups_total",
				Help: "Snapshot cache lookups by result (hit, miss, coalesced)",
			},
			[]string{"result"},
		),
		recommendations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spanscreener_recommendations_total",
				Help: "Recommendations served by signal",
			},
			[]string{"signal"},
		),
	}
}

// ObserveUpstreamLatency records the duration of one provider call.
func (r *Recorder) ObserveUpstreamLatency(endpoint string, d time.Duration) {
	r.upstreamLatency.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordUpstreamError records a failed provider call.
func (r *Recorder) RecordUpstreamError(endpoint string) {
	r.upstreamErrors.WithLabelValues(endpoint).Inc()
}

// RecordSnapshotLookup records a cache lookup outcome.
func (r *Recorder) RecordSnapshotLookup(result string) {
	r.snapshotLookups.WithLabelValues(result).Inc()
}

// RecordRecommendation records a served recommendation.
func (r *Recorder) RecordRecommendation(signal models.Signal) {
	r.recommendations.WithLabelValues(string(signal)).Inc()
}
