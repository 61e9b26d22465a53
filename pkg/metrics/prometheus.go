package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	estimatesTotal *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	lastEstimate   prometheus.Gauge
	latency        *prometheus.HistogramVec
	geocodeLookups *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		estimatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geoprice_estimates_total",
				Help: "Total number of price estimates served",
			},
			[]string{"currency"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geoprice_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastEstimate: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "geoprice_last_raw_estimate",
				Help: "Last raw model output in $100,000 units",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "geoprice_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		geocodeLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geoprice_geocode_lookups_total",
				Help: "Reverse geocode lookups by cache outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordEstimate records one served estimate and its raw model output.
func (r *Recorder) RecordEstimate(currency string, raw float64) {
	r.estimatesTotal.WithLabelValues(currency).Inc()
	r.lastEstimate.Set(raw)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordGeocodeLookup records a geocode lookup outcome (hit, miss, failed).
func (r *Recorder) RecordGeocodeLookup(outcome string) {
	r.geocodeLookups.WithLabelValues(outcome).Inc()
}
