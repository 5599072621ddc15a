package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prediction counters exported on /metrics.
type Metrics struct {
	predictions *prometheus.CounterVec
	duration    prometheus.Histogram
	reloads     *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		predictions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hpp_predictions_total",
			Help: "Price predictions by outcome kind (ok or error kind).",
		}, []string{"kind"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hpp_prediction_duration_seconds",
			Help:    "Time spent in the inference pipeline per prediction.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		reloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hpp_artifact_reloads_total",
			Help: "Artifact reloads by result.",
		}, []string{"result"}),
	}
}
