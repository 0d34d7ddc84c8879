package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	extractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketscan_extractions_total",
			Help: "Total number of ticket extractions by winning method",
		},
		[]string{"method"},
	)

	extractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticketscan_extraction_duration_seconds",
			Help:    "End-to-end extraction duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 25, 50},
		},
		[]string{"method"},
	)

	extractionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticketscan_extraction_confidence",
			Help:    "Final confidence score distribution",
			Buckets: []float64{0, 10, 25, 50, 60, 70, 80, 90, 95, 100},
		},
	)
)

func observeExtraction(method string, confidence int, elapsed time.Duration) {
	extractionsTotal.WithLabelValues(method).Inc()
	extractionDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	extractionConfidence.Observe(float64(confidence))
}
