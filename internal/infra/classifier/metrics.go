package classifier

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClassificationMetricsRecorder records classification outcomes and latency.
// The interface keeps the adapters testable without a live Prometheus
// registry.
type ClassificationMetricsRecorder interface {
	// RecordOutcome counts one classification attempt by outcome:
	// success, api_error, empty_response or invalid_format.
	RecordOutcome(outcome string)

	// RecordDuration records the time taken by a successful API call.
	RecordDuration(duration time.Duration)
}

// PrometheusClassificationMetrics is the production recorder.
type PrometheusClassificationMetrics struct {
	outcomeCounter    *prometheus.CounterVec
	durationHistogram prometheus.Histogram
}

var (
	classificationMetricsInstance *PrometheusClassificationMetrics
	classificationMetricsOnce     sync.Once
)

// NewPrometheusClassificationMetrics returns the singleton Prometheus
// recorder. A singleton avoids duplicate registration when multiple
// adapters are constructed in tests.
func NewPrometheusClassificationMetrics() *PrometheusClassificationMetrics {
	classificationMetricsOnce.Do(func() {
		classificationMetricsInstance = &PrometheusClassificationMetrics{
			outcomeCounter: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "news_classification_total",
				Help: "Total number of news classification attempts by outcome",
			}, []string{"outcome"}),
			durationHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "news_classification_duration_seconds",
				Help:    "Time taken to classify a news article via AI API",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
		}
	})
	return classificationMetricsInstance
}

func (p *PrometheusClassificationMetrics) RecordOutcome(outcome string) {
	p.outcomeCounter.WithLabelValues(outcome).Inc()
}

func (p *PrometheusClassificationMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}
