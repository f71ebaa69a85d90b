package usecase

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"task-intent/internal/model"
)

// Metrics exposes Prometheus collectors that report interpretation activity.
type Metrics struct {
	outcomes        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	inferenceErrors *prometheus.CounterVec
}

var (
	defaultMetricsOnce sync.Once
	sharedMetrics      *Metrics
)

// DefaultMetrics returns the instance registered with the global registry.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		sharedMetrics = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return sharedMetrics
}

// MustNewMetrics constructs a Metrics instance using the provided registerer.
// Collectors already registered under the same name are reused; any other
// registration error panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	outcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "intent",
			Subsystem: "interpret",
			Name:      "outcomes_total",
			Help:      "Parse outcomes by producing strategy.",
		},
		[]string{"strategy"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "intent",
			Subsystem: "interpret",
			Name:      "parse_duration_seconds",
			Help:      "Time spent producing a parse outcome.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5, 15},
		},
		[]string{"strategy"},
	)
	inferenceErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "intent",
			Subsystem: "interpret",
			Name:      "inference_errors_total",
			Help:      "Inference attempts that were swallowed, by error kind.",
		},
		[]string{"kind"},
	)

	for _, collector := range []prometheus.Collector{outcomes, duration, inferenceErrors} {
		if err := reg.Register(collector); err != nil {
			already, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				panic(err)
			}
			switch collector {
			case outcomes:
				outcomes = already.ExistingCollector.(*prometheus.CounterVec)
			case inferenceErrors:
				inferenceErrors = already.ExistingCollector.(*prometheus.CounterVec)
			case duration:
				duration = already.ExistingCollector.(*prometheus.HistogramVec)
			}
		}
	}

	return &Metrics{
		outcomes:        outcomes,
		duration:        duration,
		inferenceErrors: inferenceErrors,
	}
}

// ObserveOutcome counts one outcome and records its latency.
func (m *Metrics) ObserveOutcome(strategy model.StrategyTag, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(string(strategy)).Inc()
	m.duration.WithLabelValues(string(strategy)).Observe(elapsed.Seconds())
}

// IncInferenceError counts a swallowed inference failure.
func (m *Metrics) IncInferenceError(kind string) {
	if m == nil {
		return
	}
	m.inferenceErrors.WithLabelValues(kind).Inc()
}
