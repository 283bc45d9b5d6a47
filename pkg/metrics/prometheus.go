package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the service.
type Metrics struct {
	RunsTotal           prometheus.Counter
	RunFailures         prometheus.Counter
	ObservationsFetched prometheus.Counter
	CandidatesFound     prometheus.Counter
	ScrapeFailures      *prometheus.CounterVec
	DeliveryFailures    *prometheus.CounterVec
	RunDuration         prometheus.Histogram
}

// NewMetrics creates and registers the service metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "The total number of completed pipeline runs",
		}),
		RunFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_failures_total",
			Help:      "The total number of failed pipeline runs",
		}),
		ObservationsFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_fetched_total",
			Help:      "The total number of price observations obtained",
		}),
		CandidatesFound: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trip_candidates_total",
			Help:      "The total number of qualifying trip candidates reported",
		}),
		ScrapeFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_failures_total",
			Help:      "The total number of failed origin/destination fetches",
		}, []string{"origin", "destination"}),
		DeliveryFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_failures_total",
			Help:      "The total number of failed report deliveries",
		}, []string{"sink"}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Time taken by one pipeline run",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
