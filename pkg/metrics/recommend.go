package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommend HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "wallet_recommend_latency_seconds",
		Help:    "Latency of the card recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendations served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wallet_recommend_requests_total",
		Help: "Total number of recommend requests",
	})

	// Reasoning service retries, labeled by the classified failure kind
	ReasoningRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_reasoning_retries_total",
			Help: "Count of reasoning service retries by failure kind.",
		},
		[]string{"kind"},
	)

	// Terminal reasoning failures by error class
	ReasoningFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_reasoning_failures_total",
			Help: "Count of terminal reasoning service failures by class.",
		},
		[]string{"class"},
	)
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		ReasoningRetries,
		ReasoningFailures,
	)
}
