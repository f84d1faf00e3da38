package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream and resolver metrics, registered explicitly from the
// composition root (no init()).
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lateral",
			Name:      "upstream_requests_total",
			Help:      "Recruiting API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lateral",
			Name:      "upstream_request_duration_seconds",
			Help:      "Recruiting API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	ProfileCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lateral",
			Name:      "profile_cache_total",
			Help:      "Profile cache lookups by result (hit/miss)",
		},
		[]string{"result"},
	)

	ResolverRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lateral",
			Name:      "resolver_requests_total",
			Help:      "Chat-completion resolver requests by outcome",
		},
		[]string{"outcome"},
	)
)

// RegisterUpstreamMetrics registers the collectors above. Call once.
func RegisterUpstreamMetrics() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		ProfileCacheTotal,
		ResolverRequestsTotal,
	)
}
