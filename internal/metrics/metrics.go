// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	adminMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creatorailab_admin_mutations_total",
		Help: "Admin write attempts by action and outcome",
	}, []string{"action", "status"})

	auditFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "creatorailab_audit_failures_total",
		Help: "Audit rows that could not be written",
	})

	subscribeOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creatorailab_subscribe_outcomes_total",
		Help: "Subscription requests by outcome",
	}, []string{"outcome"})

	rateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creatorailab_ratelimit_rejections_total",
		Help: "Requests rejected by a rate limit policy",
	}, []string{"policy"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creatorailab_http_requests_total",
		Help: "HTTP requests by method and status code",
	}, []string{"method", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "creatorailab_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	catalogTools = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "creatorailab_catalog_tools",
		Help: "Tools currently loaded from the fallback catalog",
	})
)

func ObserveAdminMutation(action, status string) {
	adminMutations.WithLabelValues(action, status).Inc()
}

func IncAuditFailure() {
	auditFailures.Inc()
}

func ObserveSubscribe(outcome string) {
	subscribeOutcomes.WithLabelValues(outcome).Inc()
}

func IncRateLimitRejection(policy string) {
	rateLimitRejections.WithLabelValues(policy).Inc()
}

func ObserveHTTP(method, code string, seconds float64) {
	httpRequests.WithLabelValues(method, code).Inc()
	httpDuration.WithLabelValues(method).Observe(seconds)
}

func SetCatalogTools(n int) {
	catalogTools.Set(float64(n))
}
