package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobSourceFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_job_source_fallback_total",
			Help: "Total number of job service calls answered from fallback data",
		},
		[]string{"op"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_http_requests_total",
			Help: "Total number of HTTP requests by method and status code",
		},
		[]string{"method", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobportal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	ApplicationsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobportal_applications_recorded_total",
			Help: "Total number of job applications recorded",
		},
	)
)

// RecordFallback is the job repository's fallback hook.
func RecordFallback(op string) {
	JobSourceFallbacks.WithLabelValues(op).Inc()
}
