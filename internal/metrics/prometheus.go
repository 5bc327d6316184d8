package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
	feedbackSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "feedback_submitted_total",
			Help: "Total number of feedback records accepted.",
		},
	)
	flagsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flags_created_total",
			Help: "Total number of quality flags created, by reason code.",
		},
		[]string{"reason_code"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(feedbackSubmittedTotal)
	prometheus.MustRegister(flagsCreatedTotal)
}

// RecordRequest records metrics for one HTTP request.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// FeedbackSubmitted counts an accepted feedback submission.
func FeedbackSubmitted() {
	feedbackSubmittedTotal.Inc()
}

// FlagCreated counts a created flag by reason code.
func FlagCreated(reasonCode string) {
	flagsCreatedTotal.WithLabelValues(reasonCode).Inc()
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
