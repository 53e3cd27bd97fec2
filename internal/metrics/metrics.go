package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Claim workflow metrics
	claimAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_claim_attempts_total",
			Help: "Total number of inquiry claim attempts",
		},
		[]string{"outcome"},
	)

	releasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_releases_total",
			Help: "Total number of inquiry releases",
		},
		[]string{"trigger"},
	)

	autoReleasedInquiries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inquiry_auto_released_total",
			Help: "Total number of inquiries returned to the pool by the expiry sweep",
		},
	)

	inquiriesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inquiries_submitted_total",
			Help: "Total number of inquiries submitted through the public form",
		},
	)
)

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordClaimAttempt records a claim attempt; outcome is "won" or "lost".
func RecordClaimAttempt(outcome string) {
	claimAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordRelease records an inquiry release; trigger is "owner", "admin" or "reassign".
func RecordRelease(trigger string) {
	releasesTotal.WithLabelValues(trigger).Inc()
}

// RecordAutoReleased adds the released-row count from one expiry sweep.
func RecordAutoReleased(count int64) {
	autoReleasedInquiries.Add(float64(count))
}

// RecordInquirySubmitted counts a public inquiry submission.
func RecordInquirySubmitted() {
	inquiriesSubmitted.Inc()
}
