package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	guardDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobportal_guard_decisions_total",
		Help: "Route guard outcomes by decision.",
	}, []string{"decision"})

	backendRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobportal_backend_request_seconds",
		Help:    "Latency of calls to the backend API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "outcome"})

	sessionResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobportal_session_resolutions_total",
		Help: "Token-to-user resolution attempts by result.",
	}, []string{"result"})
)

// CountGuardDecision records one route guard outcome
// ("render", "redirect_login" or "redirect_forbidden").
func CountGuardDecision(decision string) {
	guardDecisions.WithLabelValues(decision).Inc()
}

// ObserveBackendRequest records one backend round trip.
func ObserveBackendRequest(path string, d time.Duration, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	backendRequests.WithLabelValues(path, outcome).Observe(d.Seconds())
}

// CountResolution records one session resolution
// ("cached", "resolved" or "failed").
func CountResolution(result string) {
	sessionResolutions.WithLabelValues(result).Inc()
}
