// Package metrics exposes Prometheus collectors for the backend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Requests by route pattern and status code
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lernportal_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lernportal_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// Answers persisted through the answer endpoint
	answersRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lernportal_answers_recorded_total",
			Help: "Total number of recorded learner answers",
		},
		[]string{"result"}, // correct/wrong
	)

	bundleExercises = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lernportal_bundle_exercises",
			Help:    "Number of exercises per served bundle",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

// ObserveRequest records one served request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func AnswerRecorded(correct bool) {
	result := "wrong"
	if correct {
		result = "correct"
	}
	answersRecorded.WithLabelValues(result).Inc()
}

func BundleServed(exercises int) {
	bundleExercises.Observe(float64(exercises))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
