package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RedirectsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoplens_redirects_total",
			Help: "Redirects served, by marketplace domain",
		},
		[]string{"domain"},
	)

	IdentifyAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoplens_identify_attempts_total",
			Help: "Vision identification attempts, by model, delivery strategy, and outcome",
		},
		[]string{"model", "strategy", "outcome"},
	)

	IdentifyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoplens_identify_results_total",
			Help: "Overall identification outcomes",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoplens_http_requests_total",
			Help: "HTTP requests, by method, route, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "shoplens_http_request_duration_seconds",
			Help: "HTTP request latency, by method and route",
		},
		[]string{"method", "path"},
	)
)
