package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CalculatorCalls counts calculator invocations by outcome
	CalculatorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_calls_total",
			Help: "Total calculator invocations",
		},
		[]string{"calculator", "status"},
	)

	// CalculationErrors counts failed calculations
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Failed calculations by error type",
		},
		[]string{"calculator", "error_type"},
	)

	// CacheLookups counts result cache hits and misses
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_cache_lookups_total",
			Help: "Result cache lookups",
		},
		[]string{"calculator", "result"},
	)

	// HTTPRequests counts served HTTP requests
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	// ContactMessages counts contact form submissions by outcome
	ContactMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_messages_total",
			Help: "Contact form submissions",
		},
		[]string{"status"},
	)
)
