package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReviewLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_list_loads_total",
			Help: "Total number of review list loads by result",
		},
		[]string{"result"},
	)

	ReviewTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_list_transitions_total",
			Help: "Total number of status transitions by target status and result",
		},
		[]string{"target", "result"},
	)

	ReviewViewsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "review_views_open",
			Help: "Number of review views currently open",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_http_requests_total",
			Help: "Total number of admin API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "admin_http_request_duration_seconds",
			Help: "Duration of admin API requests in seconds",
		},
		[]string{"method", "route"},
	)

	HTTPHandlerPanics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_http_handler_panics_total",
			Help: "Total number of admin API handlers which panicked",
		},
		[]string{"method", "route"},
	)
)
