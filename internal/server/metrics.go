package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readorder_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readorder_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Ordering metrics
	orderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readorder_order_requests_total",
			Help: "Total number of ordering requests",
		},
		[]string{"status"}, // status: ok, invalid, error
	)

	orderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "readorder_order_duration_seconds",
			Help:    "Reading-order computation duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)

	pageElements = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "readorder_page_elements",
			Help:    "Number of layout elements per ordered page",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "readorder_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readorder_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: sent, received
	)
)
