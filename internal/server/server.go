// Package server exposes the reading-order engine over HTTP: a JSON order
// endpoint, a streaming WebSocket endpoint, health and Prometheus metrics.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/readorder/internal/layout"
)

// New creates a Server from the given configuration.
func New(cfg Config) (*Server, error) {
	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	maxBodyMB := cfg.MaxBodyMB
	if maxBodyMB <= 0 {
		maxBodyMB = 10
	}
	return &Server{
		orderer:    layout.NewOrderer(cfg.Layout),
		corsOrigin: cfg.CORSOrigin,
		maxBodyMB:  maxBodyMB,
	}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/order", s.corsMiddleware(s.orderHandler))
	mux.HandleFunc("/ws/order", s.orderWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
