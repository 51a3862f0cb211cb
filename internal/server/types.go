package server

import (
	"github.com/MeKo-Tech/readorder/internal/geometry"
	"github.com/MeKo-Tech/readorder/internal/layout"
)

// ordererInterface defines what the server needs from the layout engine.
type ordererInterface interface {
	ComputeOrder(elements []layout.Element, page geometry.Box) []int
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	orderer    ordererInterface
	corsOrigin string
	maxBodyMB  int64
}

// Config holds server configuration.
type Config struct {
	Host       string
	Port       int
	CORSOrigin string
	MaxBodyMB  int64
	Layout     layout.Config
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
