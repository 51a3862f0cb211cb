package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/readorder/internal/page"
	"github.com/MeKo-Tech/readorder/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("encoding health response", "error", err)
	}
}

// orderHandler computes the reading order for a posted page document.
func (s *Server) orderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyMB*1024*1024)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		orderRequestsTotal.WithLabelValues("invalid").Inc()
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	doc, err := page.FromJSON(body)
	if err != nil {
		orderRequestsTotal.WithLabelValues("invalid").Inc()
		s.writeErrorResponse(w, "Invalid page document: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := doc.Validate(); err != nil {
		orderRequestsTotal.WithLabelValues("invalid").Inc()
		s.writeErrorResponse(w, "Invalid page document: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.computeOrder(doc)
	if err != nil {
		orderRequestsTotal.WithLabelValues("error").Inc()
		s.writeErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}
	orderRequestsTotal.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("encoding order response", "error", err)
	}
}

// computeOrder runs the layout engine for a validated document.
func (s *Server) computeOrder(doc page.Document) (page.OrderResult, error) {
	blocks, err := doc.Blocks()
	if err != nil {
		return page.OrderResult{}, err
	}

	start := time.Now()
	order := s.orderer.ComputeOrder(page.AsElements(blocks), doc.Rect())
	orderDuration.Observe(time.Since(start).Seconds())
	pageElements.Observe(float64(len(blocks)))

	return page.OrderResult{Order: order, Count: len(order)}, nil
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("encoding error response", "error", err)
	}
}
