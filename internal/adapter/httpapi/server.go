// Package httpapi exposes the resolution and rendering API plus the
// operational endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/zip-time-service/internal/domain"
)

// Resolver turns raw ZIP codes into location profiles.
type Resolver interface {
	Resolve(ctx context.Context, rawZip string) domain.LocationProfile
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the render API alongside health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	resolver   Resolver
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1/time, /v1/profile, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, resolver Resolver, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		resolver: resolver,
		logger:   logger,
	}

	mux.HandleFunc("GET /v1/time", s.handleTime)
	mux.HandleFunc("GET /v1/profile", s.handleProfile)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleTime renders the current (or requested) time for a ZIP code. The zip
// parameter may be absent; resolution then falls back to host-local settings,
// matching the rest of the service.
func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	at := domain.Now()
	if instant := q.Get("instant"); instant != "" {
		parsed, err := time.Parse(time.RFC3339, instant)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "instant must be RFC 3339",
			})
			return
		}
		at = parsed
	}

	profile := s.resolver.Resolve(r.Context(), q.Get("zip"))
	writeJSON(w, http.StatusOK, domain.NewRenderedTime(profile, at, q.Get("format")))
}

// handleProfile resolves a ZIP code without rendering, for callers that only
// want the offset and DST policy.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile := s.resolver.Resolve(r.Context(), r.URL.Query().Get("zip"))
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
