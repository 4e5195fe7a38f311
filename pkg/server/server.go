package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linguflow/linguflow/pkg/health"
	"github.com/linguflow/linguflow/pkg/invoker"
	"github.com/linguflow/linguflow/pkg/logging"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/repository"
	"github.com/linguflow/linguflow/pkg/telemetry"
)

// Config holds server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080").
	Address string

	// ReadTimeout for HTTP requests.
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds how long Shutdown waits for in-flight
	// requests to drain.
	ShutdownTimeout time.Duration

	// MaxRequestBodySize limits request body size.
	MaxRequestBodySize int64

	// EnableCORS enables CORS headers.
	EnableCORS bool
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Address:            ":8080",
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 * 1024 * 1024,
		EnableCORS:         true,
	}
}

// Server is the HTTP API surface over a Repository/Invoker/Resolver triad.
type Server struct {
	config     Config
	httpServer *http.Server
	repo       repository.Repository
	inv        *invoker.Invoker
	resolver   *registry.Resolver
	health     *health.Checker
	telemetry  *telemetry.Provider
	logger     *logging.Logger
}

// New wires repo/inv/resolver into an HTTP surface. telemetryProvider may be
// nil, in which case /metrics still serves but stays empty of any run
// counters that Provider would otherwise record.
func New(config Config, repo repository.Repository, inv *invoker.Invoker, resolver *registry.Resolver, telemetryProvider *telemetry.Provider) *Server {
	logger := logging.New(logging.DefaultConfig())

	healthChecker := health.NewLinguFlowChecker(repo, "0.1.0")

	s := &Server{
		config:    config,
		repo:      repo,
		inv:       inv,
		resolver:  resolver,
		health:    healthChecker,
		telemetry: telemetryProvider,
		logger:    logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         config.Address,
		Handler:      s.middlewareChain(mux),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// registerRoutes registers every HTTP route. Patterns use Go's
// method-prefixed ServeMux syntax, so no routing library is needed.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.health.HTTPHandler())
	mux.HandleFunc("/health/live", s.health.LivenessHandler())
	mux.HandleFunc("/health/ready", s.health.ReadinessHandler())
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("POST /applications", s.handleCreateApplication)
	mux.HandleFunc("GET /applications", s.handleListApplications)
	mux.HandleFunc("DELETE /applications/{id}", s.handleDeleteApplication)

	mux.HandleFunc("POST /applications/{id}/versions", s.handleCreateVersion)
	mux.HandleFunc("GET /applications/{id}/versions", s.handleListVersions)
	mux.HandleFunc("POST /applications/{id}/versions/{version_id}/activate", s.handleActivateVersion)

	mux.HandleFunc("POST /applications/{id}/async_run", s.handleAsyncRun)
	mux.HandleFunc("GET /interactions/{id}", s.handleGetInteraction)
}

// middlewareChain wraps handler with recovery, logging, and (if enabled)
// CORS, outermost first.
func (s *Server) middlewareChain(handler http.Handler) http.Handler {
	if s.config.EnableCORS {
		handler = s.corsMiddleware(handler)
	}
	handler = s.loggingMiddleware(handler)
	handler = s.recoveryMiddleware(handler)
	return handler
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("server: failed to encode response")
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int, err error) {
	s.logger.WithError(err).WithField("status_code", statusCode).Warn(message)
	s.writeJSONResponse(w, statusCode, map[string]interface{}{
		"error":   message,
		"details": err.Error(),
	})
}

// Start blocks, serving until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.logger.WithField("address", s.config.Address).Info("starting server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: failed to start: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight requests and shuts down telemetry.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: failed to shutdown http server: %w", err)
	}
	if s.telemetry != nil {
		if err := s.telemetry.Shutdown(ctx); err != nil {
			return fmt.Errorf("server: failed to shutdown telemetry: %w", err)
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		s.logger.WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": rw.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": r.RemoteAddr,
		}).Info("http request")
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.WithField("error", fmt.Sprintf("%v", rec)).
					WithField("path", r.URL.Path).
					Error("panic recovered")
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
