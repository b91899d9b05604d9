// Package server provides the HTTP REST API for the resume analyzer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/jonathan/resume-analyzer/internal/store"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Analyzer runs one analysis for a request.
type Analyzer interface {
	AnalyzeRequest(ctx context.Context, req types.AnalysisRequest) (*analysis.Response, error)
}

// Config holds server configuration
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	MaxUploadBytes  int64
	RateLimit       *ratelimit.Config // nil uses ratelimit.DefaultConfig
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	handler         http.Handler
	store           store.Store
	analyzer        Analyzer
	decoder         *ingestion.Decoder
	rateLimiter     *ratelimit.Limiter
	logger          *zap.Logger
	corsOrigins     map[string]bool
	allowAnyOrigin  bool
	shutdownTimeout time.Duration
}

// New creates a new server instance
func New(cfg Config, st store.Store, analyzer Analyzer, logger *zap.Logger) *Server {
	s := &Server{
		store:           st,
		analyzer:        analyzer,
		decoder:         ingestion.NewDecoder(cfg.MaxUploadBytes),
		rateLimiter:     ratelimit.NewLimiter(cfg.RateLimit),
		logger:          logging.OrNop(logger),
		corsOrigins:     make(map[string]bool, len(cfg.CORSOrigins)),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			s.allowAnyOrigin = true
		}
		s.corsOrigins[origin] = true
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 30 * time.Second
	}

	mux := http.NewServeMux()

	// Analysis endpoints
	mux.HandleFunc("POST /api/analysis", s.handleAnalyze)
	mux.HandleFunc("GET /api/analysis", s.handleListAnalyses)
	mux.HandleFunc("GET /api/analysis/{id}", s.handleGetAnalysis)
	mux.HandleFunc("DELETE /api/analysis/{id}", s.handleDeleteAnalysis)

	// Job description endpoints
	mux.HandleFunc("POST /api/jobs", s.handleCreateJob)
	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	mux.HandleFunc("PUT /api/jobs/{id}", s.handleUpdateJob)
	mux.HandleFunc("DELETE /api/jobs/{id}", s.handleDeleteJob)

	// Resume endpoints
	mux.HandleFunc("POST /api/resumes/upload", s.handleUploadResume)
	mux.HandleFunc("GET /api/resumes/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /api/resumes/{id}", s.handleDeleteResume)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.handler = s.withCORS(s.withRateLimit(s.withLogging(s.withMetrics(mux))))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.Close()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close stops the rate limiter's background cleanup. It is safe to call
// more than once and is called by Start on the way out.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers for allowed origins
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (s.allowAnyOrigin || s.corsOrigins[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// withMetrics records request counts and latency by route pattern.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// ServeMux sets Pattern on the request it was handed
		route := routeLabel(r.Pattern)
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// routeLabel strips the method from a mux pattern; unmatched requests share one label.
func routeLabel(pattern string) string {
	if pattern == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status and writes it. Server errors are logged
// and their details withheld from the client.
func (s *Server) writeError(w http.ResponseWriter, err error, message string) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(message, zap.Error(err))
		s.errorResponse(w, status, message)
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
