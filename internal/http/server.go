// Package http exposes the fleet API: dashboard reads, entity mutations and
// the advisory endpoints. All state lives in the in-memory store; handlers
// read from snapshots and never hold the store lock across a response.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"frota/internal/advisor"
	"frota/internal/log"
	"frota/internal/services"
	"frota/internal/store"
)

type Server struct {
	http.Server

	store    *store.FleetStore
	expenses *services.ExpenseService
	analyzer advisor.ReceiptAnalyzer
	insights advisor.InsightGenerator
	runner   *advisor.Runner
	logger   *log.Logger

	distanceFactor float64

	rateLimiter    *rateLimiter
	dashboardCache *lruCache[dashboardView]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// Options carries the optional collaborators. Nil analyzer/insights disable
// the advisory endpoints with a fixed response instead of an error.
type Options struct {
	Analyzer       advisor.ReceiptAnalyzer
	Insights       advisor.InsightGenerator
	DistanceFactor float64
	Logger         *log.Logger
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, st *store.FleetStore, expenses *services.ExpenseService, opts Options) *Server {
	mux := http.NewServeMux()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentHTTP})
	}

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            st,
		expenses:         expenses,
		analyzer:         opts.Analyzer,
		insights:         opts.Insights,
		runner:           &advisor.Runner{},
		logger:           logger.WithComponent(log.ComponentHTTP),
		distanceFactor:   opts.DistanceFactor,
		rateLimiter:      newRateLimiter(),
		dashboardCache:   newLRUCache[dashboardView](64, 30*time.Second),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.handleDashboard))

	mux.HandleFunc("GET /api/vehicles", s.withMiddleware(s.handleListVehicles))
	mux.HandleFunc("POST /api/vehicles", s.withMiddleware(s.handleCreateVehicle))
	mux.HandleFunc("POST /api/vehicles/{id}/status", s.withMiddleware(s.handleUpdateVehicleStatus))

	mux.HandleFunc("GET /api/drivers", s.withMiddleware(s.handleListDrivers))
	mux.HandleFunc("POST /api/drivers", s.withMiddleware(s.handleCreateDriver))

	mux.HandleFunc("GET /api/expenses", s.withMiddleware(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.withMiddleware(s.handleRecordExpense))

	mux.HandleFunc("GET /api/settings", s.withMiddleware(s.handleGetSettings))
	mux.HandleFunc("PUT /api/settings", s.withMiddleware(s.handleUpdateSettings))

	mux.HandleFunc("POST /api/insights", s.withMiddleware(s.handleInsights))
	mux.HandleFunc("POST /api/receipts/analyze", s.withMiddleware(s.handleAnalyzeReceipt))

	return s
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			ErrorResponse(http.StatusTooManyRequests, "limite de requisições excedido").Write(w)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// invalidateDashboard drops all cached dashboard windows. Called on every
// vehicle or expense mutation.
func (s *Server) invalidateDashboard() {
	s.dashboardCache.Clear()
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.dashboardCache.CleanExpired(); cleaned > 0 {
				s.logger.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
