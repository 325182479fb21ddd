// Package http exposes the JSON API: dashboard and report reads,
// transaction mutations, and the auth endpoints.
package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/helderruiz/controle-mensal/internal/log"
	"github.com/helderruiz/controle-mensal/internal/services"
	"github.com/helderruiz/controle-mensal/internal/session"
)

// appMetrics tracks application-level counters exposed on /metrics.
type appMetrics struct {
	startedAt           time.Time
	totalRequests       atomic.Int64
	transactionsCreated atomic.Int64
}

type Server struct {
	http.Server

	ledger   *services.LedgerService
	reports  *services.ReportService
	sessions *session.State
	auth     session.Gateway

	logger      *log.Logger
	rateLimiter *rateLimiter
	metrics     appMetrics

	stopCacheCleanup chan struct{}
	housekeepingOnce sync.Once
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server. The auth gateway may be nil; auth endpoints then report 503.
func NewServer(addr string, ledger *services.LedgerService, reports *services.ReportService, sessions *session.State, auth session.Gateway, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		ledger:      ledger,
		reports:     reports,
		sessions:    sessions,
		auth:        auth,
		logger:      logger.WithComponent(log.ComponentHTTP),
		rateLimiter: newRateLimiter(),

		stopCacheCleanup: make(chan struct{}),
	}
	s.metrics.startedAt = time.Now()
	go s.cacheCleanupLoop()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/reports/monthly", s.handleMonthlyReport)
	mux.HandleFunc("GET /api/reports/annual", s.handleAnnualReport)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransactions)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/session", s.handleSession)

	handler := log.RequestLogger(logger)(s.withProtection(mux))

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

// withProtection counts requests, sets security headers and rate limits
// mutating methods.
func (s *Server) withProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.metrics.totalRequests.Add(1)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			if !s.rateLimiter.allow(clientAddr(r)) {
				s.logger.WarnContext(r.Context(), "Rate limit exceeded",
					log.FieldClientIP, clientAddr(r), log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// cacheCleanupLoop periodically drops expired report-cache entries.
func (s *Server) cacheCleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.reports.CleanExpired(); removed > 0 {
				s.logger.Debug("Report cache cleanup completed", log.FieldCount, removed)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// stopHousekeeping halts the rate limiter and cache cleanup goroutines.
func (s *Server) stopHousekeeping() {
	s.housekeepingOnce.Do(func() {
		close(s.stopCacheCleanup)
	})
	s.rateLimiter.stop()
}

// Shutdown stops the housekeeping goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.stopHousekeeping()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func clientAddr(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
