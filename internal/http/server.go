// Package http provides the JSON API surface of the tracker: route wiring,
// security middleware, dashboard response caching and graceful shutdown.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/classifier"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

const (
	defaultCacheTTL  = 5 * time.Minute
	defaultCacheSize = 128

	// readyTimeout bounds the store ping during readiness checks.
	readyTimeout = 10 * time.Second
)

// Options configures the server and carries the collaborators handlers
// call into. Suggester may be nil; suggestions then degrade to Other.
type Options struct {
	Addr      string
	CacheTTL  time.Duration
	CacheSize int

	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Reports      *services.ReportService
	Suggester    classifier.Suggester
	Pinger       store.Pinger
	Logger       *log.Logger
}

type Server struct {
	http.Server
	transactions *services.TransactionService
	budgets      *services.BudgetService
	reports      *services.ReportService
	suggester    classifier.Suggester
	pinger       store.Pinger
	logger       *log.Logger
	limiter      *rateLimiter
	metrics      *securityMetrics

	// clock supplies the default reference instant for dashboard renders;
	// tests pin it.
	clock func() time.Time

	// dashCache memoizes dashboard computations between ledger writes.
	dashCache    *cache.LRUCache[services.Dashboard]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentHTTP})
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    opts.Addr,
			Handler: log.Trace(logger)(mux),
		},
		transactions: opts.Transactions,
		budgets:      opts.Budgets,
		reports:      opts.Reports,
		suggester:    opts.Suggester,
		pinger:       opts.Pinger,
		logger:       logger,
		limiter:      newRateLimiter(writeRateLimit, time.Minute),
		metrics:      &securityMetrics{},
		clock:        time.Now,
		dashCache:    cache.NewLRUCache[services.Dashboard](opts.CacheSize, opts.CacheTTL),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.dashCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/v1/transactions", s.secure(s.handleTransactions))
	mux.HandleFunc("/v1/budgets", s.secure(s.handleBudgets))
	mux.HandleFunc("/v1/categories/suggest", s.secure(s.handleSuggestCategory))
	mux.HandleFunc("/v1/dashboard", s.secure(s.handleDashboard))

	return s
}

// secure wraps a handler with client IP extraction, per-IP rate limiting on
// mutating methods, suspicious request detection and security headers.
// Request IDs and start/finish logging come from the trace middleware
// around the whole mux.
func (s *Server) secure(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		clientIP := extractClientIP(r)
		if net.ParseIP(clientIP) == nil {
			atomic.AddInt64(&s.metrics.invalidIPAttempts, 1)
		}

		if detectSuspiciousRequest(r, s.metrics) {
			s.logger.WarnContext(ctx, "Suspicious request detected",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
		}

		if isMutating(r.Method) && !s.limiter.allow(clientIP, s.metrics) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			TooManyRequestsError().Write(w)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next(w, r)
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]string{"status": "ok"}).Write(w)
}

// handleReady performs a readiness check with store verification.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if s.pinger != nil {
		if err := s.pinger.Ping(ctx); err != nil {
			s.logger.ErrorContext(ctx, "Readiness check failed", log.FieldError, err)
			NewResponse().
				Status(http.StatusServiceUnavailable).
				JSON(map[string]string{"status": "not_ready", "store": err.Error()}).
				Write(w)
			return
		}
	}

	NewResponse().JSON(map[string]string{"status": "ready"}).Write(w)
}

// suggest never fails; a missing suggester degrades to Other.
func (s *Server) suggest(ctx context.Context, description string) classifier.Suggestion {
	if s.suggester == nil {
		return classifier.Suggestion{Category: core.CategoryOther, Degraded: true}
	}
	return s.suggester.Suggest(ctx, description)
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	// Ensure shutdown logic runs only once
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.limiter != nil {
			s.limiter.stop()
		}

		s.logger.Info("Security metrics at shutdown",
			"rate_limit_hits", atomic.LoadInt64(&s.metrics.rateLimitHits),
			"invalid_ip_attempts", atomic.LoadInt64(&s.metrics.invalidIPAttempts),
			"suspicious_requests", atomic.LoadInt64(&s.metrics.suspiciousRequests))

		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
