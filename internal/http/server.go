// Package http exposes the ledger over a JSON API, including the
// whole-document resources older clients read and write directly.
package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"kharcha/internal/cache"
	"kharcha/internal/ledger"
	applog "kharcha/internal/log"
	"kharcha/internal/middleware/ratelimit"
	"kharcha/internal/middleware/trace"
	"kharcha/internal/services"
)

type Server struct {
	http.Server
	service *services.LedgerService
	logger  *applog.Logger
	limiter *ratelimit.Limiter
	tracer  *trace.Middleware

	// Read caches, purged on every write.
	summaryCache *cache.LRUCache[ledger.Summary]
	reportCache  *cache.LRUCache[reportPayload]
	savingsCache *cache.LRUCache[ledger.SavingsReport]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// Config holds server configuration.
type Config struct {
	Addr               string
	RateLimitPerMinute int
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(cfg Config, service *services.LedgerService, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	mux := http.NewServeMux()

	s := &Server{
		service: service,
		logger:  logger.WithComponent(applog.ComponentHTTP),
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
		}),
		tracer:       trace.NewMiddleware(extractClientIP),
		summaryCache: cache.NewLRUCache[ledger.Summary](100, 5*time.Minute),
		reportCache:  cache.NewLRUCache[reportPayload](100, 5*time.Minute),
		savingsCache: cache.NewLRUCache[ledger.SavingsReport](10, 5*time.Minute),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.Register(s.savingsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	// Whole-document resources. The trailing-slash variants accept the
	// id segment older clients append to PUT URLs.
	mux.HandleFunc("/dailyRecords", s.secured(s.handleDailyRecords))
	mux.HandleFunc("/dailyRecords/", s.secured(s.handleDailyRecords))
	mux.HandleFunc("/frequentRecords", s.secured(s.handleFrequentRecords))
	mux.HandleFunc("/frequentRecords/", s.secured(s.handleFrequentRecords))

	// Day editing
	mux.HandleFunc("/day", s.secured(s.handleDay))
	mux.HandleFunc("/day/items", s.secured(s.handleDayItems))
	mux.HandleFunc("/day/frequent", s.secured(s.handleDayFrequent))

	// Income and frequent catalog
	mux.HandleFunc("/income", s.secured(s.handleIncome))
	mux.HandleFunc("/frequent", s.secured(s.handleFrequent))

	// Reports
	mux.HandleFunc("/summary", s.secured(s.handleSummary))
	mux.HandleFunc("/report", s.secured(s.handleReport))
	mux.HandleFunc("/savings", s.secured(s.handleSavings))

	s.Server = http.Server{
		Addr:    cfg.Addr,
		Handler: s.tracer.Middleware(applog.Middleware(logger)(mux)),
	}

	return s
}

// secured adds security headers and rate limits mutating methods.
func (s *Server) secured(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			clientIP := extractClientIP(r)
			if !s.limiter.Allow(clientIP) {
				s.logger.WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next(w, r)
	}
}

// invalidateReadCaches drops every cached aggregate after a write.
func (s *Server) invalidateReadCaches() {
	s.summaryCache.Purge()
	s.reportCache.Purge()
	s.savingsCache.Purge()
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// extractClientIP resolves the client address, preferring proxy headers.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if idx := strings.IndexByte(ip, ','); idx >= 0 {
			return strings.TrimSpace(ip[:idx])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady probes the store with a short timeout.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.service.Ledger(ctx); err != nil {
		s.logger.WarnContext(ctx, "Readiness check failed", "error", err)
		http.Error(w, "store not reachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
