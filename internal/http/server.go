package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"financas/internal/cache"
	"financas/internal/core"
	applog "financas/internal/log"
	"financas/internal/services"
)

// summaryTTL bounds how long a computed overview is served from memory.
// Writes invalidate it, so callers always see their own transactions.
const summaryTTL = time.Minute

// Server exposes the ledger as a small JSON API. The presentation layer
// (forms, tables, charts) lives elsewhere and consumes these endpoints.
type Server struct {
	http.Server
	svc *services.LedgerService

	summaryCache *cache.TTLCache[core.Overview]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

func NewServer(addr string, svc *services.LedgerService) *Server {
	s := &Server{
		svc:              svc,
		summaryCache:     cache.NewTTLCache[core.Overview](summaryTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/options", s.handleOptions)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/cards", s.handleCards)
	mux.HandleFunc("/api/cards/summary", s.handleCardSummary)

	s.Server = http.Server{
		Addr:    addr,
		Handler: withRequestLogging(mux),
	}

	go s.startCacheCleanup()

	return s
}

// withRequestLogging logs one line per request with outcome and duration.
func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		slog.InfoContext(r.Context(), "Request handled",
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, sw.status,
			applog.FieldDuration, time.Since(start).Milliseconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// startCacheCleanup runs periodic cleanup for the summary cache.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.summaryCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed",
					applog.FieldComponent, applog.ComponentHTTP,
					"entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
