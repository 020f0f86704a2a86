// Package http serves the aggregation API and the dashboard.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"moneytracker/internal/cache"
	"moneytracker/internal/core"
	"moneytracker/internal/ledger"
	"moneytracker/internal/recurring"
	"moneytracker/internal/store"
	appweb "moneytracker/web"
)

// Creator is the append path. Reads bypass it and hit the store directly.
type Creator interface {
	Create(ctx context.Context, t core.Transaction) (string, error)
}

type Options struct {
	RecentLimit    int
	CalendarMonths int
	RecurringFile  string
}

func (o Options) withDefaults() Options {
	if o.RecentLimit < 1 {
		o.RecentLimit = 10
	}
	if o.CalendarMonths < 1 {
		o.CalendarMonths = 3
	}
	return o
}

type Server struct {
	http.Server
	templates   *template.Template
	store       store.Store
	creator     Creator
	opts        Options
	rateLimiter *rateLimiter

	// Every view derives from the full transaction list, so that list is
	// the one cached value. Appends and reloads invalidate it.
	txCache *cache.LRU[[]core.Transaction]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

const txCacheKey = "transactions"

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, st store.Store, creator Creator, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            st,
		creator:          creator,
		opts:             opts.withDefaults(),
		rateLimiter:      newRateLimiter(),
		txCache:          cache.NewLRU[[]core.Transaction](4, 30*time.Second),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	// Dashboard partials
	mux.HandleFunc("/ui/summary", s.withSecurityHeaders(s.handleSummarySection))
	mux.HandleFunc("/ui/calendar", s.withSecurityHeaders(s.handleCalendarSection))
	mux.HandleFunc("/ui/recent", s.withSecurityHeaders(s.handleRecentSection))

	// JSON API
	mux.HandleFunc("/api/", s.withSecurityHeaders(s.withJSONRecovery(s.handleAPINotFound)))
	mux.HandleFunc("/api/test", s.withSecurityHeaders(s.withJSONRecovery(s.handleTest)))
	mux.HandleFunc("/api/summary", s.withSecurityHeaders(s.withJSONRecovery(s.handleSummary)))
	mux.HandleFunc("/api/spending-by-category", s.withSecurityHeaders(s.withJSONRecovery(s.handleSpendingByCategory)))
	mux.HandleFunc("/api/monthly-trends", s.withSecurityHeaders(s.withJSONRecovery(s.handleMonthlyTrends)))
	mux.HandleFunc("/api/calendar-data", s.withSecurityHeaders(s.withJSONRecovery(s.handleCalendarData)))
	mux.HandleFunc("/api/recent-transactions", s.withSecurityHeaders(s.withJSONRecovery(s.handleRecentTransactions)))
	mux.HandleFunc("/api/categories", s.withSecurityHeaders(s.withJSONRecovery(s.handleCategories)))
	mux.HandleFunc("/api/reload-data", s.withSecurityHeaders(s.withJSONRecovery(s.handleReloadData)))
	mux.HandleFunc("/api/data-info", s.withSecurityHeaders(s.withJSONRecovery(s.handleDataInfo)))
	mux.HandleFunc("/api/append", s.withSecurityHeaders(s.withJSONRecovery(s.handleAppend)))

	return s
}

// listTransactions returns the full ledger, served from cache when fresh.
func (s *Server) listTransactions(ctx context.Context) ([]core.Transaction, error) {
	if txs, found := s.txCache.Get(txCacheKey); found {
		return txs, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	txs, err := s.store.List(cctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	s.txCache.Set(txCacheKey, txs)
	return txs, nil
}

func (s *Server) invalidateTransactions() {
	s.txCache.Delete(txCacheKey)
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.txCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// projectedEvents merges the month's stored transactions with recurring
// bills projected over the configured horizon starting at that month.
func (s *Server) projectedEvents(ctx context.Context, year, month int) ([]ledger.CalendarEvent, error) {
	txs, err := s.listTransactions(ctx)
	if err != nil {
		return nil, err
	}

	events := ledger.MonthEvents(txs, year, month)

	if s.opts.RecurringFile != "" {
		schedules, err := recurring.LoadFile(s.opts.RecurringFile)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load recurring schedules", "error", err)
		} else if len(schedules) > 0 {
			from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			events = append(events, recurring.Project(schedules, from, s.opts.CalendarMonths)...)
		}
	}

	return events, nil
}
