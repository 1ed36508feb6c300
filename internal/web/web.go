package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/datakortet/ttcal"
	"github.com/datakortet/ttcal/internal/config"
	"github.com/datakortet/ttcal/internal/ics"
	appLog "github.com/datakortet/ttcal/internal/log"
	"github.com/datakortet/ttcal/internal/model"
)

const (
	occasionsTTL   = 30 * time.Second
	requestTimeout = 15 * time.Second
)

// Server exposes the calendar types as a read-only JSON API.
type Server struct {
	cfg     *config.Config
	router  *chi.Mux
	fetcher *ics.Fetcher

	// Feed occasions are reloaded at most once per occasionsTTL.
	occMu    sync.RWMutex
	occCache *occasionCache
}

type occasionCache struct {
	occs      []model.Occasion
	updatedAt time.Time
}

// NewServer constructs the router with its middleware chain.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:     cfg,
		router:  chi.NewRouter(),
		fetcher: ics.NewFetcher(cfg.CacheDir),
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(requestLogger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.CleanPath)
	s.router.Use(chimw.Timeout(requestTimeout))

	s.registerRoutes()
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(api chi.Router) {
		api.Get("/today", s.handleToday)
		api.Get("/parse", s.handleParse)
		api.Get("/compare", s.handleCompare)
		api.Route("/period/{tag}", func(p chi.Router) {
			p.Get("/", s.handlePeriod)
			p.Get("/occasions", s.handleOccasions)
			p.Get("/calendar.ics", s.handleCalendar)
		})
		api.Get("/month/{tag}/grid", s.handleMonthGrid)
	})
}

// StartServer serves on cfg.Listen until ctx is cancelled, then shuts
// down gracefully.
func StartServer(ctx context.Context, cfg *config.Config) error {
	s := NewServer(cfg)
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		appLog.Info("shutting down HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// occasions returns the feed occasions, refetching when the cache is
// older than occasionsTTL.
func (s *Server) occasions(ctx context.Context) []model.Occasion {
	s.occMu.RLock()
	oc := s.occCache
	s.occMu.RUnlock()
	if oc != nil && time.Since(oc.updatedAt) < occasionsTTL {
		return oc.occs
	}
	if len(s.cfg.ICS) == 0 {
		return nil
	}

	results, errs := s.fetcher.FetchAll(ctx, ics.SourcesFrom(s.cfg.ICS))
	if len(errs) > 0 {
		appLog.Warn("some calendar feeds failed", "error_count", len(errs), "first", errs[0])
	}
	occs := ics.ParseAll(results, time.Local)

	s.occMu.Lock()
	s.occCache = &occasionCache{occs: occs, updatedAt: time.Now()}
	s.occMu.Unlock()
	return occs
}

// markings combines the configured marks with the feed occasions.
func (s *Server) markings(ctx context.Context, r ttcal.Ranged) []model.Marking {
	var res []model.Marking
	for _, m := range s.cfg.Marks {
		span, err := m.Span()
		if err != nil {
			continue
		}
		res = append(res, model.MarkingOf(span, m.Value))
	}
	for _, o := range model.Within(s.occasions(ctx), r) {
		res = append(res, model.MarkingFor(o))
	}
	return res
}

// statusFor maps core errors to HTTP status codes.
func statusFor(err error) int {
	var (
		pe *ttcal.ParseError
		ae *ttcal.ArgumentError
	)
	switch {
	case errors.Is(err, ttcal.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &pe), errors.As(err, &ae),
		errors.Is(err, ttcal.ErrInvalidDate), errors.Is(err, ttcal.ErrMonthRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeFailure(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		appLog.Error("request failed", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func spanParam(r *http.Request) (ttcal.Span, error) {
	tag := chi.URLParam(r, "tag")
	s, err := ttcal.FromIDTag(tag)
	if err != nil {
		return nil, fmt.Errorf("period %q: %w", tag, err)
	}
	return s, nil
}

// requestLogger logs one line per request through the application logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		appLog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Microsecond),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
