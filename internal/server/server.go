// Package server exposes the projector over HTTP: an HTML page, a JSON API,
// the PDF download and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rpgo/resilience-navigator/internal/calculation"
	"github.com/rpgo/resilience-navigator/internal/domain"
	"golang.org/x/time/rate"
)

// DefaultMaxMonths bounds the work a single request can cause. A projection
// that needs more months is answered with 422 instead of a result; the CLI
// runs the same projector without a limit.
const DefaultMaxMonths = 6000

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Projector      *calculation.Projector
	Defaults       domain.FinancialInputs
	Logger         calculation.Logger
	AllowedOrigins []string
	RateLimit      rate.Limit
	RateBurst      int
	// MaxMonths overrides DefaultMaxMonths for projections run by this server.
	MaxMonths int
}

// Server serves the projection page and API.
type Server struct {
	projector *calculation.Projector
	defaults  domain.FinancialInputs
	logger    calculation.Logger
	metrics   *Metrics
	limiter   *rateLimiter
	origins   []string

	mu  sync.Mutex
	srv *http.Server
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = calculation.NopLogger{}
	}
	// the caller's projector is copied so the guard stays local to the server
	projector := calculation.NewProjector()
	if opts.Projector != nil {
		*projector = *opts.Projector
	}
	projector.MaxMonths = opts.MaxMonths
	if projector.MaxMonths <= 0 {
		projector.MaxMonths = DefaultMaxMonths
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 5
	}
	if opts.RateBurst == 0 {
		opts.RateBurst = 10
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:8080"}
	}
	return &Server{
		projector: projector,
		defaults:  opts.Defaults,
		logger:    opts.Logger,
		metrics:   NewMetrics(),
		limiter:   newRateLimiter(opts.RateLimit, opts.RateBurst),
		origins:   opts.AllowedOrigins,
	}
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Router builds the chi router with all routes configured.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Get("/", s.handleIndex)
		r.Post("/report", s.handleReportForm)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/projection", s.handleProjection)
		r.Post("/chart", s.handleChart)
		r.Post("/report", s.handleReport)
	})
	return r
}

// rateLimit rejects requests from clients that exhausted their bucket. It
// covers every route that runs a projection.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !s.limiter.allow(ip) {
			s.logger.Warnf("rate limit exceeded for %s", ip)
			s.metrics.rateLimited.Inc()
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start listens on addr and blocks until ctx is cancelled or the listener
// fails. Cancellation triggers a graceful shutdown.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.mu.Lock()
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := s.srv
	s.mu.Unlock()

	s.logger.Infof("listening on %s", addr)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	}
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv == nil {
		return nil
	}
	s.logger.Infof("shutting down")
	err := s.srv.Shutdown(ctx)
	s.srv = nil
	return err
}
