// Package web provides the HTTP API of the wellness journal.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/justestif/wellness-journal/internal/auth"
	"github.com/justestif/wellness-journal/internal/metrics"
	"github.com/justestif/wellness-journal/internal/moods"
	"github.com/justestif/wellness-journal/internal/notes"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = ":5000"

	// maxBodyBytes caps JSON request bodies.
	maxBodyBytes = 1 << 20

	limiterSweepInterval = 5 * time.Minute
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr    string
	Auth    *auth.Service
	Notes   *notes.Service
	Moods   *moods.Service
	Logger  *logrus.Logger
	Metrics *metrics.Metrics

	// AllowedOrigins lists browser origins permitted by CORS. "*" allows any.
	AllowedOrigins []string

	// LoginRateLimit and LoginBurst bound register and login attempts per
	// client IP. A zero limit disables the limiter.
	LoginRateLimit rate.Limit
	LoginBurst     int
}

// Server is the HTTP server for the journal API.
type Server struct {
	router   chi.Router
	server   *http.Server
	log      *logrus.Logger
	metrics  *metrics.Metrics
	handlers *Handlers
	limiter  *RateLimiter
	cors     *CORS
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Auth == nil || cfg.Notes == nil || cfg.Moods == nil {
		return nil, errors.New("auth, notes and moods services are required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	router := chi.NewRouter()

	s := &Server{
		router:   router,
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
		handlers: NewHandlers(cfg.Auth, cfg.Notes, cfg.Moods, cfg.Logger, cfg.Metrics),
		cors:     NewCORS(cfg.AllowedOrigins),
	}
	if cfg.LoginRateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.LoginRateLimit, cfg.LoginBurst)
	}

	// Configure middleware
	s.setupMiddleware()

	// Configure routes
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.Instrument)
	s.router.Use(s.cors.Handler)
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.Get("/health", h.Health)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if s.limiter != nil {
				r.Use(s.limiter.Handler)
			}
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)
			r.Get("/me", h.Me)
			r.Post("/logout", h.Logout)
		})
	})

	s.router.Route("/api/notes", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/", h.ListNotes)
		r.Post("/", h.CreateNote)
		r.Get("/{id}", h.GetNote)
		r.Put("/{id}", h.UpdateNote)
		r.Delete("/{id}", h.DeleteNote)
	})

	s.router.Route("/api/moods", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/", h.ListMoods)
		r.Post("/", h.UpsertMood)
		r.Get("/{date}", h.GetMood)
		r.Delete("/{date}", h.DeleteMood)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Route not found"})
	})
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.WithField("addr", s.server.Addr).Info("starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	if s.limiter != nil {
		go s.limiter.Sweep(sweepCtx, limiterSweepInterval)
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt or error
	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.log.Info("shutting down server")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}
