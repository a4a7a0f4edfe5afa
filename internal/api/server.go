// SPDX-License-Identifier: MIT

// Package api serves the scoreboard over HTTP: health, games, history,
// the rendered frame, and a manual refresh trigger.
package api

import (
	"context"
	"image"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/courtside/scoreticker/internal/game"
	"github.com/courtside/scoreticker/internal/history"
	"github.com/courtside/scoreticker/internal/jobs"
	"github.com/courtside/scoreticker/internal/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config holds the API server settings.
type Config struct {
	// APIToken guards mutating endpoints. Empty token fails closed unless
	// AuthAnonymous is set.
	APIToken      string
	AuthAnonymous bool

	RateLimitRPS   int
	RateLimitBurst int

	// Tracing wraps the router with otelhttp instrumentation.
	Tracing bool

	Version string
	Display string

	// BreakerState reports the upstream circuit breaker, shown in /api/status.
	// Nil when no breaker is configured.
	BreakerState func() string
}

// HistoryReader is the slice of the history store the API needs.
type HistoryReader interface {
	Recent(ctx context.Context, league string, limit int) ([]history.Entry, error)
}

// Board is the slice of the ticker the API needs.
type Board interface {
	Games() []game.Game
	Current() (*image.RGBA, *game.Game)
}

// RefreshFunc runs a full refresh cycle and returns its status.
type RefreshFunc func(ctx context.Context) (*jobs.Status, error)

// StatusFunc reports the last completed refresh.
type StatusFunc func() jobs.Status

// Deps wires the server to the rest of the daemon. History and Refresh may
// be nil; the corresponding endpoints then answer 404 / 503.
type Deps struct {
	Board   Board
	History HistoryReader
	Refresh RefreshFunc
	Status  StatusFunc
}

// Server is the HTTP API.
type Server struct {
	mu   sync.RWMutex
	cfg  Config
	deps Deps

	router     chi.Router
	started    time.Time
	ready      atomic.Bool
	refreshing atomic.Bool
}

// New builds the server with its full middleware stack.
func New(cfg Config, deps Deps) *Server {
	s := &Server{cfg: cfg, deps: deps, started: time.Now()}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(recovererMiddleware)
	r.Use(securityHeaders)
	r.Use(metricsMiddleware)
	r.Use(log.Middleware())
	if cfg.RateLimitRPS > 0 {
		r.Use(httprate.Limit(
			cfg.RateLimitRPS,
			time.Second,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))
	}

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Get("/frame.png", s.handleFrame)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/games", s.handleGames)
		r.Get("/history", s.handleHistory)
		r.With(s.authMiddleware).Post("/refresh", s.handleRefresh)
	})

	s.router = r
	return s
}

// Handler returns the routable handler, optionally traced.
func (s *Server) Handler() http.Handler {
	if s.cfg.Tracing {
		return otelhttp.NewHandler(s.router, "api")
	}
	return s.router
}

// SetReady flips the readiness probe. The daemon calls it after the first
// successful refresh (or snapshot load).
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// UpdateConfig applies hot-reloaded settings that are safe to change at
// runtime.
func (s *Server) UpdateConfig(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.APIToken = cfg.APIToken
	s.cfg.AuthAnonymous = cfg.AuthAnonymous
}
