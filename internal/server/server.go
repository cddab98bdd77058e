// Package server contains routing, middleware, and handlers for the relay.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/desertthunder/vibent/internal/auth"
	"github.com/desertthunder/vibent/internal/cache"
	"github.com/desertthunder/vibent/internal/metrics"
	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/services"
	"github.com/desertthunder/vibent/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler wraps the stdlib handler interface and adds route registration,
// so a handler can own every path it serves.
type Handler interface {
	http.Handler
	Routes() []string
}

// Router defines HTTP routing with middleware management.
type Router interface {
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// Server is the stateless upstream relay. It forwards requests to Spotify,
// Ticketmaster, and Amadeus without holding per-user sessions; tokens come
// from the request or from the refresh grant the caller supplies.
type Server struct {
	config       *shared.Config
	logger       *log.Logger
	spotify      *services.SpotifyService
	ticketmaster *services.TicketmasterService
	amadeus      *services.AmadeusService
	protocol     *auth.Protocol
	concerts     *cache.TTL[[]models.Event]
	recorder     metrics.Recorder
	gatherer     prometheus.Gatherer
	router       *BasicRouter
	httpServer   *http.Server
}

// New builds a Server from config. Upstream credentials may be absent; each
// endpoint that needs a missing one reports it at request time.
func New(config *shared.Config, logger *log.Logger) *Server {
	spotify := services.NewSpotifyService(config.Credentials.Spotify.Map())

	registry := prometheus.NewRegistry()

	s := &Server{
		config:       config,
		logger:       logger,
		spotify:      spotify,
		ticketmaster: services.NewTicketmasterService(config.Credentials.Ticketmaster.APIKey),
		amadeus:      services.NewAmadeusService(config.Credentials.Amadeus.ClientID, config.Credentials.Amadeus.ClientSecret),
		protocol:     auth.NewProtocol(spotify.OAuthConfig()),
		concerts:     cache.New[[]models.Event](),
		recorder:     metrics.NewCollector(registry),
		gatherer:     registry,
		router:       NewBasicRouter(),
	}

	s.routes()
	return s
}

// Addr returns the listen address derived from config.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
}

// Router returns the configured router, mainly for tests driving it with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// routes registers every endpoint and the middleware stack.
func (s *Server) routes() {
	s.router.Use(RequestLogger(s.logger), CORS(), RecordRequests(s.recorder))

	s.router.Handle(http.MethodGet, "/{$}", http.HandlerFunc(s.handleIndex))
	s.router.Handle(http.MethodGet, "/login", http.HandlerFunc(s.handleLogin))
	s.router.Handle(http.MethodGet, "/callback", http.HandlerFunc(s.handleCallback))
	s.router.Handle(http.MethodGet, "/refresh_token", http.HandlerFunc(s.handleRefreshToken))
	s.router.Handle(http.MethodGet, "/related-artists/{artistId}", http.HandlerFunc(s.handleRelatedArtists))
	s.router.Handle(http.MethodGet, "/concerts", http.HandlerFunc(s.handleConcerts))
	s.router.Handle(http.MethodGet, "/flights", http.HandlerFunc(s.handleFlights))
	s.router.Handle(http.MethodGet, "/healthz", http.HandlerFunc(s.handleHealthz))
	s.router.Handle(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))
}

// Start runs the HTTP server until ctx is canceled, then shuts down
// gracefully with a short drain window.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("relay listening", "addr", s.Addr())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
