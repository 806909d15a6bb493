package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tarotlabs/go-tarot-server/auth"
	"github.com/tarotlabs/go-tarot-server/internal/config"
	"github.com/tarotlabs/go-tarot-server/readings"
	"github.com/tarotlabs/go-tarot-server/server/sessionstore"
	"github.com/tarotlabs/go-tarot-server/token"
)

// Server routes and handles all HTTP traffic. Every collaborator is
// injected explicitly so tests can substitute doubles for the identity
// provider, session store and completion service.
type Server struct {
	mux    *http.ServeMux
	routes []string
	config *config.Config

	provider auth.Provider
	sessions sessionstore.Store
	tokens   *token.Manager

	readings    *readings.Service
	readingRepo readings.Repo

	limiter *ipRateLimiter
}

// New creates the server and registers its routes. The provider may be nil
// in demo mode, where the identity provider is never contacted.
func New(cfg *config.Config, provider auth.Provider, sessions sessionstore.Store, tokens *token.Manager, readingService *readings.Service, readingRepo readings.Repo) *Server {
	s := &Server{
		mux:         http.NewServeMux(),
		config:      cfg,
		provider:    provider,
		sessions:    sessions,
		tokens:      tokens,
		readings:    readingService,
		readingRepo: readingRepo,
		limiter:     newIPRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.config.IsProduction() {
		return
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered")
	}
}

// getScheme determines the request scheme, honouring proxy headers.
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
