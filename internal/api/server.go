// Package api provides the HTTP API server and handlers for the book
// discovery service.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookfinder/bookfinder-server/internal/config"
	"github.com/bookfinder/bookfinder-server/internal/logger"
	"github.com/bookfinder/bookfinder-server/internal/ratelimit"
)

const apiVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	services Services
	router   *chi.Mux
	api      huma.API
	limiter  *ratelimit.Limiter
	log      *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg config.ServerConfig, services Services, log *logger.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	var limiter *ratelimit.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
		router.Use(rateLimitMiddleware(limiter))
	}

	humaConfig := huma.DefaultConfig("BookFinder API", apiVersion)
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		services: services,
		router:   router,
		api:      api,
		limiter:  limiter,
		log:      log,
	}

	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerSearchRoutes()
	s.registerRecommendRoutes()
	s.registerBrowseRoutes()
	s.registerMoodRoutes()
	s.registerGraphRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
