// Package api provides the HTTP API server and handlers for the Heritage Atlas application.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/heritageatlas/heritage-server/internal/config"
	"github.com/heritageatlas/heritage-server/internal/ratelimit"
	"github.com/heritageatlas/heritage-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger

	uploadLimiter  *ratelimit.KeyedRateLimiter
	uploadMaxBytes int64
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, store *store.Store, services *Services, logger *slog.Logger) *Server {
	s := &Server{
		store:          store,
		services:       services,
		router:         chi.NewRouter(),
		logger:         logger,
		uploadLimiter:  ratelimit.New(cfg.Upload.RatePerMinute/60, cfg.Upload.RateBurst),
		uploadMaxBytes: cfg.Upload.MaxBytes,
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("Heritage Atlas API", "1.0.0")
	humaConfig.Info.Description = "REST API over the UNESCO World Heritage Sites dataset"
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerIndexRoutes()
	s.registerSiteRoutes()
	s.registerReferenceRoutes()
	s.registerStatsRoutes()
	s.registerGeoRoutes()
	s.registerHealthRoutes()
	s.registerUploadRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(cfg.Server.CORSOrigins, ","),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}
