package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/config"
	"example.com/backstage/services/campaign/internal/api/handlers"
	"example.com/backstage/services/campaign/internal/metrics"
	"example.com/backstage/services/campaign/internal/services"
	"example.com/backstage/services/campaign/internal/tracing"
)

const shutdownTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	config     config.Config
	router     *gin.Engine
	httpServer *http.Server
	services   *services.Services
	tracer     tracing.Tracer
	metrics    *metrics.Metrics
	checks     map[string]handlers.HealthCheck
}

// NewServer creates a new HTTP server
func NewServer(cfg config.Config, svc *services.Services, tracer tracing.Tracer, m *metrics.Metrics, checks map[string]handlers.HealthCheck) *Server {
	if !cfg.IsDevelopment() && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		config:   cfg,
		services: svc,
		tracer:   tracer,
		metrics:  m,
		checks:   checks,
	}
	server.router = server.setupRouter()
	server.httpServer = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return server
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the HTTP router
func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware())

	if s.tracer != nil && s.tracer.App() != nil {
		router.Use(NewRelicMiddleware(s.tracer.App()))
	}
	if s.config.Server.CorsEnabled {
		router.Use(CORSMiddleware(s.config.Server.CorsOrigins))
	}
	if s.config.Server.MetricsEnabled {
		router.Use(MetricsMiddleware(s.metrics))
	}

	metricsHandler := handlers.NewMetricsHandler(s.metrics, s.checks)
	router.GET("/health", metricsHandler.HandleGetHealthCheck)
	router.GET("/metrics", metricsHandler.HandleGetMetrics)

	auth := NewAuthenticator(s.config.Auth, s.services.Roles)
	v1 := router.Group("/api/v1")
	v1.Use(auth.Middleware())

	handlers.NewMemberHandler(s.services.Team).RegisterRoutes(v1)
	handlers.NewDeliveryHandler(s.services.Deliveries).RegisterRoutes(v1)
	handlers.NewPaymentHandler(s.services.Payments).RegisterRoutes(v1)
	handlers.NewReportHandler(s.services.Reports).RegisterRoutes(v1)
	handlers.NewExportHandler(s.services.Exports).RegisterRoutes(v1)

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.Server.Address).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "HTTP server error")
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "HTTP server shutdown error")
	}

	log.Info().Msg("HTTP server shut down successfully")
	return nil
}
