package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/api/graphql"
	"github.com/feral-file/ff-ownership/internal/api/middleware"
	"github.com/feral-file/ff-ownership/internal/api/rest"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/ratelimit"
)

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string

	// RateLimiter throttles mutations, nil disables it
	RateLimiter ratelimit.Limiter
	// GraphQL serves the read API on /graphql, nil disables it
	GraphQL graphql.Handler
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	handler    rest.Handler
	auth       *middleware.Authenticator
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, handler rest.Handler, auth *middleware.Authenticator) *Server {
	return &Server{
		config:  cfg,
		handler: handler,
		auth:    auth,
	}
}

// NewRouter builds the gin engine with the middleware chain and every route
func NewRouter(cfg Config, handler rest.Handler, auth *middleware.Authenticator) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(cfg.AllowedOrigins))

	rest.SetupRoutes(router, handler, auth, cfg.RateLimiter)
	if cfg.GraphQL != nil {
		graphql.SetupRoutes(router, cfg.GraphQL, auth)
	}
	return router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      NewRouter(s.config, s.handler, s.auth),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server", zap.String("address", addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	return nil
}
