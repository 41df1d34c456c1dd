package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xivmarket/marketboard/internal/api/middleware"
	"github.com/xivmarket/marketboard/internal/api/rest"
	"github.com/xivmarket/marketboard/internal/api/ws"
	"github.com/xivmarket/marketboard/internal/logger"
	"github.com/xivmarket/marketboard/internal/ratelimit"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	handler    rest.Handler
	wsHandler  *ws.Handler
	limiter    ratelimit.Limiter
	httpServer *http.Server
}

// New creates a new API server. The limiter is optional; a nil limiter
// disables request throttling.
func New(cfg Config, handler rest.Handler, wsHandler *ws.Handler, limiter ratelimit.Limiter) *Server {
	return &Server{
		config:    cfg,
		handler:   handler,
		wsHandler: wsHandler,
		limiter:   limiter,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())
	if s.limiter != nil {
		router.Use(middleware.RateLimit(s.limiter))
	}

	// Setup REST routes
	rest.SetupRoutes(router, s.handler)

	// Websocket endpoint for real-time dispatch
	if s.wsHandler != nil {
		router.GET("/api/v1/ws", s.wsHandler.Serve)
	}

	// Create HTTP server. The websocket endpoint holds connections
	// open indefinitely, so no server-level write timeout.
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: s.config.ReadTimeout,
		IdleTimeout: s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
