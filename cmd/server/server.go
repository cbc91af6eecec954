package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"codeberg.org/nomoresql/server/internal/config"
	"codeberg.org/nomoresql/server/internal/logger"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	rateLimit, err := RateLimitMiddleware(cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	services, err := InitializeServices(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return newServerWithServices(cfg, services, rateLimit), nil
}

func newServerWithServices(cfg *config.Config, services *Services, rateLimit gin.HandlerFunc) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		config:   cfg,
		services: services,
		router:   router,
	}

	RegisterRoutes(router, server, rateLimit)

	return server
}

// releases background resources
func (s *Server) Close() {
	logger.Info("dropping in-memory sessions", "active", s.services.Sessions.SessionCount())
	s.services.Sessions.Close()
}
