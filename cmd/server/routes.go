package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"codeberg.org/nomoresql/server/api/rest/agent"
	"codeberg.org/nomoresql/server/api/rest/examples"
	"codeberg.org/nomoresql/server/api/rest/health"
	"codeberg.org/nomoresql/server/api/rest/sessions"
	"codeberg.org/nomoresql/server/internal/errors"
	"codeberg.org/nomoresql/server/internal/metrics"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server, rateLimit gin.HandlerFunc) {
	router.Use(metrics.Middleware())
	router.Use(CORSMiddleware(server.config.CORSOrigins))

	router.GET("/health", health.Handler(server.services.Retriever))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		errors.NotFound(c, "route")
	})

	v1 := router.Group("/api/v1")
	v1.Use(rateLimit)

	{
		v1.GET("/ping", health.PingHandler)

		agent.RegisterRoutes(v1, server.services.Agent, server.services.Sessions)
		sessions.RegisterRoutes(v1, server.services.Sessions)
		examples.RegisterRoutes(v1, server.services.Retriever)
	}
}
