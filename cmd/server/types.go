package main

import (
	"context"

	"codeberg.org/nomoresql/server/internal/agent"
	"codeberg.org/nomoresql/server/internal/config"
	"codeberg.org/nomoresql/server/internal/examples"
	"codeberg.org/nomoresql/server/internal/llm"
	"codeberg.org/nomoresql/server/internal/retriever"
	"codeberg.org/nomoresql/server/internal/sessions"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	router   *gin.Engine
}

// holds all service clients (LLM, examples, retriever, agent, sessions)
type Services struct {
	Agent     *agent.Agent
	LLM       llm.LLM
	Examples  *examples.Store
	Retriever *retriever.Client
	Sessions  *sessions.Manager
}

// an index sink that can also read back what an earlier run wrote
type indexStore interface {
	retriever.IndexSink
	Get(ctx context.Context, key string) ([]byte, error)
}
