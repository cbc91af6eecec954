package agent

import (
	"github.com/gin-gonic/gin"

	agentcore "codeberg.org/nomoresql/server/internal/agent"
	"codeberg.org/nomoresql/server/internal/sessions"
)

func RegisterRoutes(router *gin.RouterGroup, agentClient *agentcore.Agent, sessionManager *sessions.Manager) {
	router.POST("/generate", GenerateHandler(agentClient, sessionManager))
}
