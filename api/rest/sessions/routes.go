package sessions

import (
	"github.com/gin-gonic/gin"

	sessionscore "codeberg.org/nomoresql/server/internal/sessions"
)

func RegisterRoutes(router *gin.RouterGroup, sessionManager *sessionscore.Manager) {
	router.GET("/sessions/:id", GetSessionHandler(sessionManager))
	router.DELETE("/sessions/:id", DeleteSessionHandler(sessionManager))
}
