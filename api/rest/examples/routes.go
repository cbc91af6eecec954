package examples

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/nomoresql/server/internal/retriever"
)

func RegisterRoutes(router *gin.RouterGroup, retrieverClient *retriever.Client) {
	router.GET("/examples/search", SearchHandler(retrieverClient))
}
