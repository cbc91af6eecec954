package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

// what the health check reports about the similarity index
type IndexStatus interface {
	Built() bool
	Len() int
}

// returns the server health status. an unbuilt index is reported but still healthy,
// since generation works without examples.
func Handler(index IndexStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:     "healthy",
			Service:    "nomoresql",
			Version:    version,
			IndexBuilt: index.Built(),
			Examples:   index.Len(),
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
