package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware())
	router.GET("/api/v1/sessions/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/sessions/:id", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestObserveGeneration(t *testing.T) {
	counter := generationsTotal.WithLabelValues(OutcomeFallback)
	before := testutil.ToFloat64(counter)

	ObserveGeneration(OutcomeFallback, 10*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestGauges(t *testing.T) {
	SetIndexVectors(6)
	assert.Equal(t, 6.0, testutil.ToFloat64(indexVectors))

	SetActiveSessions(-3)
	assert.Equal(t, 0.0, testutil.ToFloat64(activeSessions))
}
