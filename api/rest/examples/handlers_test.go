package examples

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "codeberg.org/nomoresql/server/internal/errors"
	"codeberg.org/nomoresql/server/internal/llm"
	"codeberg.org/nomoresql/server/internal/retriever"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, build bool) *gin.Engine {
	t.Helper()

	client := retriever.NewClient(llm.NewHashEmbedder(64), nil, retriever.Config{TopK: 2})

	if build {
		require.NoError(t, client.Build(context.Background(),
			[]string{"how many users are there", "list all orders placed today"},
			[]string{"SELECT COUNT(*) FROM users", "SELECT * FROM orders WHERE day = today()"},
		))
	}

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), client)

	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSearchHandler(t *testing.T) {
	router := newRouter(t, true)

	w := get(router, "/api/v1/examples/search?q=how+many+users+are+there&k=1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.K)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 0, resp.Results[0].Position)
	assert.Equal(t, "SELECT COUNT(*) FROM users", resp.Results[0].Query)
	assert.InDelta(t, 1.0, resp.Results[0].Score, 1e-5)
}

func TestSearchHandlerDefaultK(t *testing.T) {
	router := newRouter(t, true)

	w := get(router, "/api/v1/examples/search?q=orders")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.K)
}

func TestSearchHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		build  bool
		path   string
		status int
		code   string
	}{
		{"missing q", true, "/api/v1/examples/search", http.StatusBadRequest, apierrors.CodeBadRequest},
		{"bad k", true, "/api/v1/examples/search?q=x&k=zero", http.StatusBadRequest, apierrors.CodeBadRequest},
		{"k too large", true, "/api/v1/examples/search?q=x&k=51", http.StatusBadRequest, apierrors.CodeBadRequest},
		{"unbuilt index", false, "/api/v1/examples/search?q=x", http.StatusServiceUnavailable, apierrors.CodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newRouter(t, tt.build), tt.path)
			require.Equal(t, tt.status, w.Code)

			var body apierrors.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error)
		})
	}
}
