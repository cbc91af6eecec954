package sessions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "codeberg.org/nomoresql/server/internal/errors"
	"codeberg.org/nomoresql/server/internal/llm"
	sessionscore "codeberg.org/nomoresql/server/internal/sessions"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) (*gin.Engine, *sessionscore.Manager) {
	t.Helper()

	manager := sessionscore.NewManager(time.Hour)
	t.Cleanup(manager.Close)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), manager)

	return router, manager
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetSessionHandler(t *testing.T) {
	router, manager := setup(t)

	session := manager.CreateSession()
	session.History.Append(llm.RoleUser, "how many orders")
	session.History.Append(llm.RoleAssistant, "SELECT COUNT(*)\nFROM orders")

	w := get(router, "/api/v1/sessions/"+session.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, session.ID, resp.ID)
	assert.Equal(t, session.History.Messages(), resp.Messages)
}

func TestGetSessionHandlerNotFound(t *testing.T) {
	router, _ := setup(t)

	for _, path := range []string{
		"/api/v1/sessions/0b8e3c5e-4f0e-4f7e-9a53-7f3f1d9c2b11",
		"/api/v1/sessions/not-a-uuid",
	} {
		w := get(router, path)
		require.Equal(t, http.StatusNotFound, w.Code, path)

		var body apierrors.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apierrors.CodeSessionNotFound, body.Error)
	}
}

func TestDeleteSessionHandler(t *testing.T) {
	router, manager := setup(t)
	session := manager.CreateSession()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+session.ID, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, manager.SessionCount())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+session.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, http.StatusNotFound, get(router, "/api/v1/sessions/"+session.ID).Code)
}
