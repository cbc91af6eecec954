package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category string
	}{
		{"not found", fmt.Errorf("route /api/v2 not found"), CategoryNotFound},
		{"deadline", fmt.Errorf("search: %w", context.DeadlineExceeded), CategoryTimeout},
		{"canceled", context.Canceled, CategoryTimeout},
		{"embedding", fmt.Errorf("failed to generate query embedding: boom"), CategoryUpstream},
		{"dial", fmt.Errorf("dial tcp 127.0.0.1:11434: refused"), CategoryNetwork},
		{"invalid", fmt.Errorf("invalid object key"), CategoryValidation},
		{"other", fmt.Errorf("something odd"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, classifyError(tt.err).category)
		})
	}
}

func TestSanitizeErrorInProduction(t *testing.T) {
	err := fmt.Errorf("failed to generate query embedding: secret upstream body")

	t.Setenv("ENVIRONMENT", "development")
	assert.Equal(t, err.Error(), sanitizeError(err))

	t.Setenv("ENVIRONMENT", "production")
	assert.Equal(t, "model provider error", sanitizeError(err))
	assert.Empty(t, sanitizeError(nil))
}

func TestInternalErrorResponse(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/examples/search", nil)

	InternalError(c, "search failed", fmt.Errorf("dial tcp: refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeServerError, body.Error)
	assert.Equal(t, "search failed", body.Message)
	assert.Equal(t, "connection error occurred", body.Details)
}

func TestValidatePathUUID(t *testing.T) {
	tests := []struct {
		id     string
		ok     bool
		status int
	}{
		{"0b8e3c5e-4f0e-4f7e-9a53-7f3f1d9c2b11", true, http.StatusOK},
		{"not-a-uuid", false, http.StatusNotFound},
		{"", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: tt.id}}

		id, ok := ValidatePathUUID(c, "id")
		assert.Equal(t, tt.ok, ok, "id %q", tt.id)
		if ok {
			assert.Equal(t, tt.id, id)
		}
		assert.Equal(t, tt.status, w.Code, "id %q", tt.id)
	}
}
