package sessions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/nomoresql/server/internal/errors"
	sessionscore "codeberg.org/nomoresql/server/internal/sessions"
)

// GetSessionHandler godoc
// @Summary Get a conversation
// @Description Returns the question/answer transcript of a live session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func GetSessionHandler(sessionManager *sessionscore.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		// missing and expired look the same to clients
		session, err := sessionManager.GetSession(id)
		if err != nil {
			errors.SessionNotFound(c)
			return
		}

		c.JSON(http.StatusOK, SessionResponse{
			ID:        session.ID,
			CreatedAt: session.CreatedAt,
			Messages:  session.History.Messages(),
		})
	}
}

// DeleteSessionHandler godoc
// @Summary End a conversation
// @Description Drops a live session and its transcript
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func DeleteSessionHandler(sessionManager *sessionscore.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		if _, err := sessionManager.GetSession(id); err != nil {
			errors.SessionNotFound(c)
			return
		}

		sessionManager.DeleteSession(id)
		c.Status(http.StatusNoContent)
	}
}
