package agent

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	agentcore "codeberg.org/nomoresql/server/internal/agent"
	"codeberg.org/nomoresql/server/internal/errors"
	"codeberg.org/nomoresql/server/internal/logger"
	"codeberg.org/nomoresql/server/internal/sessions"
)

// GenerateHandler godoc
// @Summary Generate SQL from a question
// @Description Retrieves similar question/SQL pairs, asks the model for a query and formats it
// @Tags agent
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Generation request"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/generate [post]
func GenerateHandler(agentClient *agentcore.Agent, sessionManager *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		// unknown or expired sessions start a fresh conversation
		session, created := sessionManager.GetOrCreate(req.SessionID)
		if created && req.SessionID != "" {
			logger.Debug("session not found, created a new one", "requested", req.SessionID, "session_id", session.ID)
		}

		resp, err := agentClient.Generate(c.Request.Context(), agentcore.GenerateRequest{
			Question: req.Question,
			TopK:     req.TopK,
			History:  session.History,
		})
		if err != nil {
			if stderrors.Is(err, agentcore.ErrEmptyQuestion) {
				errors.BadRequest(c, "question is required", nil)
				return
			}

			errors.InternalError(c, "failed to generate query", err)
			return
		}

		if err := sessionManager.Touch(session.ID); err != nil {
			logger.WarnErr(err, "failed to extend session", "session_id", session.ID)
		}

		c.JSON(http.StatusOK, GenerateResponse{
			Response:          resp.Response,
			SessionID:         session.ID,
			ExamplesRetrieved: resp.ExamplesRetrieved,
			Model:             resp.Model,
			Failed:            resp.Failed,
		})
	}
}
