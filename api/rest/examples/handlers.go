package examples

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/nomoresql/server/internal/errors"
	"codeberg.org/nomoresql/server/internal/retriever"
)

const maxK = 50

// SearchHandler godoc
// @Summary Search example pairs
// @Description Returns the stored question/SQL pairs nearest to a question, for inspecting retrieval
// @Tags examples
// @Produce json
// @Param q query string true "Question"
// @Param k query int false "Number of neighbours"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/examples/search [get]
func SearchHandler(retrieverClient *retriever.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			errors.BadRequest(c, "query parameter 'q' is required", nil)
			return
		}

		k := retrieverClient.TopK()
		if raw := c.Query("k"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > maxK {
				errors.BadRequest(c, "k must be between 1 and 50", err)
				return
			}

			k = parsed
		}

		if !retrieverClient.Built() {
			errors.ServiceUnavailable(c, "similarity index not built")
			return
		}

		hits, err := retrieverClient.Search(c.Request.Context(), query, k)
		if err != nil {
			errors.InternalError(c, "failed to search examples", err)
			return
		}

		results := make([]Result, len(hits))
		for i, hit := range hits {
			results[i] = Result{
				Question: hit.Question,
				Query:    hit.Query,
				Position: hit.Position,
				Score:    hit.Score,
			}
		}

		c.JSON(http.StatusOK, SearchResponse{
			Query:   query,
			K:       k,
			Results: results,
		})
	}
}
