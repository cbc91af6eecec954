package agent

import (
	"context"
	"errors"

	"codeberg.org/nomoresql/server/internal/llm"
	"codeberg.org/nomoresql/server/internal/sessions"
)

// shown to the user when generation fails
const FallbackResponse = "Error generating response."

var ErrEmptyQuestion = errors.New("question is required")

// interface for example retrieval
type Retriever interface {
	RetrieveContext(ctx context.Context, question string, k int) (string, int)
	TopK() int
}

// orchestrates one retrieval-augmented SQL generation turn
type Agent struct {
	retriever Retriever
	generator llm.TextGenerator
}

// contains all inputs for one turn
type GenerateRequest struct {
	Question string
	TopK     int               // 0 uses the retriever default
	History  *sessions.History // optional; receives the question and the reply
}

// contains the formatted SQL and metadata
type GenerateResponse struct {
	Response          string `json:"response"`
	ExamplesRetrieved int    `json:"examples_retrieved"`
	Model             string `json:"model"`
	Failed            bool   `json:"failed"`
}
