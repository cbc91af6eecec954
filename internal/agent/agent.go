package agent

import (
	"context"
	"strings"
	"time"

	"codeberg.org/nomoresql/server/internal/formatter"
	"codeberg.org/nomoresql/server/internal/llm"
	"codeberg.org/nomoresql/server/internal/logger"
	"codeberg.org/nomoresql/server/internal/metrics"
)

func New(ret Retriever, generator llm.TextGenerator) *Agent {
	return &Agent{
		retriever: ret,
		generator: generator,
	}
}

func (a *Agent) Model() string {
	return a.generator.Model()
}

// runs retrieve, assemble, generate and format for one question.
// generation failures never surface as errors: the response carries FallbackResponse and Failed.
func (a *Agent) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	log := logger.FromContext(ctx)

	k := req.TopK
	if k <= 0 {
		k = a.retriever.TopK()
	}

	examplesBlock, retrieved := a.retriever.RetrieveContext(ctx, question, k)

	instruction := BuildInstruction(question, examplesBlock)
	log.Debug("calling generator", "model", a.generator.Model(), "examples", retrieved, "instruction", instruction)

	if req.History != nil {
		req.History.Append(llm.RoleUser, question)
	}

	start := time.Now()

	text, err := llm.Collect(a.generator.GenerateStream(ctx, llm.TextGenerationRequest{
		Model:    a.generator.Model(),
		Messages: []llm.Message{{Role: llm.RoleUser, Content: instruction}},
	}))

	failed := err != nil
	if failed {
		log.Warn("generation failed, returning fallback", "model", a.generator.Model(), "error", err)
		metrics.ObserveGeneration(metrics.OutcomeFallback, time.Since(start))

		text = FallbackResponse
	} else {
		metrics.ObserveGeneration(metrics.OutcomeOK, time.Since(start))

		text = formatter.Format(stripMarkdownSQL(text))
	}

	if req.History != nil {
		req.History.Append(llm.RoleAssistant, text)
	}

	return &GenerateResponse{
		Response:          text,
		ExamplesRetrieved: retrieved,
		Model:             a.generator.Model(),
		Failed:            failed,
	}, nil
}
