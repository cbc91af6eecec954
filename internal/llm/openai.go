package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const defaultOpenAIEmbeddingModel = "text-embedding-3-small"

// shared HTTP client for OpenAI-compatible API calls
// reuses connection pool and timeout configuration
var openaiHTTPClient = &http.Client{
	Timeout: 120 * time.Second, // local models can be slow to answer
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// configures a client for OpenAI or any OpenAI-compatible server (Ollama's /v1)
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string // empty means api.openai.com
	Model       string
	MaxTokens   int
	Temperature float32
}

func newOpenAIClient(config OpenAIConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.HTTPClient = openaiHTTPClient

	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return openai.NewClientWithConfig(clientConfig)
}

type OpenAIEmbedder struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

func NewOpenAIEmbedder(config OpenAIConfig) *OpenAIEmbedder {
	if config.Model == "" {
		config.Model = defaultOpenAIEmbeddingModel
	}

	return &OpenAIEmbedder{
		client:  newOpenAIClient(config),
		model:   config.Model,
		limiter: rate.NewLimiter(50, 10),
	}
}

func (e *OpenAIEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	return embeddings[0], nil
}

// embeds a batch in one request. vectors are L2-normalised so inner product equals cosine.
func (e *OpenAIEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range", data.Index)
		}

		vec := make([]float32, len(data.Embedding))
		copy(vec, data.Embedding)
		l2normalize(vec)

		embeddings[data.Index] = vec
	}

	return embeddings, nil
}

// streams chat completions from an OpenAI-compatible server
type OpenAIGenerator struct {
	client  *openai.Client
	config  OpenAIConfig
	limiter *rate.Limiter
}

func NewOpenAIGenerator(config OpenAIConfig) *OpenAIGenerator {
	if config.MaxTokens == 0 {
		config.MaxTokens = defaultGenMaxTokens
	}

	return &OpenAIGenerator{
		client:  newOpenAIClient(config),
		config:  config,
		limiter: rate.NewLimiter(50, 10),
	}
}

func (g *OpenAIGenerator) Model() string {
	return g.config.Model
}

func (g *OpenAIGenerator) GenerateStream(ctx context.Context, req TextGenerationRequest) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if err := g.limiter.Wait(ctx); err != nil {
			yield("", fmt.Errorf("rate limiter error: %w", err))
			return
		}

		stream, err := g.client.CreateChatCompletionStream(ctx, g.chatRequest(req))
		if err != nil {
			yield("", fmt.Errorf("failed to start completion stream: %w", err))
			return
		}

		defer stream.Close() //nolint:errcheck

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				yield("", fmt.Errorf("failed to read completion stream: %w", err))
				return
			}

			if len(resp.Choices) == 0 {
				continue
			}

			delta := resp.Choices[0].Delta.Content
			if delta == "" {
				continue
			}

			if !yield(delta, nil) {
				return
			}
		}
	}
}

func (g *OpenAIGenerator) chatRequest(req TextGenerationRequest) openai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = g.config.Model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	// go-openai omits a zero temperature, which lets the server pick its own default
	temperature := g.config.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Stream:      true,
	}
}
