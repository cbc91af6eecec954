package llm

import (
	"context"
	"iter"
)

// combines embedding generation and text generation
type LLM interface {
	Embedder
	TextGenerator
}

// represents different LLM providers
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
	ProviderHash      Provider = "hash"
)

// generates embeddings from text.
// GenerateEmbeddings returns one vector per input text, in input order.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// generates text from a conversation.
// GenerateStream yields response fragments in order; a non-nil error ends the sequence.
type TextGenerator interface {
	GenerateStream(ctx context.Context, req TextGenerationRequest) iter.Seq2[string, error]
	Model() string
}

// a single chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type TextGenerationRequest struct {
	Model        string    // overrides the configured model when set
	SystemPrompt string    // optional
	Messages     []Message // conversation, oldest first
	MaxTokens    int       // 0 uses the configured default
}

// holds configuration for LLM initialization
type Config struct {
	// embedder configuration
	EmbedderProvider Provider
	EmbedderAPIKey   string
	EmbedderModel    string // e.g., "all-minilm", "text-embedding-3-small"
	EmbedderBaseURL  string

	// generator configuration
	GeneratorProvider    Provider
	GeneratorAPIKey      string
	GeneratorModel       string // e.g., "llama3.1:70b"
	GeneratorBaseURL     string
	GeneratorMaxTokens   int
	GeneratorTemperature float32
}
