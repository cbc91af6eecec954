package llm

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultOllamaBaseURL   = "http://localhost:11434/v1"
	defaultEmbedderModel   = "all-minilm"
	defaultOllamaModel     = "llama3.1:70b"
	defaultOpenAIModel     = "gpt-4o-mini"
	defaultAnthropicModel  = "claude-3-5-haiku-latest"
	defaultGenMaxTokens    = 1024
	defaultGenTemperature  = 0.0
	defaultHashDimension   = 256
	ollamaPlaceholderToken = "ollama"
)

// loads LLM configuration from environment variables
func LoadConfig() (*Config, error) {
	ollamaURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaURL == "" {
		ollamaURL = defaultOllamaBaseURL
	}

	// embedder configuration
	embedderProvider := Provider(os.Getenv("EMBEDDER_PROVIDER"))
	if embedderProvider == "" {
		embedderProvider = ProviderOllama // default
	}

	embedderModel := os.Getenv("EMBEDDER_MODEL")
	if embedderModel == "" {
		embedderModel = defaultEmbedderModel
	}

	embedderKey, embedderURL, err := credentialsFor(embedderProvider, ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}

	// generator configuration
	generatorProvider := Provider(os.Getenv("GENERATOR_PROVIDER"))
	if generatorProvider == "" {
		generatorProvider = ProviderOllama // default
	}

	generatorModel := os.Getenv("GENERATOR_MODEL")
	if generatorModel == "" {
		generatorModel = defaultGeneratorModelFor(generatorProvider)
	}

	generatorKey, generatorURL, err := credentialsFor(generatorProvider, ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	generatorMaxTokens := defaultGenMaxTokens
	if maxTokensStr := os.Getenv("GENERATOR_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil {
			generatorMaxTokens = val
		}
	}

	generatorTemperature := float32(defaultGenTemperature)
	if tempStr := os.Getenv("GENERATOR_TEMPERATURE"); tempStr != "" {
		if val, err := strconv.ParseFloat(tempStr, 32); err == nil {
			generatorTemperature = float32(val)
		}
	}

	return &Config{
		EmbedderProvider:     embedderProvider,
		EmbedderAPIKey:       embedderKey,
		EmbedderModel:        embedderModel,
		EmbedderBaseURL:      embedderURL,
		GeneratorProvider:    generatorProvider,
		GeneratorAPIKey:      generatorKey,
		GeneratorModel:       generatorModel,
		GeneratorBaseURL:     generatorURL,
		GeneratorMaxTokens:   generatorMaxTokens,
		GeneratorTemperature: generatorTemperature,
	}, nil
}

// returns the API key and base URL a provider needs
func credentialsFor(provider Provider, ollamaURL string) (string, string, error) {
	switch provider {
	case ProviderOllama:
		return ollamaPlaceholderToken, ollamaURL, nil
	case ProviderOpenAI:
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return "", "", fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}

		return key, "", nil
	case ProviderAnthropic:
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return "", "", fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
		}

		return key, "", nil
	case ProviderHash:
		return "", "", nil
	default:
		return "", "", fmt.Errorf("unknown provider: %s", provider)
	}
}

// returns the generator model used when GENERATOR_MODEL is unset
func defaultGeneratorModelFor(provider Provider) string {
	switch provider {
	case ProviderOpenAI:
		return defaultOpenAIModel
	case ProviderAnthropic:
		return defaultAnthropicModel
	default:
		return defaultOllamaModel
	}
}
