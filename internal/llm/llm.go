package llm

import (
	"fmt"
)

// combines an Embedder and a TextGenerator into a single LLM
type CompositeLLM struct {
	Embedder
	TextGenerator
}

// creates a new LLM with auto-configuration from environment variables
func NewLLM() (LLM, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewLLMWithConfig(config)
}

// creates a new LLM with explicit configuration
func NewLLMWithConfig(config *Config) (LLM, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	embedder, err := NewEmbedder(config)
	if err != nil {
		return nil, err
	}

	// create generator based on provider
	var textGenerator TextGenerator

	switch config.GeneratorProvider {
	case ProviderAnthropic:
		textGenerator = NewAnthropicGenerator(AnthropicConfig{
			APIKey:      config.GeneratorAPIKey,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		})
	case ProviderOpenAI, ProviderOllama:
		textGenerator = NewOpenAIGenerator(OpenAIConfig{
			APIKey:      config.GeneratorAPIKey,
			BaseURL:     config.GeneratorBaseURL,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		})
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", config.GeneratorProvider)
	}

	return &CompositeLLM{
		Embedder:      embedder,
		TextGenerator: textGenerator,
	}, nil
}

// creates only the embedder (the indexer does not need a generator)
func NewEmbedder(config *Config) (Embedder, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch config.EmbedderProvider {
	case ProviderOpenAI, ProviderOllama:
		return NewOpenAIEmbedder(OpenAIConfig{
			APIKey:  config.EmbedderAPIKey,
			BaseURL: config.EmbedderBaseURL,
			Model:   config.EmbedderModel,
		}), nil
	case ProviderHash:
		return NewHashEmbedder(defaultHashDimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", config.EmbedderProvider)
	}
}
