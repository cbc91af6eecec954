package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragments(parts []string, err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range parts {
			if !yield(p, nil) {
				return
			}
		}

		if err != nil {
			yield("", err)
		}
	}
}

func TestCollect(t *testing.T) {
	text, err := Collect(fragments([]string{"SELECT ", "* ", "FROM t"}, nil))
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t", text)
}

func TestCollectStopsOnError(t *testing.T) {
	boom := errors.New("connection reset")

	text, err := Collect(fragments([]string{"SELECT"}, boom))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "SELECT", text)
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	return math.Sqrt(sum)
}

func TestHashEmbedderDeterministicAndNormalised(t *testing.T) {
	e := NewHashEmbedder(64)

	a, err := e.GenerateEmbedding(context.Background(), "How many users signed up?")
	require.NoError(t, err)

	b, err := e.GenerateEmbedding(context.Background(), "how many USERS signed up")
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.Equal(t, a, b, "tokenisation ignores case and punctuation")
	assert.InDelta(t, 1.0, norm(a), 1e-5)
}

func TestHashEmbedderEmptyText(t *testing.T) {
	vec, err := NewHashEmbedder(8).GenerateEmbedding(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, make([]float32, 8), vec)
}

func TestOpenAIEmbedderOrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","model":"all-minilm","data":[
			{"object":"embedding","index":1,"embedding":[0,2]},
			{"object":"embedding","index":0,"embedding":[3,4]}
		]}`)
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{APIKey: "ollama", BaseURL: srv.URL + "/v1", Model: "all-minilm"})

	vecs, err := e.GenerateEmbeddings(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)

	assert.InDeltaSlice(t, []float32{0.6, 0.8}, vecs[0], 1e-6)
	assert.InDeltaSlice(t, []float32{0, 1}, vecs[1], 1e-6)
}

func TestOpenAIEmbedderCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[1]}]}`)
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{APIKey: "k", BaseURL: srv.URL + "/v1"})

	_, err := e.GenerateEmbeddings(context.Background(), []string{"a", "b"})
	require.Error(t, err)
}

func sseChunk(t *testing.T, content string) string {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion.chunk",
		"created": 1,
		"model":   "llama3.1:70b",
		"choices": []map[string]any{{"index": 0, "delta": map[string]string{"content": content}}},
	})
	require.NoError(t, err)

	return "data: " + string(payload) + "\n\n"
}

func TestOpenAIGeneratorStreamsFragments(t *testing.T) {
	var got struct {
		Model       string    `json:"model"`
		Stream      bool      `json:"stream"`
		Temperature *float32  `json:"temperature"`
		Messages    []Message `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseChunk(t, "SELECT * "))
		fmt.Fprint(w, sseChunk(t, "FROM users"))
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	g := NewOpenAIGenerator(OpenAIConfig{APIKey: "ollama", BaseURL: srv.URL + "/v1", Model: "llama3.1:70b"})

	var parts []string
	for fragment, err := range g.GenerateStream(context.Background(), TextGenerationRequest{
		Messages: []Message{{Role: RoleUser, Content: "list users"}},
	}) {
		require.NoError(t, err)
		parts = append(parts, fragment)
	}

	assert.Equal(t, []string{"SELECT * ", "FROM users"}, parts)
	assert.Equal(t, "llama3.1:70b", got.Model)
	assert.True(t, got.Stream)
	require.NotNil(t, got.Temperature, "zero temperature must still be sent")
	assert.InDelta(t, 0, *got.Temperature, 1e-6)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, RoleUser, got.Messages[0].Role)
	assert.Equal(t, "list users", got.Messages[0].Content)
}

func TestOpenAIGeneratorServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"model not found","type":"server_error"}}`)
	}))
	defer srv.Close()

	g := NewOpenAIGenerator(OpenAIConfig{APIKey: "ollama", BaseURL: srv.URL + "/v1", Model: "missing"})

	_, err := Collect(g.GenerateStream(context.Background(), TextGenerationRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	}))
	require.Error(t, err)
}

func TestAnthropicGenerator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":"  SELECT 1  "}]}`)
	}))
	defer srv.Close()

	g := NewAnthropicGenerator(AnthropicConfig{APIKey: "secret", Model: "claude", URL: srv.URL})

	text, err := Collect(g.GenerateStream(context.Background(), TextGenerationRequest{
		Messages: []Message{{Role: RoleUser, Content: "one"}},
	}))
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", text)
	assert.Equal(t, "claude", g.Model())
}

func TestAnthropicGeneratorNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"type":"error"}`)
	}))
	defer srv.Close()

	g := NewAnthropicGenerator(AnthropicConfig{APIKey: "k", Model: "m", URL: srv.URL})

	_, err := Collect(g.GenerateStream(context.Background(), TextGenerationRequest{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("EMBEDDER_PROVIDER", "")
	t.Setenv("GENERATOR_PROVIDER", "")
	t.Setenv("EMBEDDER_MODEL", "")
	t.Setenv("GENERATOR_MODEL", "")
	t.Setenv("OLLAMA_BASE_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.EmbedderProvider)
	assert.Equal(t, "all-minilm", cfg.EmbedderModel)
	assert.Equal(t, defaultOllamaBaseURL, cfg.EmbedderBaseURL)
	assert.Equal(t, ProviderOllama, cfg.GeneratorProvider)
	assert.Equal(t, "llama3.1:70b", cfg.GeneratorModel)
}

func TestLoadConfigDefaultModelPerProvider(t *testing.T) {
	tests := []struct {
		provider string
		key      string
		want     string
	}{
		{provider: "ollama", want: "llama3.1:70b"},
		{provider: "openai", key: "OPENAI_API_KEY", want: "gpt-4o-mini"},
		{provider: "anthropic", key: "ANTHROPIC_API_KEY", want: "claude-3-5-haiku-latest"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Setenv("EMBEDDER_PROVIDER", "hash")
			t.Setenv("GENERATOR_PROVIDER", tt.provider)
			t.Setenv("GENERATOR_MODEL", "")
			if tt.key != "" {
				t.Setenv(tt.key, "secret")
			}

			cfg, err := LoadConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.GeneratorModel)
		})
	}
}

func TestLoadConfigRequiresKeys(t *testing.T) {
	t.Setenv("EMBEDDER_PROVIDER", "hash")
	t.Setenv("GENERATOR_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestNewLLMWithConfigRejectsUnknownProvider(t *testing.T) {
	_, err := NewLLMWithConfig(&Config{EmbedderProvider: ProviderHash, GeneratorProvider: "bogus"})
	require.Error(t, err)

	l, err := NewLLMWithConfig(&Config{EmbedderProvider: ProviderHash, GeneratorProvider: ProviderOllama, GeneratorModel: "m"})
	require.NoError(t, err)
	assert.Equal(t, "m", l.Model())
}
