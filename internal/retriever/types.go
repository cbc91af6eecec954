package retriever

import (
	"context"
	"errors"
	"sync"

	"codeberg.org/nomoresql/server/internal/examples"
	"codeberg.org/nomoresql/server/internal/index"
	"codeberg.org/nomoresql/server/internal/llm"
)

var (
	ErrNotBuilt = errors.New("index not built")

	// wraps sink failures; the in-memory index is still usable when Build returns it
	ErrPersist = errors.New("failed to persist index")
)

// receives the encoded index blob. implemented by storage.FileSink and storage.S3Store.
type IndexSink interface {
	Put(ctx context.Context, key string, data []byte) error
}

type Client struct {
	embedder llm.Embedder
	sink     IndexSink
	config   Config

	mu        sync.RWMutex
	built     bool
	index     *index.FlatIP
	questions []string
	queries   []string
}

type Config struct {
	TopK      int    // default number of neighbours to search
	IndexKey  string // key the blob is written under
	BatchSize int    // texts per embedding request
}

// one retrieved example with its index position and inner-product score
type Result struct {
	examples.Pair
	Position int     `json:"position"`
	Score    float32 `json:"score"`
}

// one indexed pair with both of its embeddings, as written by the exporter
type Entry struct {
	examples.Pair
	Position          int
	QuestionEmbedding []float32
	QueryEmbedding    []float32
}
