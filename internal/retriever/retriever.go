package retriever

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"codeberg.org/nomoresql/server/internal/examples"
	"codeberg.org/nomoresql/server/internal/index"
	"codeberg.org/nomoresql/server/internal/llm"
	"codeberg.org/nomoresql/server/internal/logger"
	"codeberg.org/nomoresql/server/internal/metrics"
)

// creates an unbuilt retriever. sink may be nil, in which case Build keeps the index in memory only.
func NewClient(embedder llm.Embedder, sink IndexSink, config Config) *Client {
	return &Client{
		embedder: embedder,
		sink:     sink,
		config:   config.withDefaults(),
	}
}

func (c *Client) TopK() int {
	return c.config.TopK
}

func (c *Client) Built() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.built
}

// number of example pairs behind the index
func (c *Client) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.questions)
}

// embeds every question and every query and indexes them, questions first.
// on failure the previous state (usually unbuilt) is kept.
func (c *Client) Build(ctx context.Context, questions, queries []string) error {
	if len(questions) != len(queries) {
		return fmt.Errorf("got %d questions but %d queries", len(questions), len(queries))
	}

	ix, err := c.buildIndex(ctx, questions, queries)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.index = ix
	c.questions = append([]string(nil), questions...)
	c.queries = append([]string(nil), queries...)
	c.built = true
	c.mu.Unlock()

	metrics.SetIndexVectors(ix.Len())

	if c.sink == nil {
		return nil
	}

	return c.Persist(ctx)
}

// indexes every pair of the store
func (c *Client) BuildFromStore(ctx context.Context, store *examples.Store) error {
	return c.Build(ctx, store.Questions(), store.Queries())
}

func (c *Client) buildIndex(ctx context.Context, questions, queries []string) (*index.FlatIP, error) {
	if len(questions) == 0 {
		return index.NewFlatIP(0), nil
	}

	questionVecs, err := c.embedAll(ctx, questions)
	if err != nil {
		return nil, fmt.Errorf("failed to embed questions: %w", err)
	}

	queryVecs, err := c.embedAll(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("failed to embed queries: %w", err)
	}

	ix := index.NewFlatIP(len(questionVecs[0]))

	if err := ix.Add(questionVecs...); err != nil {
		return nil, fmt.Errorf("failed to index questions: %w", err)
	}

	if err := ix.Add(queryVecs...); err != nil {
		return nil, fmt.Errorf("failed to index queries: %w", err)
	}

	return ix, nil
}

// embeds texts in batches, preserving order
func (c *Client) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += c.config.BatchSize {
		end := min(start+c.config.BatchSize, len(texts))

		batch, err := c.embedder.GenerateEmbeddings(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", start, end, err)
		}

		if len(batch) != end-start {
			return nil, fmt.Errorf("batch %d-%d: expected %d embeddings, got %d", start, end, end-start, len(batch))
		}

		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

// writes the current index to the sink under the configured key
func (c *Client) Persist(ctx context.Context) error {
	if c.sink == nil {
		return fmt.Errorf("%w: no sink configured", ErrPersist)
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}

	if err := c.sink.Put(ctx, c.config.IndexKey, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return nil
}

// writes the index as an opaque blob
func (c *Client) Encode(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.built {
		return ErrNotBuilt
	}

	return c.index.Encode(w)
}

// embedding dimension of the built index, 0 when unbuilt or empty
func (c *Client) Dim() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.built {
		return 0
	}

	return c.index.Dim()
}

// returns every indexed pair with its question and query embeddings
func (c *Client) Entries() ([]Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.built {
		return nil, ErrNotBuilt
	}

	n := len(c.questions)
	entries := make([]Entry, 0, n)

	for i := range n {
		questionVec, _ := c.index.Vector(i)
		queryVec, _ := c.index.Vector(n + i)

		entries = append(entries, Entry{
			Pair:              examples.Pair{Question: c.questions[i], Query: c.queries[i]},
			Position:          i,
			QuestionEmbedding: questionVec,
			QueryEmbedding:    queryVec,
		})
	}

	return entries, nil
}

// returns up to k examples whose question is closest to the given one.
// query-side hits still use up one of the k slots and are then dropped.
// an unbuilt index yields no results and no error.
func (c *Client) Search(ctx context.Context, question string, k int) ([]Result, error) {
	start := time.Now()

	results, err := c.search(ctx, question, k)

	switch {
	case err != nil:
		metrics.ObserveRetrieval(metrics.OutcomeError, 0, time.Since(start))
	case !c.Built():
		metrics.ObserveRetrieval(metrics.OutcomeUnbuilt, 0, time.Since(start))
	default:
		metrics.ObserveRetrieval(metrics.OutcomeOK, len(results), time.Since(start))
	}

	return results, err
}

func (c *Client) search(ctx context.Context, question string, k int) ([]Result, error) {
	if k <= 0 {
		k = 1
	}

	c.mu.RLock()
	built, ix, questions, queries := c.built, c.index, c.questions, c.queries
	c.mu.RUnlock()

	if !built || ix.Len() == 0 {
		return nil, nil
	}

	embedding, err := c.embedder.GenerateEmbedding(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	hits, err := ix.Search(embedding, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	return resultsFromHits(hits, questions, queries), nil
}

// Search followed by FormatContext. failures are logged and yield an empty context.
func (c *Client) RetrieveContext(ctx context.Context, question string, k int) (string, int) {
	results, err := c.Search(ctx, question, k)
	if err != nil {
		logger.FromContext(ctx).Warn("retrieval failed, continuing without examples", "error", err)
		return "", 0
	}

	return FormatContext(results), len(results)
}
