package main

import (
	"context"
	"fmt"

	"codeberg.org/nomoresql/server/internal/config"
	"codeberg.org/nomoresql/server/internal/llm"
	"codeberg.org/nomoresql/server/internal/logger"
	"codeberg.org/nomoresql/server/internal/retriever"
	"codeberg.org/nomoresql/server/internal/storage"
)

const exportBatchSize = 500

// writes every example pair and its embeddings to Postgres
func ExportExamples(ctx context.Context, cfg *config.Config, embedder llm.Embedder, db *storage.Client, flags config.ExportFlags) error {
	logger.Info("starting examples export", "path", flags.Path, "clear", flags.Clear)

	store, err := loadStore(cfg, flags.Path)
	if err != nil {
		return err
	}

	if store.Len() == 0 {
		logger.Info("no examples to export, skipping")
		return nil
	}

	retrCfg := retriever.LoadConfig()
	client := retriever.NewClient(embedder, nil, retrCfg)

	if err := client.BuildFromStore(ctx, store); err != nil {
		return fmt.Errorf("failed to embed examples: %w", err)
	}

	entries, err := client.Entries()
	if err != nil {
		return err
	}

	if err := db.EnsureSchema(ctx, client.Dim()); err != nil {
		return err
	}

	if flags.Clear {
		logger.Info("clearing existing examples")

		if err := db.ClearAllExamples(ctx); err != nil {
			return fmt.Errorf("failed to clear existing examples: %w", err)
		}
	}

	for start := 0; start < len(entries); start += exportBatchSize {
		end := min(start+exportBatchSize, len(entries))

		if err := db.InsertExamplesBatch(ctx, exampleRows(entries[start:end])); err != nil {
			return fmt.Errorf("failed to insert examples %d-%d: %w", start, end, err)
		}
	}

	count, err := db.GetExampleCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify example count: %w", err)
	}

	logger.Info("successfully exported examples",
		"examples_inserted", len(entries),
		"total_examples", count,
	)

	return nil
}

func exampleRows(entries []retriever.Entry) []storage.ExampleRow {
	rows := make([]storage.ExampleRow, len(entries))

	for i, e := range entries {
		rows[i] = storage.ExampleRow{
			Position:          e.Position,
			Pair:              e.Pair,
			QuestionEmbedding: e.QuestionEmbedding,
			QueryEmbedding:    e.QueryEmbedding,
		}
	}

	return rows
}
