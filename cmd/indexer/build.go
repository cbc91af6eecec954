package main

import (
	"context"
	"fmt"
	"path/filepath"

	"codeberg.org/nomoresql/server/internal/config"
	"codeberg.org/nomoresql/server/internal/examples"
	"codeberg.org/nomoresql/server/internal/llm"
	"codeberg.org/nomoresql/server/internal/logger"
	"codeberg.org/nomoresql/server/internal/retriever"
	"codeberg.org/nomoresql/server/internal/storage"
)

// loads the examples, embeds them and writes the index blob to a file or S3
func BuildIndex(ctx context.Context, cfg *config.Config, embedder llm.Embedder, flags config.BuildFlags) error {
	logger.Info("starting index build", "path", flags.Path, "out", flags.Out, "s3", flags.UseS3)

	store, err := loadStore(cfg, flags.Path)
	if err != nil {
		return err
	}

	var sink retriever.IndexSink = storage.NewFileSink(filepath.Dir(flags.Out))

	if flags.UseS3 {
		if !cfg.S3.Enabled() {
			return fmt.Errorf("--s3 needs S3_ENDPOINT and S3_BUCKET")
		}

		sink, err = storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:         cfg.S3.Endpoint,
			Region:           cfg.S3.Region,
			Bucket:           cfg.S3.Bucket,
			AccessKeyID:      cfg.S3.AccessKey,
			SecretAccessKey:  cfg.S3.SecretKey,
			UseSSL:           cfg.S3.UseSSL,
			Prefix:           cfg.S3.Prefix,
			AutoCreateBucket: true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 store: %w", err)
		}
	}

	retrCfg := retriever.LoadConfig()
	retrCfg.IndexKey = filepath.Base(flags.Out)

	client := retriever.NewClient(embedder, sink, retrCfg)

	if err := client.BuildFromStore(ctx, store); err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	logger.Info("successfully built index",
		"pairs", store.Len(),
		"skipped", store.Skipped(),
		"dimension", client.Dim(),
		"key", retrCfg.IndexKey,
	)

	return nil
}

// the indexer never falls back to an empty store: a bad file is an error
func loadStore(cfg *config.Config, path string) (*examples.Store, error) {
	store, err := examples.Load(path, examples.Schema{
		QuestionColumn: cfg.ExamplesQuestionColumn,
		QueryColumn:    cfg.ExamplesQueryColumn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load examples: %w", err)
	}

	if store.Skipped() > 0 {
		logger.Warn("skipped incomplete rows", "count", store.Skipped())
	}

	logger.Info("loaded examples", "pairs", store.Len())

	return store, nil
}
