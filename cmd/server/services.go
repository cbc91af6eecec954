package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"codeberg.org/nomoresql/server/internal/agent"
	"codeberg.org/nomoresql/server/internal/config"
	"codeberg.org/nomoresql/server/internal/examples"
	"codeberg.org/nomoresql/server/internal/llm"
	"codeberg.org/nomoresql/server/internal/logger"
	"codeberg.org/nomoresql/server/internal/retriever"
	"codeberg.org/nomoresql/server/internal/sessions"
	"codeberg.org/nomoresql/server/internal/storage"
)

// creates and configures all service clients.
// only configuration errors are returned; a bad examples file or a failed index
// build leaves the agent answering without examples.
func InitializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	llmClient, err := llm.NewLLM()
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	store, err := loadExamples(cfg)
	if err != nil {
		return nil, err
	}

	retrCfg := retriever.LoadConfig()

	sink, key, err := newIndexSink(ctx, cfg, retrCfg.IndexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create index sink: %w", err)
	}

	if size, ok := previousIndexSize(ctx, sink, key); ok {
		logger.Info("replacing persisted similarity index", "key", key, "bytes", size)
	}

	retrCfg.IndexKey = key
	retrieverClient := retriever.NewClient(llmClient, sink, retrCfg)

	buildIndex(ctx, retrieverClient, store)

	return &Services{
		Agent:     agent.New(retrieverClient, llmClient),
		LLM:       llmClient,
		Examples:  store,
		Retriever: retrieverClient,
		Sessions:  sessions.NewManager(cfg.SessionTTL),
	}, nil
}

// loads the example pairs. in lenient mode any load error yields an empty store.
func loadExamples(cfg *config.Config) (*examples.Store, error) {
	schema := examples.Schema{
		QuestionColumn: cfg.ExamplesQuestionColumn,
		QueryColumn:    cfg.ExamplesQueryColumn,
	}

	store, err := examples.Load(cfg.ExamplesPath, schema)
	if err != nil {
		if cfg.ExamplesStrict {
			return nil, fmt.Errorf("failed to load examples from %s: %w", cfg.ExamplesPath, err)
		}

		logger.WarnErr(err, "failed to load examples, continuing with none", "path", cfg.ExamplesPath)
		return examples.Empty(), nil
	}

	logger.Info("examples loaded", "path", cfg.ExamplesPath, "pairs", store.Len(), "skipped", store.Skipped())

	return store, nil
}

func buildIndex(ctx context.Context, retrieverClient *retriever.Client, store *examples.Store) {
	err := retrieverClient.BuildFromStore(ctx, store)

	switch {
	case err == nil:
		logger.Info("similarity index built", "pairs", store.Len())
	case errors.Is(err, retriever.ErrPersist):
		logger.WarnErr(err, "similarity index built but not persisted", "pairs", store.Len())
	default:
		logger.ErrorErr(err, "failed to build similarity index, continuing without examples")
	}
}

// reports the size of the blob a previous run persisted under key
func previousIndexSize(ctx context.Context, store indexStore, key string) (int, bool) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrObjectNotFound) {
			logger.WarnErr(err, "failed to read persisted similarity index", "key", key)
		}

		return 0, false
	}

	return len(data), true
}

// picks S3 when configured, otherwise a file next to indexPath.
// returns the key the blob should be written under.
func newIndexSink(ctx context.Context, cfg *config.Config, indexPath string) (indexStore, string, error) {
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
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
			return nil, "", err
		}

		return s3Store, filepath.ToSlash(filepath.Base(indexPath)), nil
	}

	return storage.NewFileSink(filepath.Dir(indexPath)), filepath.Base(indexPath), nil
}
