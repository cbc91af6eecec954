package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/nomoresql/server/internal/config"
	"codeberg.org/nomoresql/server/internal/llm"
	"codeberg.org/nomoresql/server/internal/logger"
	"codeberg.org/nomoresql/server/internal/storage"
)

func usage() {
	fmt.Println("Usage: indexer <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  build   - embed the example pairs and write the similarity index blob")
	fmt.Println("  export  - write the example pairs and their embeddings to Postgres")
	fmt.Println("\nOptions:")
	fmt.Println("  --path <path>  - examples file (.csv, .parquet, .json)")
	fmt.Println("  --out <file>   - index blob path (build)")
	fmt.Println("  --s3           - write the blob to S3 (build)")
	fmt.Println("  --clear        - clear existing rows before exporting (export)")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.SetDefault(logger.New(cfg.Environment, nil))

	llmCfg, err := llm.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load LLM configuration", "error", err)
	}

	embedder, err := llm.NewEmbedder(llmCfg)
	if err != nil {
		logger.Fatal("failed to create embedder", "error", err)
	}

	ctx := context.Background()

	switch command {
	case "build":
		flags := config.ParseBuildFlags(os.Args[2:], cfg.ExamplesPath)
		if err := BuildIndex(ctx, cfg, embedder, flags); err != nil {
			logger.Fatal("failed to build index", "error", err)
		}

	case "export":
		flags := config.ParseExportFlags(os.Args[2:], cfg.ExamplesPath)

		if cfg.DatabaseURL == "" {
			logger.Fatal("DATABASE_URL environment variable is required for export")
		}

		db, err := storage.NewClient(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to database", "error", err)
		}

		defer db.Close() //nolint:errcheck

		logger.Info("connected to database")

		if err := ExportExamples(ctx, cfg, embedder, db, flags); err != nil {
			logger.FatalErr(err, "failed to export examples")
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}
}
