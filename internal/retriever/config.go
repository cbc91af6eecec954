package retriever

import (
	"os"
	"strconv"
)

const (
	defaultTopK      = 1
	defaultIndexKey  = "text_to_sql_index.gob"
	defaultBatchSize = 128
)

// loads configuration from environment variables
func LoadConfig() Config {
	topK := defaultTopK
	if topKStr := os.Getenv("RETRIEVAL_TOP_K"); topKStr != "" {
		if val, err := strconv.Atoi(topKStr); err == nil && val > 0 {
			topK = val
		}
	}

	indexKey := os.Getenv("INDEX_PATH")
	if indexKey == "" {
		indexKey = defaultIndexKey
	}

	batchSize := defaultBatchSize
	if batchStr := os.Getenv("EMBEDDING_BATCH_SIZE"); batchStr != "" {
		if val, err := strconv.Atoi(batchStr); err == nil && val > 0 {
			batchSize = val
		}
	}

	return Config{
		TopK:      topK,
		IndexKey:  indexKey,
		BatchSize: batchSize,
	}
}

func (c Config) withDefaults() Config {
	if c.TopK <= 0 {
		c.TopK = defaultTopK
	}

	if c.IndexKey == "" {
		c.IndexKey = defaultIndexKey
	}

	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}

	return c
}
