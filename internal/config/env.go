package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultExamplesPath  = "data/prompt_sql.csv"
	defaultRateLimit     = "60-M"
	defaultSessionTTL    = 30 * time.Minute
	defaultCORSOrigin    = "http://localhost:3000"
	defaultQuestionField = "prompt"
	defaultQueryField    = "completion"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Environment:            getEnv("ENVIRONMENT", "development"),
		Port:                   getEnv("PORT", defaultPort),
		ExamplesPath:           getEnv("EXAMPLES_PATH", defaultExamplesPath),
		ExamplesQuestionColumn: getEnv("EXAMPLES_QUESTION_COLUMN", defaultQuestionField),
		ExamplesQueryColumn:    getEnv("EXAMPLES_QUERY_COLUMN", defaultQueryField),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		RateLimit:              getEnv("RATE_LIMIT", defaultRateLimit),
		SessionTTL:             defaultSessionTTL,
		CORSOrigins:            splitList(getEnv("CORS_ORIGINS", defaultCORSOrigin)),
		S3: S3{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Prefix:    os.Getenv("S3_PREFIX"),
		},
	}

	var err error

	if cfg.ExamplesStrict, err = getBool("EXAMPLES_STRICT"); err != nil {
		return nil, err
	}

	if cfg.S3.UseSSL, err = getBool("S3_USE_SSL"); err != nil {
		return nil, err
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be a positive duration, got %q", raw)
		}

		cfg.SessionTTL = ttl
	}

	if (cfg.S3.Endpoint == "") != (cfg.S3.Bucket == "") {
		return nil, fmt.Errorf("S3_ENDPOINT and S3_BUCKET must be set together")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}

func getBool(key string) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}

	return v, nil
}

func splitList(raw string) []string {
	var out []string

	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
