package config

import "time"

type Config struct {
	Environment string
	Port        string

	ExamplesPath           string
	ExamplesQuestionColumn string
	ExamplesQueryColumn    string
	ExamplesStrict         bool

	DatabaseURL string
	S3          S3

	RateLimit   string
	SessionTTL  time.Duration
	CORSOrigins []string
}

// object storage for the index blob; Enabled when an endpoint and bucket are set
type S3 struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

func (s S3) Enabled() bool {
	return s.Endpoint != "" && s.Bucket != ""
}

// flags for `indexer build`
type BuildFlags struct {
	Path  string
	Out   string
	UseS3 bool
}

// flags for `indexer export`
type ExportFlags struct {
	Path  string
	Clear bool
}
