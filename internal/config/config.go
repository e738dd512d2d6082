// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceLocal = "local"
	SourceGCS   = "gcs"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DataSource     string
	DataDir        string
	GCSBucket      string
	GCSPrefix      string
	GCSCredentials string

	DefaultTopN   int
	PlaybookPath  string
	FetchTimeout  time.Duration
	FetchMaxRetry time.Duration
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

// Load reads .env when present, then the environment, with defaults.
func Load() Config {
	_ = godotenv.Load()

	source := strings.ToLower(getenv("DATA_SOURCE", SourceLocal))
	if source != SourceGCS {
		source = SourceLocal
	}
	topN := atoienv("DEFAULT_TOP_N", 3)
	if topN <= 0 {
		topN = 3
	}
	return Config{
		Port:           getenv("PORT", "8080"),
		Environment:    getenv("ENVIRONMENT", "local"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		DataSource:     source,
		DataDir:        getenv("DATA_DIR", "./data"),
		GCSBucket:      getenv("GCS_BUCKET", ""),
		GCSPrefix:      getenv("GCS_PREFIX", ""),
		GCSCredentials: getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", getenv("GOOGLE_APPLICATION_CREDENTIALS", "")),
		DefaultTopN:    topN,
		PlaybookPath:   getenv("PLAYBOOK_PATH", ""),
		FetchTimeout:   durenvs("FETCH_TIMEOUT_SEC", 30),
		FetchMaxRetry:  durenvs("FETCH_MAX_RETRY_SEC", 45),
	}
}
