package config

import (
	"testing"
	"time"
)

var keys = []string{
	"PORT", "ENVIRONMENT", "LOG_LEVEL", "DATA_SOURCE", "DATA_DIR", "GCS_BUCKET", "GCS_PREFIX",
	"GOOGLE_APPLICATION_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS_JSON",
	"DEFAULT_TOP_N", "PLAYBOOK_PATH", "FETCH_TIMEOUT_SEC", "FETCH_MAX_RETRY_SEC",
}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c := Load()
	if c.Port != "8080" || c.Environment != "local" || c.LogLevel != "info" {
		t.Fatalf("server defaults: %+v", c)
	}
	if c.DataSource != SourceLocal || c.DataDir != "./data" {
		t.Fatalf("source defaults: %+v", c)
	}
	if c.DefaultTopN != 3 || c.PlaybookPath != "" {
		t.Fatalf("analysis defaults: %+v", c)
	}
	if c.FetchTimeout != 30*time.Second || c.FetchMaxRetry != 45*time.Second {
		t.Fatalf("fetch defaults: %+v", c)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_SOURCE", "GCS")
	t.Setenv("GCS_BUCKET", "weekly-data")
	t.Setenv("GCS_PREFIX", "reports/")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/keys/sa.json")
	t.Setenv("DEFAULT_TOP_N", "5")
	t.Setenv("FETCH_TIMEOUT_SEC", "10")
	c := Load()
	if c.Port != "9090" || c.DataSource != SourceGCS || c.GCSBucket != "weekly-data" || c.GCSPrefix != "reports/" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.GCSCredentials != "/keys/sa.json" {
		t.Fatalf("credentials = %q", c.GCSCredentials)
	}
	if c.DefaultTopN != 5 || c.FetchTimeout != 10*time.Second {
		t.Fatalf("numeric overrides: %+v", c)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_SOURCE", "ftp")
	t.Setenv("DEFAULT_TOP_N", "-2")
	t.Setenv("FETCH_MAX_RETRY_SEC", "soon")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", `{"type":"service_account"}`)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/keys/ignored.json")
	c := Load()
	if c.DataSource != SourceLocal || c.DefaultTopN != 3 || c.FetchMaxRetry != 45*time.Second {
		t.Fatalf("bad values should fall back to defaults: %+v", c)
	}
	if c.GCSCredentials != `{"type":"service_account"}` {
		t.Fatalf("inline credentials should win, got %q", c.GCSCredentials)
	}
}
