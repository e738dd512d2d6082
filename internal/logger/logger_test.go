package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSONOutsideLocal(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, "production", "info").Component("dataset")
	log.WithError(errors.New("boom")).Info("loaded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "dataset" || entry["error"] != "boom" || entry["msg"] != "loaded" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, "production", "warn")
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn entry missing: %q", buf.String())
	}
}

func TestWithRequestKeepsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, "production", "info")
	r := httptest.NewRequest("GET", "/weeks", nil)
	r.Header.Set("X-Request-ID", "abc-123")
	log.WithRequest(r).Info("req")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["req_id"] != "abc-123" || entry["path"] != "/weeks" {
		t.Errorf("unexpected entry %v", entry)
	}
}
