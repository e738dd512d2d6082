package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"opportunity-insights-go/internal/actionable"
	"opportunity-insights-go/internal/dataset"
	"opportunity-insights-go/internal/logger"
)

const weekCSV = `product_id,product_name,product_category,platform,price_avg,sales_volume,views,engagement_rate,growth_rate,profit_margin
P1,Smart Mug,home,TikTok,30,1000,500000,5,20,40
P2,Pet Bed,pets,Etsy,45,300,200000,3,10,30
P3,Desk Lamp,home,Amazon,20,800,100000,2,5,25
`

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "week_01")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "All_Data_Week_01.csv"), []byte(weekCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	log := logger.Discard()
	s := NewServer(Options{
		Loader:       dataset.NewLoader(dataset.LocalSource{Root: root}, log),
		Narrator:     actionable.New(actionable.DefaultPlaybook()),
		DefaultTopN:  3,
		FetchTimeout: 5 * time.Second,
		Log:          log,
	})
	s.now = func() time.Time { return time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC) }
	return s.Routes()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthzOK(t *testing.T) {
	rr := do(setupServer(t), http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestListWeeks(t *testing.T) {
	rr := do(setupServer(t), http.MethodGet, "/weeks", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var out struct{ Weeks []int }
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Weeks) != 1 || out.Weeks[0] != 1 {
		t.Fatalf("weeks = %v", out.Weeks)
	}
}

func TestWeekSummary(t *testing.T) {
	h := setupServer(t)
	rr := do(h, http.MethodGet, "/weeks/1/summary", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var s dataset.WeekSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.Week != 1 || s.TotalProducts != 3 {
		t.Fatalf("unexpected summary %+v", s)
	}

	if rr := do(h, http.MethodGet, "/weeks/9/summary", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown week: expected 404, got %d", rr.Code)
	}
	if rr := do(h, http.MethodGet, "/weeks/abc/summary", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad week: expected 400, got %d", rr.Code)
	}
}

func TestAnalyzeStoredWeek(t *testing.T) {
	h := setupServer(t)
	rr := do(h, http.MethodGet, "/analyze?week=1&top_n=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.RunID == "" || !env.GeneratedAt.Equal(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("envelope = %s / %v", env.RunID, env.GeneratedAt)
	}
	if env.Report.Week != 1 || env.Report.ProductCount != 3 {
		t.Fatalf("report header = %d / %d", env.Report.Week, env.Report.ProductCount)
	}
	if len(env.Report.Recommendations) != 2 || len(env.Report.ActionPlans) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(env.Report.Recommendations))
	}
	if env.Report.Recommendations[0].TotalScore < env.Report.Recommendations[1].TotalScore {
		t.Fatal("recommendations out of order")
	}

	for _, target := range []string{"/analyze?week=1&top_n=0", "/analyze?week=x", "/analyze"} {
		if rr := do(h, http.MethodGet, target, ""); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rr.Code)
		}
	}
	if rr := do(h, http.MethodGet, "/analyze?week=4", ""); rr.Code != http.StatusNotFound {
		t.Errorf("unknown week: expected 404, got %d", rr.Code)
	}
}

func TestAnalyzePostedDataset(t *testing.T) {
	h := setupServer(t)
	body := `{
		"week": 12,
		"products": [
			{"product_id": "A", "product_name": "Lamp", "product_category": "home", "track_type": "主轨道", "total_score": 1,
			 "views_score": 80, "engagement_score": 80, "trend_score": 80, "demand_score": 80}
		],
		"emotions": [{"emotion": "兴奋", "percentage": 100}],
		"topics": [{"topic": "价格", "emotion": "担忧", "percentage": 62, "count": 40}]
	}`
	rr := do(h, http.MethodPost, "/analyze", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	r := env.Report
	if r.Week != 12 || len(r.Recommendations) != 1 || r.Recommendations[0].TotalScore != 80 {
		t.Fatalf("unexpected report: %+v", r.Recommendations)
	}
	if r.Recommendations[0].TrackType != "primary" {
		t.Errorf("track type not normalised: %q", r.Recommendations[0].TrackType)
	}
	if r.Health.TotalScore != 75 || !r.PriceSensitivity.IsSensitive {
		t.Errorf("labels not normalised: health=%v price=%+v", r.Health.TotalScore, r.PriceSensitivity)
	}
}

func TestAnalyzePostedErrors(t *testing.T) {
	h := setupServer(t)
	rr := do(h, http.MethodPost, "/analyze", `{"week": 1, "products": [{"product_id": "A", "product_name": "Lamp"}]}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing column: expected 422, got %d", rr.Code)
	}
	var e jsonError
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(e.Details, "product_category") {
		t.Errorf("details = %q", e.Details)
	}

	if rr := do(h, http.MethodPost, "/analyze", `{"week":`); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad json: expected 400, got %d", rr.Code)
	}
	if rr := do(h, http.MethodDelete, "/analyze", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}
