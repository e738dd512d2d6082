package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"opportunity-insights-go/internal/actionable"
	"opportunity-insights-go/internal/dataset"
	"opportunity-insights-go/internal/logger"
	"opportunity-insights-go/internal/processor"
	"opportunity-insights-go/internal/types"
)

const maxBodyBytes = 8 << 20

type Server struct {
	loader       *dataset.Loader
	narrator     *actionable.Narrator
	topN         int
	fetchTimeout time.Duration
	log          *logger.Logger
	now          func() time.Time
}

type Options struct {
	Loader       *dataset.Loader
	Narrator     *actionable.Narrator
	DefaultTopN  int
	FetchTimeout time.Duration
	Log          *logger.Logger
}

func NewServer(opts Options) *Server {
	return &Server{
		loader:       opts.Loader,
		narrator:     opts.Narrator,
		topN:         opts.DefaultTopN,
		fetchTimeout: opts.FetchTimeout,
		log:          opts.Log.Component("api"),
		now:          time.Now,
	}
}

// Envelope carries the values that differ between runs over the same data.
type Envelope struct {
	RunID       string       `json:"run_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Report      types.Report `json:"report"`
}

// Routes registers HTTP routes and returns the handler with request logging.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.health)
	mux.HandleFunc("GET /weeks", s.listWeeks)
	mux.HandleFunc("GET /weeks/{week}/summary", s.weekSummary)
	mux.HandleFunc("GET /analyze", s.analyzeWeek)
	mux.HandleFunc("POST /analyze", s.analyzeBody)
	return s.withRequestLog(mux)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-ID") == "" {
			r.Header.Set("X-Request-ID", uuid.NewString())
		}
		w.Header().Set("X-Request-ID", r.Header.Get("X-Request-ID"))
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithRequest(r).WithField("duration_ms", time.Since(start).Milliseconds()).Info("request served")
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "ok")
}

func (s *Server) listWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	weeks, err := s.loader.Weeks(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"weeks": weeks})
}

func (s *Server) weekSummary(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(r.PathValue("week"))
	if err != nil || week <= 0 {
		WriteJSONError(w, http.StatusBadRequest, "invalid week", r.PathValue("week"))
		return
	}
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	summary, err := s.loader.SummarizeWeek(ctx, week)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) analyzeWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil || week <= 0 {
		WriteJSONError(w, http.StatusBadRequest, "invalid week", r.URL.Query().Get("week"))
		return
	}
	topN, ok := s.parseTopN(w, r)
	if !ok {
		return
	}
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	ds, err := s.loader.LoadWeek(ctx, week)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, ds, topN)
}

func (s *Server) analyzeBody(w http.ResponseWriter, r *http.Request) {
	topN, ok := s.parseTopN(w, r)
	if !ok {
		return
	}
	var ds types.WeeklyDataset
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&ds); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid json", err.Error())
		return
	}
	s.respond(w, r, ds.Normalized(), topN)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, ds types.WeeklyDataset, topN int) {
	report, err := processor.Analyze(ds, processor.Options{TopN: topN, Narrator: s.narrator})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for _, warn := range report.Warnings {
		s.log.WithRequest(r).
			WithField("week", ds.Week).
			WithField("kind", warn.Kind).
			WithField("subject", warn.Subject).
			Warn(warn.Message)
	}
	writeJSON(w, http.StatusOK, Envelope{
		RunID:       uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Report:      report,
	})
}

func (s *Server) parseTopN(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("top_n")
	if raw == "" {
		return s.topN, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		WriteJSONError(w, http.StatusBadRequest, "invalid top_n", raw)
		return 0, false
	}
	return n, true
}

func (s *Server) fetchContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.fetchTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.fetchTimeout)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	entry := s.log.WithRequest(r).WithField("status", status).WithField("error", err.Error())
	if status >= http.StatusInternalServerError {
		entry.Error(msg)
	} else {
		entry.Warn(msg)
	}
	WriteJSONError(w, status, msg, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
