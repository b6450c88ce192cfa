// Package server exposes the scheduler over HTTP.
//
//	POST /v1/plans       solve a JSON job, archive it, 201 {"id", "plan", "cached"}
//	GET  /v1/plans/{id}  fetch an archived record
//	GET  /healthz        liveness
//	GET  /metrics        Prometheus metrics
//
// Solve options come from the query string: method, timeout, seed,
// master_group.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/grouping"
	"github.com/katalvlaran/purgeplan/metrics"
	"github.com/katalvlaran/purgeplan/schedule"
	"github.com/katalvlaran/purgeplan/store"
)

// MaxBodyBytes caps the size of a posted job.
const MaxBodyBytes = 8 << 20

// Server holds the HTTP collaborators.
type Server struct {
	Runner   *schedule.Runner
	Store    store.Store
	Metrics  *metrics.Collector // optional; /metrics is 404 without it
	Logger   *log.Logger
	Defaults schedule.Options
	// SolveTimeout bounds one request (0 → no extra bound).
	SolveTimeout time.Duration
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}
	r.Route("/v1/plans", func(r chi.Router) {
		r.Post("/", s.createPlan)
		r.Get("/{id}", s.getPlan)
	})
	return r
}

type createResponse struct {
	ID     string         `json:"id"`
	Cached bool           `json:"cached"`
	Plan   *schedule.Plan `json:"plan"`
}

type errorResponse struct {
	Error string     `json:"error"`
	Kind  flush.Kind `json:"kind,omitempty"`
}

func (s *Server) createPlan(w http.ResponseWriter, r *http.Request) {
	var job schedule.Job
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&job); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "decode job: " + err.Error()})
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := r.Context()
	if s.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.SolveTimeout)
		defer cancel()
	}
	plan, hit, err := s.Runner.Plan(ctx, job, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec := &store.Record{Job: job, Plan: plan}
	if err := s.Store.Put(ctx, rec); err != nil {
		s.Logger.Error("archive plan", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "archive failed"})
		return
	}
	writeJSON(w, http.StatusCreated, createResponse{ID: rec.ID, Cached: hit, Plan: plan})
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		s.Logger.Error("load plan", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "load failed"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// options overlays query parameters on the server defaults.
func (s *Server) options(r *http.Request) (schedule.Options, error) {
	opts := s.Defaults
	q := r.URL.Query()
	if v := q.Get("method"); v != "" {
		switch m := grouping.Method(v); m {
		case grouping.MethodExhaustive, grouping.MethodKMedoids:
			opts.Method = m
		default:
			return opts, fmt.Errorf("unknown method %q", v)
		}
	}
	if v := q.Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return opts, fmt.Errorf("timeout: %w", err)
		}
		opts.Timeout = d
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, fmt.Errorf("seed: %w", err)
		}
		opts.Seed = n
	}
	if v := q.Get("master_group"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("master_group: %w", err)
		}
		opts.MasterGroup = n
	}
	return opts, nil
}

// writeError maps scheduler error kinds to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := flush.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case flush.KindInfeasible, flush.KindMatrixOutOfBounds:
		status = http.StatusUnprocessableEntity
	case flush.KindInvalidInput:
		status = http.StatusBadRequest
	default:
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			status = http.StatusServiceUnavailable
		}
		s.Logger.Error("solve failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
