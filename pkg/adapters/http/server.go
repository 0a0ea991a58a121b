package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/reorder"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
	"github.com/aretw0/reorder/pkg/runner"
	"github.com/aretw0/reorder/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InlineTraceID names traces posted to /simulate without an id.
const InlineTraceID = "inline"

// LockTTL bounds how long a listener patch may hold a trace.
const LockTTL = 5 * time.Second

// Server exposes trace replay and storage over HTTP.
type Server struct {
	Runner   *runner.Runner
	Store    ports.TraceStore
	Locker   ports.DistributedLocker
	Gatherer prometheus.Gatherer
	Streams  *StreamManager
	Logger   *slog.Logger

	traces *session.Manager
}

// NewHandler creates the HTTP handler. Store, Locker and Gatherer are
// optional; routes needing a missing one answer 501.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if s.Runner == nil {
		s.Runner = runner.New(runner.WithLogger(s.Logger))
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.Logger)
	}
	if s.Store != nil {
		s.traces = session.NewManager(s.Store,
			session.WithLocker(s.Locker),
			session.WithLockTTL(LockTTL),
			session.WithLogger(s.Logger),
		)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/metrics", s.GetMetrics)
	r.Get("/events", s.SubscribeEvents)
	r.Post("/splice", s.Splice)
	r.Post("/simulate", s.Simulate)
	r.Route("/traces", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/", s.ListTraces)
		r.Get("/{id}", s.GetTrace)
		r.Put("/{id}", s.PutTrace)
		r.Delete("/{id}", s.DeleteTrace)
		r.Patch("/{id}/listeners", s.PatchListeners)
		r.Post("/{id}/replay", s.ReplayTrace)
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Store == nil {
			http.Error(w, "No trace store configured", http.StatusNotImplemented)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Reorder API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{
		"app":         "reorder-http",
		"version":     strings.TrimSpace(reorder.Version),
		"api_version": apiVersion,
	})
}

// GetMetrics serves Prometheus metrics when a gatherer is configured.
func (s *Server) GetMetrics(w http.ResponseWriter, r *http.Request) {
	if s.Gatherer == nil {
		http.Error(w, "Metrics disabled", http.StatusNotImplemented)
		return
	}
	promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

type spliceRequest struct {
	Positions    []float64 `json:"positions"`
	Displacement float64   `json:"displacement"`
}

type spliceResponse struct {
	SpliceIndex   int `json:"splice_index"`
	OriginalIndex int `json:"original_index"`
}

// Splice handles the POST /splice request.
func (s *Server) Splice(w http.ResponseWriter, r *http.Request) {
	var body spliceRequest
	if !s.decode(w, r, "SpliceRequest", &body) {
		return
	}
	snap, err := domain.SnapshotFromPositions(body.Positions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, spliceResponse{
		SpliceIndex:   snap.SpliceIndex(body.Displacement),
		OriginalIndex: snap.OriginalIndex(),
	})
}

// Simulate handles the POST /simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var tr domain.Trace
	if !s.decode(w, r, "Trace", &tr) {
		return
	}
	if tr.ID == "" {
		tr.ID = InlineTraceID
	}
	s.replay(r.Context(), w, &tr)
}

// ReplayTrace handles the POST /traces/{id}/replay request.
func (s *Server) ReplayTrace(w http.ResponseWriter, r *http.Request) {
	tr, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "Load", err)
		return
	}
	s.replay(r.Context(), w, tr)
}

func (s *Server) replay(ctx context.Context, w http.ResponseWriter, tr *domain.Trace) {
	res, err := s.Runner.Run(ctx, tr)
	if err != nil {
		s.fail(w, "Replay", err)
		return
	}
	if payload, err := json.Marshal(res); err == nil {
		s.Streams.Broadcast(res.TraceID, string(payload))
	}
	writeJSON(w, s.Logger, http.StatusOK, res)
}

// ListTraces handles the GET /traces request.
func (s *Server) ListTraces(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, "List", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, ids)
}

// GetTrace handles the GET /traces/{id} request.
func (s *Server) GetTrace(w http.ResponseWriter, r *http.Request) {
	tr, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "Load", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, tr)
}

// PutTrace handles the PUT /traces/{id} request.
func (s *Server) PutTrace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var tr domain.Trace
	if !s.decode(w, r, "Trace", &tr) {
		return
	}
	if tr.ID != "" && tr.ID != id {
		http.Error(w, fmt.Sprintf("Body id %q does not match path", tr.ID), http.StatusBadRequest)
		return
	}
	tr.ID = id
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = time.Now().UTC()
	}
	if err := tr.Validate(); err != nil {
		s.fail(w, "Validate", err)
		return
	}
	if err := s.traces.Save(r.Context(), &tr); err != nil {
		s.fail(w, "Save", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTrace handles the DELETE /traces/{id} request.
func (s *Server) DeleteTrace(w http.ResponseWriter, r *http.Request) {
	if err := s.traces.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type listenerPatch struct {
	PreventBeforeWait    *bool `json:"prevent_before_wait"`
	PreventBeforeReorder *bool `json:"prevent_before_reorder"`
	PreventTap           *bool `json:"prevent_tap"`
	KeepOrder            *bool `json:"keep_order"`
}

func (p listenerPatch) apply(l *domain.ListenerPolicy) {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&l.PreventBeforeWait, p.PreventBeforeWait)
	set(&l.PreventBeforeReorder, p.PreventBeforeReorder)
	set(&l.PreventTap, p.PreventTap)
	set(&l.KeepOrder, p.KeepOrder)
}

// PatchListeners handles the PATCH /traces/{id}/listeners request. The
// load-modify-save cycle runs under the trace lock.
func (s *Server) PatchListeners(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch listenerPatch
	if !s.decode(w, r, "ListenerPolicy", &patch) {
		return
	}

	tr, err := s.traces.Update(r.Context(), id, func(tr *domain.Trace) error {
		patch.apply(&tr.Listeners)
		return nil
	})
	if err != nil {
		s.fail(w, "PatchListeners", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, tr)
}

// SubscribeEvents handles the GET /events request (SSE). Each replay result
// is sent as one data line.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	topic := r.URL.Query().Get("trace_id")
	if topic == "" {
		topic = AllTopics
	}
	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// decode reads a JSON body, validates it against the named schema and
// unmarshals it into out. On failure it writes the response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, schema string, out any) bool {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(runner.MaxTraceSize())))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, runner.ErrTraceTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := runner.CheckTraceSize(raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	if err := validateBody(schema, doc); err != nil {
		http.Error(w, fmt.Sprintf("Request does not match %s: %v", schema, err), http.StatusBadRequest)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrTraceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidTrace):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrLockFailed), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.Logger.Error(op+" failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
