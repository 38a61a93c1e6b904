// Package http exposes a stage over HTTP.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/stage"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxTicks bounds the n parameter of a tick request.
const MaxTicks = 1000

// maxBody bounds uploaded documents.
const maxBody = 4 << 20

// Server serves the stage API.
type Server struct {
	Stage   *stage.Stage
	Streams *StreamManager

	metrics http.Handler
	logger  *slog.Logger
	version string
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts h (usually promhttp.Handler()) at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewHandler creates a new HTTP handler for the stage.
func NewHandler(st *stage.Stage, opts ...Option) http.Handler {
	s := &Server{
		Stage:   st,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Post("/", s.LoadDocument)
		r.Delete("/{handle}", s.UnloadDocument)
	})
	r.Route("/actors", func(r chi.Router) {
		r.Get("/", s.ListActors)
		r.Get("/{name}", s.GetActor)
		r.Post("/{name}/tick", s.TickActor)
		r.Get("/{name}/graph", s.GetActorGraph)
		r.Get("/{name}/events", s.SubscribeEvents)
	})
	r.Get("/events", s.SubscribeEvents)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoadRequest is the JSON body of POST /documents. Exactly one of Text and
// Key must be set. A non-JSON body is taken as document text.
type LoadRequest struct {
	Text string `json:"text,omitempty"`
	Key  string `json:"key,omitempty"`
}

// TickResponse is returned by POST /actors/{name}/tick.
type TickResponse struct {
	Name     string          `json:"name"`
	Status   domain.Status   `json:"status"`
	Statuses []domain.Status `json:"statuses"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":      "arbor",
		"version":   s.version,
		"actors":    len(s.Stage.Actors()),
		"documents": len(s.Stage.Documents()),
	})
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Stage.Documents())
}

// LoadDocument handles POST /documents.
func (s *Server) LoadDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}

	var req LoadRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(body, &req); err != nil {
			s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	} else {
		req.Text = string(body)
	}

	var doc *stage.Document
	switch {
	case req.Key != "" && req.Text != "":
		s.fail(w, r, http.StatusBadRequest, errors.New("set either text or key, not both"))
		return
	case req.Key != "":
		doc, err = s.Stage.LoadKey(r.Context(), req.Key)
	default:
		doc, err = s.Stage.Load(r.Context(), req.Text)
	}
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// UnloadDocument handles DELETE /documents/{handle}.
func (s *Server) UnloadDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.Stage.Unload(chi.URLParam(r, "handle")); err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListActors handles GET /actors.
func (s *Server) ListActors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Stage.Actors())
}

// GetActor handles GET /actors/{name}.
func (s *Server) GetActor(w http.ResponseWriter, r *http.Request) {
	info, err := s.Stage.Info(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// TickActor handles POST /actors/{name}/tick?n=N.
// Ticking stops early once the actor reaches a terminal status.
func (s *Server) TickActor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > MaxTicks {
			s.fail(w, r, http.StatusBadRequest, fmt.Errorf("n must be an integer between 1 and %d", MaxTicks))
			return
		}
		n = v
	}

	resp := TickResponse{Name: name}
	for i := 0; i < n; i++ {
		status, err := s.Stage.Tick(r.Context(), name)
		if err != nil {
			s.fail(w, r, statusFor(err), err)
			return
		}
		resp.Status = status
		resp.Statuses = append(resp.Statuses, status)
		s.publish(name, status)
		if status.Terminal() {
			break
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetActorGraph handles GET /actors/{name}/graph and returns Mermaid text
// with the current tick progress overlaid.
func (s *Server) GetActorGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var out string
	err := s.Stage.WithActor(r.Context(), name, func(a *tree.Actor) error {
		var overlay *graph.Overlay
		if root := a.RootNode(); root != nil {
			overlay = graph.Progress(root)
		}
		out = graph.GenerateActorsMermaid([]*tree.Actor{a}, overlay)
		return nil
	})
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

func (s *Server) publish(name string, status domain.Status) {
	bytes, err := json.Marshal(map[string]any{"actor": name, "status": status})
	if err != nil {
		return
	}
	s.Streams.Broadcast(name, string(bytes))
	s.Streams.Broadcast("", string(bytes))
}

// SubscribeEvents handles GET /events and GET /actors/{name}/events as a
// server-sent event stream of tick results.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	topic := chi.URLParam(r, "name")
	if topic != "" {
		if _, err := s.Stage.Info(topic); err != nil {
			s.fail(w, r, statusFor(err), err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: tick\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	if code >= 500 {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", code, "error", err)
	}
	writeJSON(w, code, ErrorResponse{Error: err.Error(), Kind: errorKind(err)})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrActorNotFound), errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, stage.ErrActorExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrMalformedRecord):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrUnknownType),
		errors.Is(err, domain.ErrDuplicateIdentifier),
		errors.Is(err, domain.ErrDanglingReference),
		errors.Is(err, stage.ErrNoRoot):
		return http.StatusUnprocessableEntity
	case errors.Is(err, stage.ErrNoSource):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func errorKind(err error) string {
	kinds := []struct {
		target error
		kind   string
	}{
		{domain.ErrMissingField, "missing_field"},
		{domain.ErrUnknownType, "unknown_type"},
		{domain.ErrDuplicateIdentifier, "duplicate_identifier"},
		{domain.ErrDanglingReference, "dangling_reference"},
		{domain.ErrMalformedRecord, "malformed_record"},
		{domain.ErrActorNotFound, "actor_not_found"},
		{domain.ErrDocumentNotFound, "document_not_found"},
		{stage.ErrActorExists, "actor_exists"},
		{stage.ErrNoRoot, "no_root"},
	}
	for _, k := range kinds {
		if errors.Is(err, k.target) {
			return k.kind
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// StreamManager handles active SSE connections, keyed by topic.
type StreamManager struct {
	mu   sync.RWMutex
	subs map[string]map[chan string]struct{}
}

// NewStreamManager creates an empty manager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subs: make(map[string]map[chan string]struct{}),
	}
}

// Subscribe registers a listener for topic. The empty topic receives every
// event. The returned function unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(topic string) (chan string, func()) {
	ch := make(chan string, 16)

	sm.mu.Lock()
	if sm.subs[topic] == nil {
		sm.subs[topic] = make(map[chan string]struct{})
	}
	sm.subs[topic][ch] = struct{}{}
	sm.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subs[topic], ch)
			if len(sm.subs[topic]) == 0 {
				delete(sm.subs, topic)
			}
			close(ch)
		})
	}
}

// Broadcast sends msg to every subscriber of topic. Slow subscribers miss
// messages rather than block the sender.
func (sm *StreamManager) Broadcast(topic string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for ch := range sm.subs[topic] {
		select {
		case ch <- msg:
		default:
		}
	}
}
