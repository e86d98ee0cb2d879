package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/templates/internal/logging"
	"github.com/aretw0/templates/pkg/describe"
	"github.com/aretw0/templates/pkg/domain"
	"github.com/aretw0/templates/pkg/ports"
	"github.com/aretw0/templates/pkg/qa"
	"github.com/aretw0/templates/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves one component over HTTP.
type Server struct {
	Invoker  ports.Invoker
	Store    ports.StateStore
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	// StateToken, when set, is the bearer token required by the /state routes.
	StateToken string
}

// Option configures a Server.
type Option func(*Server)

// WithStateStore enables the /state routes.
func WithStateStore(store ports.StateStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithStateToken requires "Authorization: Bearer <token>" on the /state routes.
func WithStateToken(token string) Option {
	return func(s *Server) {
		s.StateToken = token
	}
}

// WithGatherer sets the registry served on /metrics (default: prometheus.DefaultGatherer).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the component.
func NewHandler(invoker ports.Invoker, opts ...Option) http.Handler {
	s := &Server{
		Invoker:  invoker,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/invoke/{operation}", s.Invoke)
	r.Post("/stream/{operation}", s.Stream)
	r.Get("/describe", s.GetDescribe)
	r.Get("/schemas/{kind}", s.GetSchema)
	r.Get("/qa/{mode}", s.GetQA)
	r.Post("/qa/{mode}/answers", s.ApplyAnswers)
	r.Route("/state/{tenant}/{env}/{session}", func(r chi.Router) {
		r.Use(s.requireStateToken)
		r.Put("/", s.PutState)
		r.Get("/", s.GetState)
		r.Delete("/", s.DeleteState)
	})
	r.Get("/health", s.GetHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

// enableCORS opens every route except /state to browser origins.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, statePrefix) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const statePrefix = "/state/"

func (s *Server) requireStateToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.StateToken != "" {
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(got), []byte(s.StateToken)) != 1 {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// readBody reads at most one byte past the input limit so the invoker can
// report oversized input itself.
func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, int64(runner.MaxInputSize())+1))
}

// Invoke handles POST /invoke/{operation}.
func (s *Server) Invoke(w http.ResponseWriter, r *http.Request) {
	operation := chi.URLParam(r, "operation")
	body, err := readBody(r)
	if err != nil {
		s.writeInvokeError(w, domain.NewInvalidInput(err))
		return
	}

	out, err := s.Invoker.Invoke(r.Context(), operation, body)
	if err != nil {
		s.writeInvokeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		s.Logger.Error("Invoke response write failed", "error", err)
	}
}

// Stream handles POST /stream/{operation} as server-sent events.
func (s *Server) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("Stream: Streaming not supported")
		return
	}

	body, err := readBody(r)
	if err != nil {
		s.writeInvokeError(w, domain.NewInvalidInput(err))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for event := range runner.Stream(r.Context(), s.Invoker, chi.URLParam(r, "operation"), body) {
		data, err := json.Marshal(event)
		if err != nil {
			s.Logger.Error("Stream: event encode failed", "error", err)
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
		flusher.Flush()
	}
}

// GetDescribe handles GET /describe.
func (s *Server) GetDescribe(w http.ResponseWriter, r *http.Request) {
	d, err := describe.Describe()
	if err != nil {
		http.Error(w, fmt.Sprintf("Describe error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Describe failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

// GetSchema handles GET /schemas/{kind}.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := describe.SchemaFor(describe.SchemaKind(chi.URLParam(r, "kind")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, schema)
}

// GetQA handles GET /qa/{mode}.
func (s *Server) GetQA(w http.ResponseWriter, r *http.Request) {
	mode, err := qa.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, qa.SpecFor(mode))
}

// AnswersRequest is the body of POST /qa/{mode}/answers.
type AnswersRequest struct {
	Current any `json:"current"`
	Answers any `json:"answers"`
}

// ApplyAnswers handles POST /qa/{mode}/answers.
func (s *Server) ApplyAnswers(w http.ResponseWriter, r *http.Request) {
	mode, err := qa.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	var body AnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("ApplyAnswers: Invalid request body", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, qa.ApplyAnswers(mode, body.Current, body.Answers))
}

func scopeParam(r *http.Request) domain.Scope {
	return domain.Scope{
		TenantID:      chi.URLParam(r, "tenant"),
		EnvironmentID: chi.URLParam(r, "env"),
		SessionID:     chi.URLParam(r, "session"),
	}
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Store == nil {
		http.Error(w, "State store not configured", http.StatusNotImplemented)
		return false
	}
	return true
}

// PutState handles PUT /state/{tenant}/{env}/{session}.
func (s *Server) PutState(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(runner.MaxInputSize())))
	if err != nil {
		http.Error(w, "State body too large", http.StatusRequestEntityTooLarge)
		return
	}
	state, err := domain.DecodeObject(raw)
	if err != nil || state == nil {
		http.Error(w, "State must be a JSON object", http.StatusBadRequest)
		return
	}
	scope := scopeParam(r)
	if err := s.Store.Save(r.Context(), scope, state); err != nil {
		http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("PutState failed", "scope", scope.String(), "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetState handles GET /state/{tenant}/{env}/{session}.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	state, err := s.Store.Load(r.Context(), scopeParam(r))
	if errors.Is(err, domain.ErrStateNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("GetState failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// DeleteState handles DELETE /state/{tenant}/{env}/{session}.
func (s *Server) DeleteState(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Store.Delete(r.Context(), scopeParam(r)); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("DeleteState failed", "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": describe.ComponentVersion,
	})
}

// StatusFor maps a top-level invocation failure to an HTTP status.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindInvalidScope:
		return http.StatusForbidden
	case domain.KindUnsupportedOperation:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeInvokeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("Invoke failed", "error", err)
	} else {
		s.Logger.Warn("Invoke rejected", "status", status, "error", err)
	}
	s.writeJSON(w, status, map[string]any{"error": runner.NewErrorEnvelope(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "error", err)
	}
}
