// Package server exposes the question pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/rmone/pursuitql/internal/engine"
)

const requestTimeout = 60 * time.Second

// Asker answers one natural-language question.
type Asker interface {
	Ask(ctx context.Context, question string) (*engine.Response, error)
}

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server handles the HTTP surface.
type Server struct {
	asker  Asker
	pinger Pinger
}

// New builds a Server. pinger may be nil when no database health check is
// wanted.
func New(asker Asker, pinger Pinger) *Server {
	return &Server{asker: asker, pinger: pinger}
}

// Router assembles the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Post("/query", s.handleQuery)
	r.Get("/healthz", s.handleHealth)
	return r
}

type queryRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Request body must be JSON with a question field.")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "missing_question", "Please provide a question.")
		return
	}

	resp, err := s.asker.Ask(r.Context(), req.Question)
	if err != nil {
		log.Error().Err(err).Str("question", req.Question).Msg("query failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "Something went wrong processing the question.")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "database": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, engine.Response{
		Success: false,
		Error:   kind,
		Message: message,
		Data:    []map[string]any{},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}
