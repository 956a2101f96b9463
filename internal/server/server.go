// Package server exposes the SQLite-backed lead, note, follow-up and user
// collections over a small JSON REST API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vinayk98/mini-crm/internal/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server holds the dependencies shared by every handler.
type Server struct {
	store   store.Store
	logger  *slog.Logger
	metrics *Metrics
}

// New creates a Server backed by st.
func New(st store.Store, logger *slog.Logger) *Server {
	return &Server{
		store:   st,
		logger:  logger,
		metrics: NewMetrics(),
	}
}

// Router wires every endpoint with the middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery(s.logger))
	r.Use(RequestID)
	r.Use(Logger(s.logger, s.metrics))
	r.Use(BodyLimit(maxBodyBytes))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", s.handleListLeads)
		r.Post("/", s.handleCreateLead)
		r.Get("/{id}", s.handleGetLead)
		r.Patch("/{id}", s.handlePatchLead)
		r.Put("/{id}", s.handleReplaceLead)
		r.Delete("/{id}", s.handleDeleteLead)
	})

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", s.handleListNotes)
		r.Post("/", s.handleCreateNote)
	})

	r.Route("/followups", func(r chi.Router) {
		r.Get("/", s.handleListFollowUps)
		r.Post("/", s.handleCreateFollowUp)
		r.Patch("/{id}", s.handlePatchFollowUp)
	})

	r.Get("/users", s.handleFindUsers)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no such route", Code: codeNotFound})
	})

	return r
}

// ListenAndServe serves the API on addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.CountLeads(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
