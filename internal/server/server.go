// Package server provides the local preview server: it serves the
// generated static site alongside a small JSON API over the persisted
// dataset.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/scan"
)

// Server serves the site directory and the dataset API.
type Server struct {
	store   scan.Store
	siteDir string
	log     *log.Logger
}

// New builds a Server over the given store and site directory.
func New(store scan.Store, siteDir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: store, siteDir: siteDir, log: logger}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/repos", s.handleRepos)
	r.Get("/api/status", s.handleStatus)
	r.Handle("/*", http.FileServer(http.Dir(s.siteDir)))

	return r
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("serving", "addr", addr, "dir", s.siteDir)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// handleRepos returns all records, optionally filtered by ?category=.
func (s *Server) handleRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := s.store.LoadRepos(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	category := r.URL.Query().Get("category")
	out := make([]scan.RepoRecord, 0, len(repos))
	for _, rec := range repos {
		if category != "" && rec.Category != category {
			continue
		}
		out = append(out, rec)
	}
	s.writeJSON(w, out)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.store.LoadStatus(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.log.Error("request failed", "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
