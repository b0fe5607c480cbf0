package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/klauern/skillshelf/internal/bundle"
	"github.com/klauern/skillshelf/internal/index"
	"github.com/klauern/skillshelf/internal/logging"
)

// Routes builds the HTTP API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/index", s.handleIndex)
		r.Get("/skills", s.handleSkills)
		r.Get("/skills/search", s.handleSearch)
		r.Get("/skills/{name}", s.handleSkill)
		r.Get("/skills/{name}/references/*", s.handleReference)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, idx := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"build_id": idx.BuildID,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	_, idx := s.snapshot()
	writeJSON(w, http.StatusOK, idx)
}

func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request) {
	_, idx := s.snapshot()
	writeJSON(w, http.StatusOK, idx.Skills)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	_, idx := s.snapshot()
	matches := idx.Search(query)
	if matches == nil {
		matches = []index.Match{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// handleSkill serves the SKILL.md body as Markdown.
func (s *Server) handleSkill(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	bun, _ := s.snapshot()

	skill, ok := bun.Skill(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown skill "+name)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(skill.Body))
}

// handleReference lazily loads a reference body from disk.
func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rel := "references/" + chi.URLParam(r, "*")
	bun, _ := s.snapshot()

	skill, ok := bun.Skill(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown skill "+name)
		return
	}

	data, err := bundle.ReadReference(skill, rel)
	if err != nil {
		logging.Debug("reference not served", logging.Skill(name), logging.Path(rel), logging.Err(err))
		writeError(w, http.StatusNotFound, "unknown reference "+rel)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
