package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/repositories"
	"github.com/desertthunder/roster/internal/store"
)

var _ Handler = (*RosterHandler)(nil)

// RosterHandler serves read-only JSON views of a [store.Store].
type RosterHandler struct {
	store *store.Store
}

// NewRosterHandler creates a handler over s.
func NewRosterHandler(s *store.Store) *RosterHandler {
	return &RosterHandler{store: s}
}

// Routes returns the HTTP routes this handler serves.
func (h *RosterHandler) Routes() []string {
	return []string{
		"/students", "/students/",
		"/courses", "/courses/",
		"/instructors", "/instructors/",
		"/stats",
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

func (h *RosterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{"method not allowed"})
		return
	}

	collection, rawID, hasID := strings.Cut(strings.Trim(r.URL.Path, "/"), "/")

	if collection == "stats" && !hasID {
		writeJSON(w, http.StatusOK, repositories.Summarize(h.store))
		return
	}

	if !hasID {
		switch collection {
		case models.StudentsCollection:
			writeJSON(w, http.StatusOK, h.store.Students())
		case models.CoursesCollection:
			writeJSON(w, http.StatusOK, h.store.Courses())
		case models.InstructorsCollection:
			writeJSON(w, http.StatusOK, h.store.Instructors())
		default:
			writeJSON(w, http.StatusNotFound, errorBody{"not found"})
		}
		return
	}

	id, err := models.ParseID(rawID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}

	var (
		record any
		found  bool
	)
	switch collection {
	case models.StudentsCollection:
		record, _, found = repositories.FindByID(h.store.Students(), id)
	case models.CoursesCollection:
		record, _, found = repositories.FindByID(h.store.Courses(), id)
	case models.InstructorsCollection:
		record, _, found = repositories.FindByID(h.store.Instructors(), id)
	}

	if !found {
		writeJSON(w, http.StatusNotFound, errorBody{"not found"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
