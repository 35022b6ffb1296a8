package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/lingualearn/internal/models"
)

func (s *Server) handleLessons(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	list, err := s.LessonService.ListLessons(r.Context(), models.LessonFilter{
		Level:  r.URL.Query().Get("level"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	l, err := s.LessonService.GetLesson(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}
