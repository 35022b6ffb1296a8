package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/lingualearn/internal/logger"
)

type reviewRequest struct {
	Success *bool `json:"success" validate:"required"`
}

func (s *Server) handleLessonFlashcards(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	cards, err := s.FlashcardService.LessonFlashcards(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"flashcards": cards})
}

func (s *Server) handleDueFlashcards(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	user := userFromContext(r.Context())
	cards, err := s.FlashcardService.DueFlashcards(r.Context(), user.ID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"flashcards": cards})
}

func (s *Server) handleReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	log := logger.FromContext(r.Context()).WithFields(map[string]any{
		"flashcard_id": id,
		"success":      *req.Success,
	})
	log.Debug("reviewing flashcard")

	user := userFromContext(r.Context())
	card, err := s.FlashcardService.ReviewFlashcard(r.Context(), user.ID, id, *req.Success)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("flashcard reviewed successfully")
	writeJSON(w, http.StatusOK, card)
}
