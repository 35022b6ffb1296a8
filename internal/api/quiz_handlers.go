package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type submitQuizRequest struct {
	Answers map[string]string `json:"answers" validate:"required"`
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := s.QuizService.GenerateQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req submitQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user := userFromContext(r.Context())
	result, err := s.QuizService.SubmitQuiz(r.Context(), user.ID, chi.URLParam(r, "id"), req.Answers)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
