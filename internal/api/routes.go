package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.userMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("NOT_FOUND", "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("METHOD_NOT_ALLOWED", "method not allowed"))
	})

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Get("/users", s.handleListUsers)
	r.Post("/users", s.handleCreateUser)
	r.Post("/users/{id}/select", s.handleSelectUser)
	r.Delete("/users/{id}", s.handleDeleteUser)
	r.Put("/me", s.handleUpdateMe)

	r.Get("/lessons", s.handleLessons)
	r.Get("/lessons/{id}", s.handleLesson)
	r.Get("/lessons/{id}/flashcards", s.handleLessonFlashcards)
	r.Get("/lessons/{id}/quiz", s.handleQuiz)
	r.Post("/lessons/{id}/quiz", s.handleSubmitQuiz)
	r.Post("/lessons/{id}/complete", s.handleCompleteLesson)

	r.Get("/flashcards/due", s.handleDueFlashcards)
	r.Post("/flashcards/{id}/review", s.handleReviewFlashcard)

	r.Get("/progress", s.handleProgress)
	r.Post("/progress/sync", s.handleSync)

	return r
}
