package api

import (
	"net/http"

	"github.com/vytor/lingualearn/internal/logger"
)

type createUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
}

type updateMeRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=64"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.UserService.ListUsers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users":   users,
		"current": userFromContext(r.Context()),
	})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.CreateUser(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setUserCookie(w, user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleSelectUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.SelectUser(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setUserCookie(w, user.ID)
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.UserService.DeleteUser(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	if current := userFromContext(r.Context()); current != nil && current.ID == id {
		log.Debug("deleted the active user, clearing cookie")
		clearUserCookie(w)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.UpdateDisplayName(r.Context(), userFromContext(r.Context()).ID, req.DisplayName)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
