package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/logger"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	progress, err := s.ProgressService.GetProgress(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	result, err := s.ProgressService.MarkLessonComplete(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Offline {
		status = http.StatusAccepted
	}
	writeJSON(w, status, result)
}

// handleSync syncs offline completions now, or queues the sync when
// async=true.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	if r.URL.Query().Get("async") == "true" && s.JobQueue != nil {
		if err := s.JobQueue.EnqueueSync(user.ID); err != nil {
			log.Warn("failed to queue sync: %v", err)
			handleError(w, r, errors.NewUnavailableError(err))
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"queued": true})
		return
	}

	n, err := s.ProgressService.SyncOfflineData(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"synced": n})
}
