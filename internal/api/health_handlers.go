package api

import (
	"net/http"

	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/logger"
)

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady returns 200 when the primary database answers a ping and 503
// otherwise. The app still serves cached data while not ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if err := s.DB.PingContext(ctx); err != nil {
		log.Warn("readiness check failed - database: %v", err)
		handleError(w, r, errors.NewUnavailableError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
