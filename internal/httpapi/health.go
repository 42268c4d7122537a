package httpapi

import (
	"context"
	"net/http"

	"github.com/optitask/optitask/internal/apperr"
)

type healthBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleHealth pings the pool. No identity required.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil {
		s.renderError(w, r, apperr.Storage(err))
		return
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		s.renderError(w, r, apperr.Pool(err))
		return
	}

	s.writeJSON(w, http.StatusOK, healthBody{
		Status:  "healthy",
		Message: "backend is running and db pool accessible",
	})
}
