package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/optitask/optitask/internal/models"
)

func (s *Server) timeByProject(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	q, err := analyticsQuery(r)
	if err != nil {
		return err
	}
	window, err := q.ResolveWindow(models.DateOf(s.now()))
	if err != nil {
		return err
	}
	stats, err := s.analytics.TimeByProject(r.Context(), owner, window)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, stats)
	return nil
}

func (s *Server) productivityTrend(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	q, err := analyticsQuery(r)
	if err != nil {
		return err
	}
	window, err := q.ResolveWindow(models.DateOf(s.now()))
	if err != nil {
		return err
	}
	points, err := s.analytics.ProductivityTrend(r.Context(), owner, window)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, points)
	return nil
}
