package httpapi

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/optitask/optitask/internal/db"
)

func (s *Server) createLabel(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	var in db.CreateLabelInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	label, err := s.labels.Create(r.Context(), owner, in)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusCreated, label)
	return nil
}

func (s *Server) listLabels(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	labels, err := s.labels.List(r.Context(), owner)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, labels)
	return nil
}

func (s *Server) getLabel(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	label, err := s.labels.Get(r.Context(), owner, id)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, label)
	return nil
}

func (s *Server) updateLabel(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	var in db.UpdateLabelInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	label, err := s.labels.Update(r.Context(), owner, id, in)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, label)
	return nil
}

func (s *Server) deleteLabel(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	if err := s.labels.Delete(r.Context(), owner, id); err != nil {
		return err
	}
	s.writeStatus(w, http.StatusOK, fmt.Sprintf("label with id %s deleted successfully", id))
	return nil
}
