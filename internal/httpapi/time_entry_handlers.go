package httpapi

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/optitask/optitask/internal/db"
)

func (s *Server) createTimeEntry(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	var in db.CreateTimeEntryInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	entry, err := s.entries.Create(r.Context(), owner, in)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusCreated, entry)
	return nil
}

func (s *Server) listTimeEntries(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	taskID, err := queryUUID(r, "task_id")
	if err != nil {
		return err
	}
	dateFrom, err := queryTime(r, "date_from")
	if err != nil {
		return err
	}
	dateTo, err := queryTime(r, "date_to")
	if err != nil {
		return err
	}
	page, err := queryPagination(r)
	if err != nil {
		return err
	}

	filter := db.TimeEntryFilter{
		TaskID:   taskID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}
	entries, err := s.entries.List(r.Context(), owner, filter, page)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, entries)
	return nil
}

func (s *Server) getTimeEntry(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	entry, err := s.entries.Get(r.Context(), owner, id)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, entry)
	return nil
}

func (s *Server) updateTimeEntry(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	var in db.UpdateTimeEntryInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	entry, err := s.entries.Update(r.Context(), owner, id, in)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, entry)
	return nil
}

func (s *Server) deleteTimeEntry(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	if err := s.entries.Delete(r.Context(), owner, id); err != nil {
		return err
	}
	s.writeStatus(w, http.StatusOK, fmt.Sprintf("time entry with id %s deleted successfully", id))
	return nil
}
