package httpapi

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/optitask/optitask/internal/db"
)

func (s *Server) createTask(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	var in db.CreateTaskInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	task, err := s.tasks.Create(r.Context(), owner, in)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusCreated, task)
	return nil
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	projectID, err := queryUUID(r, "project_id")
	if err != nil {
		return err
	}
	page, err := queryPagination(r)
	if err != nil {
		return err
	}
	filter := db.TaskFilter{
		ProjectID: projectID,
		Status:    queryString(r, "status"),
	}
	tasks, err := s.tasks.List(r.Context(), owner, filter, page)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, tasks)
	return nil
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	task, err := s.tasks.Get(r.Context(), owner, id)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, task)
	return nil
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	var in db.UpdateTaskInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	task, err := s.tasks.Update(r.Context(), owner, id, in)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, task)
	return nil
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(r.Context(), owner, id); err != nil {
		return err
	}
	s.writeStatus(w, http.StatusOK, fmt.Sprintf("task with id %s deleted successfully", id))
	return nil
}

func (s *Server) toggleTaskCompletion(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	task, err := s.tasks.ToggleCompletion(r.Context(), owner, id)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, task)
	return nil
}
