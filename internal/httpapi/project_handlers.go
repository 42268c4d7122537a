package httpapi

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/optitask/optitask/internal/db"
)

func (s *Server) createProject(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	var in db.CreateProjectInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	project, err := s.projects.Create(r.Context(), owner, in)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusCreated, project)
	return nil
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	projects, err := s.projects.List(r.Context(), owner)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, projects)
	return nil
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	project, err := s.projects.Get(r.Context(), owner, id)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, project)
	return nil
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	var in db.UpdateProjectInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	project, err := s.projects.Update(r.Context(), owner, id, in)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, project)
	return nil
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	id, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	if err := s.projects.Delete(r.Context(), owner, id); err != nil {
		return err
	}
	s.writeStatus(w, http.StatusOK, fmt.Sprintf("project with id %s deleted successfully", id))
	return nil
}
