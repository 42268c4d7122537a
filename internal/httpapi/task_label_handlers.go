package httpapi

import (
	"net/http"

	"github.com/google/uuid"
)

type addLabelPayload struct {
	LabelID uuid.UUID `json:"label_id"`
}

type associationBody struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	TaskID  uuid.UUID `json:"task_id"`
	LabelID uuid.UUID `json:"label_id"`
}

func (s *Server) addLabelToTask(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	taskID, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	var payload addLabelPayload
	if err := decodeJSON(r, &payload); err != nil {
		return err
	}

	created, err := s.taskLabels.AddLabel(r.Context(), owner, taskID, payload.LabelID)
	if err != nil {
		return err
	}

	body := associationBody{
		Status:  "success",
		TaskID:  taskID,
		LabelID: payload.LabelID,
	}
	if created {
		body.Message = "label added to task successfully"
		s.writeJSON(w, http.StatusCreated, body)
	} else {
		body.Message = "label already associated with task"
		s.writeJSON(w, http.StatusOK, body)
	}
	return nil
}

func (s *Server) listLabelsForTask(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	taskID, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	labels, err := s.taskLabels.ListLabels(r.Context(), owner, taskID)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, labels)
	return nil
}

func (s *Server) removeLabelFromTask(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error {
	taskID, err := pathUUID(r, "id")
	if err != nil {
		return err
	}
	labelID, err := pathUUID(r, "labelID")
	if err != nil {
		return err
	}
	if err := s.taskLabels.RemoveLabel(r.Context(), owner, taskID, labelID); err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, associationBody{
		Status:  "success",
		Message: "label removed from task successfully",
		TaskID:  taskID,
		LabelID: labelID,
	})
	return nil
}
