package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optitask/optitask/internal/apperr"
	"github.com/optitask/optitask/internal/models"
)

// TaskLabelService manages the task/label many-to-many relation. All three
// operations require the task to be owned by the caller; failures of the
// ownership probes surface as NotFound so a foreign caller cannot tell
// "exists but not yours" from "does not exist".
type TaskLabelService struct {
	db *gorm.DB
}

func NewTaskLabelService(gdb *gorm.DB) *TaskLabelService {
	return &TaskLabelService{db: gdb}
}

// AddLabel attaches a label to a task. Both must be owned by the caller.
// Re-adding an existing pair succeeds without writing; created reports
// whether a row was actually inserted.
//
// The ownership probes are separate statements from the insert, so a
// concurrent delete can slip between them; the join table's foreign keys
// are the schema-level backstop for that window.
func (s *TaskLabelService) AddLabel(ctx context.Context, owner uuid.UUID, taskID, labelID uuid.UUID) (created bool, err error) {
	if err := s.probeTask(ctx, owner, taskID); err != nil {
		return false, err
	}

	var labelExists int64
	err = s.db.WithContext(ctx).
		Model(&models.Label{}).
		Where("id = ? AND user_id = ?", labelID, owner).
		Count(&labelExists).Error
	if err != nil {
		return false, apperr.FromDB(err, notOwnedMsg("label", labelID))
	}
	if labelExists == 0 {
		return false, apperr.NotFound("%s", notOwnedMsg("label", labelID))
	}

	var pairExists int64
	err = s.db.WithContext(ctx).
		Model(&models.TaskLabel{}).
		Where("task_id = ? AND label_id = ?", taskID, labelID).
		Count(&pairExists).Error
	if err != nil {
		return false, apperr.FromDB(err, "association not found")
	}
	if pairExists > 0 {
		return false, nil
	}

	err = s.db.WithContext(ctx).Create(&models.TaskLabel{TaskID: taskID, LabelID: labelID}).Error
	if err != nil {
		// A concurrent add between probe and insert is still an
		// idempotent success.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, apperr.FromDB(err, "association not found")
	}
	return true, nil
}

// ListLabels returns the labels attached to the task, name ascending.
func (s *TaskLabelService) ListLabels(ctx context.Context, owner uuid.UUID, taskID uuid.UUID) ([]models.Label, error) {
	if err := s.probeTask(ctx, owner, taskID); err != nil {
		return nil, err
	}

	labels := []models.Label{}
	err := s.db.WithContext(ctx).
		Model(&models.Label{}).
		Joins("JOIN task_labels ON task_labels.label_id = labels.id").
		Where("task_labels.task_id = ?", taskID).
		Order("labels.name ASC").
		Find(&labels).Error
	if err != nil {
		return nil, apperr.FromDB(err, notOwnedMsg("task", taskID))
	}
	return labels, nil
}

// RemoveLabel deletes the association. Zero rows affected is NotFound:
// callers cannot distinguish a missing association from a missing task.
func (s *TaskLabelService) RemoveLabel(ctx context.Context, owner uuid.UUID, taskID, labelID uuid.UUID) error {
	if err := s.probeTask(ctx, owner, taskID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("task_id = ? AND label_id = ?", taskID, labelID).
		Delete(&models.TaskLabel{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "association not found")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("association between task %s and label %s not found, or task not owned by user", taskID, labelID)
	}
	return nil
}

// probeTask is the explicit task-ownership existence check shared by the
// association operations.
func (s *TaskLabelService) probeTask(ctx context.Context, owner uuid.UUID, taskID uuid.UUID) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, owner).
		Count(&count).Error
	if err != nil {
		return apperr.FromDB(err, notOwnedMsg("task", taskID))
	}
	if count == 0 {
		return apperr.NotFound("%s", notOwnedMsg("task", taskID))
	}
	return nil
}
