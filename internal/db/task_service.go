package db

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optitask/optitask/internal/apperr"
	"github.com/optitask/optitask/internal/models"
	"github.com/optitask/optitask/internal/pagination"
	"github.com/optitask/optitask/internal/patch"
)

// TaskService implements owner-scoped CRUD, filtering and the completion
// toggle for tasks.
type TaskService struct {
	db *gorm.DB
}

func NewTaskService(gdb *gorm.DB) *TaskService {
	return &TaskService{db: gdb}
}

// CreateTaskInput holds the data needed to create a new task
type CreateTaskInput struct {
	ProjectID   *uuid.UUID   `json:"project_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      *string      `json:"status"`
	DueDate     *models.Date `json:"due_date"`
	Order       *int         `json:"order"`
}

// UpdateTaskInput is the tri-state changeset source for a task update.
// Nullable columns use patch.Field; title and status cannot be cleared.
type UpdateTaskInput struct {
	ProjectID   patch.Field[uuid.UUID]   `json:"project_id"`
	Title       *string                  `json:"title"`
	Description patch.Field[string]      `json:"description"`
	Status      *string                  `json:"status"`
	DueDate     patch.Field[models.Date] `json:"due_date"`
	Order       patch.Field[int]         `json:"order"`
}

// TaskFilter narrows a listing. Nil fields match everything.
type TaskFilter struct {
	ProjectID *uuid.UUID
	Status    *string
}

func (s *TaskService) Create(ctx context.Context, owner uuid.UUID, in CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("task title is required")
	}

	task := models.Task{
		UserID:      owner,
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusPending,
		DueDate:     in.DueDate,
		TaskOrder:   in.Order,
		Labels:      []models.Label{},
	}
	if in.Status != nil {
		task.Status = *in.Status
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, apperr.FromDB(err, "task not found")
	}
	return &task, nil
}

// List returns one page of the owner's tasks, newest first, each with its
// labels attached.
func (s *TaskService) List(ctx context.Context, owner uuid.UUID, filter TaskFilter, page pagination.Params) (pagination.Page[models.Task], error) {
	page = page.Normalize()

	filtered := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Task{}).Where("user_id = ?", owner)
		if filter.ProjectID != nil {
			q = q.Where("project_id = ?", *filter.ProjectID)
		}
		if filter.Status != nil {
			q = q.Where("status = ?", *filter.Status)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return pagination.Page[models.Task]{}, apperr.FromDB(err, "tasks not found")
	}

	tasks := []models.Task{}
	err := filtered().
		Preload("Labels", labelNameOrder).
		Order("created_at DESC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&tasks).Error
	if err != nil {
		return pagination.Page[models.Task]{}, apperr.FromDB(err, "tasks not found")
	}
	for i := range tasks {
		if tasks[i].Labels == nil {
			tasks[i].Labels = []models.Label{}
		}
	}

	return pagination.NewPage(tasks, total, page), nil
}

func (s *TaskService) Get(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).
		Preload("Labels", labelNameOrder).
		Where("id = ? AND user_id = ?", id, owner).
		First(&task).Error
	if err != nil {
		return nil, apperr.FromDB(err, notOwnedMsg("task", id))
	}
	if task.Labels == nil {
		task.Labels = []models.Label{}
	}
	return &task, nil
}

func (s *TaskService) Update(ctx context.Context, owner uuid.UUID, id uuid.UUID, in UpdateTaskInput) (*models.Task, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, apperr.Validation("task title cannot be empty")
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	in.ProjectID.Apply(updates, "project_id")
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	in.Description.Apply(updates, "description")
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	in.DueDate.Apply(updates, "due_date")
	in.Order.Apply(updates, "task_order")

	res := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, owner).
		Updates(updates)
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, notOwnedMsg("task", id))
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("%s", notOwnedMsg("task", id))
	}

	return s.Get(ctx, owner, id)
}

// Delete removes the task, its label associations and its time entries in
// one transaction. The dependent deletes carry the ownership predicate as
// a subquery so a foreign caller cannot strip rows off a task it does not
// own.
func (s *TaskService) Delete(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedTask := func() *gorm.DB {
			return tx.Model(&models.Task{}).
				Select("id").
				Where("id = ? AND user_id = ?", id, owner)
		}
		if err := tx.
			Where("task_id IN (?)", ownedTask()).
			Delete(&models.TaskLabel{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("task_id IN (?)", ownedTask()).
			Delete(&models.TimeEntry{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", id, owner).Delete(&models.Task{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("%s", notOwnedMsg("task", id))
		}
		return nil
	})
	if err != nil {
		return apperr.As(err)
	}
	return nil
}

// ToggleCompletion flips the task between completed and pending. Any
// status other than exactly "completed" toggles to "completed".
func (s *TaskService) ToggleCompletion(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*models.Task, error) {
	task, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	newStatus := models.StatusCompleted
	if task.Status == models.StatusCompleted {
		newStatus = models.StatusPending
	}

	res := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, owner).
		Updates(map[string]any{
			"status":     newStatus,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, notOwnedMsg("task", id))
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("%s", notOwnedMsg("task", id))
	}

	return s.Get(ctx, owner, id)
}

// labelNameOrder keeps preloaded label lists deterministic.
func labelNameOrder(tx *gorm.DB) *gorm.DB {
	return tx.Order("labels.name ASC")
}
