package db

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optitask/optitask/internal/apperr"
	"github.com/optitask/optitask/internal/models"
	"github.com/optitask/optitask/internal/patch"
)

// ProjectService implements owner-scoped CRUD for projects.
type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// CreateProjectInput holds the data needed to create a new project
type CreateProjectInput struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

// UpdateProjectInput is the tri-state changeset source for an update.
// Name cannot be cleared (not null in the schema), color can.
type UpdateProjectInput struct {
	Name  *string             `json:"name"`
	Color patch.Field[string] `json:"color"`
}

func (s *ProjectService) Create(ctx context.Context, owner uuid.UUID, in CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("project name is required")
	}

	project := models.Project{
		UserID: owner,
		Name:   in.Name,
		Color:  in.Color,
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, apperr.FromDB(err, "project not found")
	}
	return &project, nil
}

func (s *ProjectService) List(ctx context.Context, owner uuid.UUID) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, apperr.FromDB(err, "projects not found")
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&project).Error
	if err != nil {
		return nil, apperr.FromDB(err, notOwnedMsg("project", id))
	}
	return &project, nil
}

// Update applies the changeset with the owner predicate inside the same
// statement as the write. Zero rows affected means not found (or not
// yours, indistinguishable on purpose).
func (s *ProjectService) Update(ctx context.Context, owner uuid.UUID, id uuid.UUID, in UpdateProjectInput) (*models.Project, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Validation("project name cannot be empty")
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	in.Color.Apply(updates, "color")

	res := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND user_id = ?", id, owner).
		Updates(updates)
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, notOwnedMsg("project", id))
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("%s", notOwnedMsg("project", id))
	}

	return s.Get(ctx, owner, id)
}

// Delete removes the project and detaches its tasks in one transaction.
// project_id is nullable, so the tasks survive unassigned rather than
// being destroyed with the project. The detach carries the ownership
// predicate as a subquery so a foreign caller cannot unassign tasks from
// a project it does not own.
func (s *ProjectService) Delete(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedProject := tx.Model(&models.Project{}).
			Select("id").
			Where("id = ? AND user_id = ?", id, owner)
		err := tx.Model(&models.Task{}).
			Where("project_id IN (?)", ownedProject).
			Updates(map[string]any{
				"project_id": nil,
				"updated_at": time.Now().UTC(),
			}).Error
		if err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", id, owner).Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("%s", notOwnedMsg("project", id))
		}
		return nil
	})
	if err != nil {
		return apperr.As(err)
	}
	return nil
}

// notOwnedMsg is the shared "not found or not owned" phrasing. Keeping the
// two cases identical prevents cross-tenant existence leaks.
func notOwnedMsg(kind string, id uuid.UUID) string {
	return kind + " with id " + id.String() + " not found or not owned by user"
}
