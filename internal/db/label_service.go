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

// LabelService implements owner-scoped CRUD for labels.
type LabelService struct {
	db *gorm.DB
}

func NewLabelService(gdb *gorm.DB) *LabelService {
	return &LabelService{db: gdb}
}

// CreateLabelInput holds the data needed to create a new label
type CreateLabelInput struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

// UpdateLabelInput is the tri-state changeset source for a label update.
type UpdateLabelInput struct {
	Name  *string             `json:"name"`
	Color patch.Field[string] `json:"color"`
}

func (s *LabelService) Create(ctx context.Context, owner uuid.UUID, in CreateLabelInput) (*models.Label, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("label name is required")
	}

	label := models.Label{
		UserID: owner,
		Name:   in.Name,
		Color:  in.Color,
	}
	if err := s.db.WithContext(ctx).Create(&label).Error; err != nil {
		return nil, apperr.FromDB(err, "label not found")
	}
	return &label, nil
}

func (s *LabelService) List(ctx context.Context, owner uuid.UUID) ([]models.Label, error) {
	labels := []models.Label{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("name ASC").
		Find(&labels).Error
	if err != nil {
		return nil, apperr.FromDB(err, "labels not found")
	}
	return labels, nil
}

func (s *LabelService) Get(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*models.Label, error) {
	var label models.Label
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&label).Error
	if err != nil {
		return nil, apperr.FromDB(err, notOwnedMsg("label", id))
	}
	return &label, nil
}

func (s *LabelService) Update(ctx context.Context, owner uuid.UUID, id uuid.UUID, in UpdateLabelInput) (*models.Label, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Validation("label name cannot be empty")
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	in.Color.Apply(updates, "color")

	res := s.db.WithContext(ctx).
		Model(&models.Label{}).
		Where("id = ? AND user_id = ?", id, owner).
		Updates(updates)
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, notOwnedMsg("label", id))
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("%s", notOwnedMsg("label", id))
	}

	return s.Get(ctx, owner, id)
}

func (s *LabelService) Delete(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedLabel := tx.Model(&models.Label{}).
			Select("id").
			Where("id = ? AND user_id = ?", id, owner)
		if err := tx.
			Where("label_id IN (?)", ownedLabel).
			Delete(&models.TaskLabel{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", id, owner).Delete(&models.Label{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("%s", notOwnedMsg("label", id))
		}
		return nil
	})
	if err != nil {
		return apperr.As(err)
	}
	return nil
}
