package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optitask/optitask/internal/apperr"
	"github.com/optitask/optitask/internal/models"
	"github.com/optitask/optitask/internal/pagination"
	"github.com/optitask/optitask/internal/patch"
)

// TimeEntryService implements owner-scoped CRUD for tracked time.
type TimeEntryService struct {
	db *gorm.DB
}

func NewTimeEntryService(gdb *gorm.DB) *TimeEntryService {
	return &TimeEntryService{db: gdb}
}

// CreateTimeEntryInput holds the data needed to record a time entry
type CreateTimeEntryInput struct {
	TaskID            uuid.UUID  `json:"task_id"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           *time.Time `json:"end_time"`
	DurationSeconds   *int       `json:"duration_seconds"`
	IsPomodoroSession *bool      `json:"is_pomodoro_session"`
}

// UpdateTimeEntryInput is the tri-state changeset source for an update.
// start_time and the pomodoro flag are not nullable, so they use plain
// two-state pointers.
type UpdateTimeEntryInput struct {
	StartTime         *time.Time             `json:"start_time"`
	EndTime           patch.Field[time.Time] `json:"end_time"`
	DurationSeconds   patch.Field[int]       `json:"duration_seconds"`
	IsPomodoroSession *bool                  `json:"is_pomodoro_session"`
}

// TimeEntryFilter narrows a listing. Nil fields match everything.
type TimeEntryFilter struct {
	TaskID   *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// Create records a time entry against a task the caller owns. When the
// payload has an end time after the start but no explicit duration, the
// duration is derived in whole seconds; an explicit value is never
// overwritten.
func (s *TimeEntryService) Create(ctx context.Context, owner uuid.UUID, in CreateTimeEntryInput) (*models.TimeEntry, error) {
	if in.StartTime.IsZero() {
		return nil, apperr.Validation("start_time is required")
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", in.TaskID, owner).
		Count(&count).Error
	if err != nil {
		return nil, apperr.FromDB(err, notOwnedMsg("task", in.TaskID))
	}
	if count == 0 {
		return nil, apperr.NotFound("%s", notOwnedMsg("task", in.TaskID))
	}

	duration := in.DurationSeconds
	if duration == nil && in.EndTime != nil && in.EndTime.After(in.StartTime) {
		secs := int(in.EndTime.Sub(in.StartTime).Seconds())
		duration = &secs
	}

	entry := models.TimeEntry{
		UserID:          owner,
		TaskID:          in.TaskID,
		StartTime:       in.StartTime.UTC(),
		EndTime:         in.EndTime,
		DurationSeconds: duration,
	}
	if in.IsPomodoroSession != nil {
		entry.IsPomodoroSession = *in.IsPomodoroSession
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, apperr.FromDB(err, "time entry not found")
	}
	return &entry, nil
}

// List returns one page of the owner's time entries, most recent first.
func (s *TimeEntryService) List(ctx context.Context, owner uuid.UUID, filter TimeEntryFilter, page pagination.Params) (pagination.Page[models.TimeEntry], error) {
	page = page.Normalize()

	filtered := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.TimeEntry{}).Where("user_id = ?", owner)
		if filter.TaskID != nil {
			q = q.Where("task_id = ?", *filter.TaskID)
		}
		if filter.DateFrom != nil {
			q = q.Where("start_time >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			q = q.Where("start_time <= ?", *filter.DateTo)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return pagination.Page[models.TimeEntry]{}, apperr.FromDB(err, "time entries not found")
	}

	entries := []models.TimeEntry{}
	err := filtered().
		Order("start_time DESC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&entries).Error
	if err != nil {
		return pagination.Page[models.TimeEntry]{}, apperr.FromDB(err, "time entries not found")
	}

	return pagination.NewPage(entries, total, page), nil
}

func (s *TimeEntryService) Get(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&entry).Error
	if err != nil {
		return nil, apperr.FromDB(err, notOwnedMsg("time entry", id))
	}
	return &entry, nil
}

// Update applies the changeset. When the payload sets an end time but
// leaves the duration unset (or explicitly cleared), the duration is
// re-derived against the entry's stored start time.
func (s *TimeEntryService) Update(ctx context.Context, owner uuid.UUID, id uuid.UUID, in UpdateTimeEntryInput) (*models.TimeEntry, error) {
	current, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	duration := in.DurationSeconds
	if in.EndTime.Present && !in.EndTime.Null {
		if !duration.Present || duration.Null {
			if in.EndTime.Value.After(current.StartTime) {
				duration = patch.Set(int(in.EndTime.Value.Sub(current.StartTime).Seconds()))
			}
		}
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if in.StartTime != nil {
		updates["start_time"] = in.StartTime.UTC()
	}
	in.EndTime.Apply(updates, "end_time")
	duration.Apply(updates, "duration_seconds")
	if in.IsPomodoroSession != nil {
		updates["is_pomodoro_session"] = *in.IsPomodoroSession
	}

	res := s.db.WithContext(ctx).
		Model(&models.TimeEntry{}).
		Where("id = ? AND user_id = ?", id, owner).
		Updates(updates)
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, notOwnedMsg("time entry", id))
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("%s", notOwnedMsg("time entry", id))
	}

	return s.Get(ctx, owner, id)
}

func (s *TimeEntryService) Delete(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		Delete(&models.TimeEntry{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, notOwnedMsg("time entry", id))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("%s", notOwnedMsg("time entry", id))
	}
	return nil
}
