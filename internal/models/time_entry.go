package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeEntry represents a tracked block of time against a task
type TimeEntry struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TaskID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"task_id"`
	StartTime         time.Time  `gorm:"not null" json:"start_time"`
	EndTime           *time.Time `json:"end_time"`
	DurationSeconds   *int       `json:"duration_seconds"`
	IsPomodoroSession bool       `gorm:"not null;default:false" json:"is_pomodoro_session"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
}

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
