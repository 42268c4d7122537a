package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task status values the toggle logic cares about. Status itself is
// free-form; anything that isn't StatusCompleted toggles to it.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Task represents a todo item owned by a single user
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `json:"description"`
	Status      string     `gorm:"not null;default:pending" json:"status"`
	DueDate     *Date      `json:"due_date"`
	TaskOrder   *int       `gorm:"column:task_order" json:"order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
	Labels  []Label  `gorm:"many2many:task_labels;" json:"labels"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TaskLabel is the join table for the many-to-many relationship.
// Existence of a row is boolean membership; it carries no timestamps.
type TaskLabel struct {
	TaskID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LabelID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (TaskLabel) TableName() string {
	return "task_labels"
}
