package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/optitask/optitask/internal/apperr"
	"github.com/optitask/optitask/internal/models"
)

// newTestDB opens an isolated in-memory database. One connection max, so
// every statement sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := Open(Options{Path: "file::memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	t.Cleanup(func() { Close(gdb) })
	return gdb
}

func mustCreateProject(t *testing.T, gdb *gorm.DB, owner uuid.UUID, name string) *models.Project {
	t.Helper()
	project, err := NewProjectService(gdb).Create(context.Background(), owner, CreateProjectInput{Name: name})
	require.NoError(t, err)
	return project
}

func mustCreateTask(t *testing.T, gdb *gorm.DB, owner uuid.UUID, title string, projectID *uuid.UUID) *models.Task {
	t.Helper()
	task, err := NewTaskService(gdb).Create(context.Background(), owner, CreateTaskInput{
		Title:     title,
		ProjectID: projectID,
	})
	require.NoError(t, err)
	return task
}

func mustCreateLabel(t *testing.T, gdb *gorm.DB, owner uuid.UUID, name string) *models.Label {
	t.Helper()
	label, err := NewLabelService(gdb).Create(context.Background(), owner, CreateLabelInput{Name: name})
	require.NoError(t, err)
	return label
}

func mustCreateEntry(t *testing.T, gdb *gorm.DB, owner uuid.UUID, taskID uuid.UUID, start time.Time, seconds int) *models.TimeEntry {
	t.Helper()
	entry, err := NewTimeEntryService(gdb).Create(context.Background(), owner, CreateTimeEntryInput{
		TaskID:          taskID,
		StartTime:       start,
		DurationSeconds: &seconds,
	})
	require.NoError(t, err)
	return entry
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.As(err).Kind, "unexpected error kind: %v", err)
}
