package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optitask/optitask/internal/apperr"
	"github.com/optitask/optitask/internal/pagination"
	"github.com/optitask/optitask/internal/patch"
)

func TestTimeEntryService_DurationDerivation(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTimeEntryService(gdb)
	owner := uuid.New()
	ctx := context.Background()

	task := mustCreateTask(t, gdb, owner, "tracked", nil)

	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 20, 10, 5, 30, 0, time.UTC)

	entry, err := svc.Create(ctx, owner, CreateTimeEntryInput{
		TaskID:    task.ID,
		StartTime: start,
		EndTime:   &end,
	})
	require.NoError(t, err)
	require.NotNil(t, entry.DurationSeconds)
	assert.Equal(t, 330, *entry.DurationSeconds)
}

func TestTimeEntryService_ExplicitDurationWins(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTimeEntryService(gdb)
	owner := uuid.New()
	ctx := context.Background()

	task := mustCreateTask(t, gdb, owner, "tracked", nil)

	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 20, 10, 5, 30, 0, time.UTC)
	explicit := 100

	entry, err := svc.Create(ctx, owner, CreateTimeEntryInput{
		TaskID:          task.ID,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: &explicit,
	})
	require.NoError(t, err)
	require.NotNil(t, entry.DurationSeconds)
	assert.Equal(t, 100, *entry.DurationSeconds, "explicit duration must never be silently overwritten")
}

func TestTimeEntryService_NoDerivationWithoutEnd(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTimeEntryService(gdb)
	owner := uuid.New()
	ctx := context.Background()

	task := mustCreateTask(t, gdb, owner, "tracked", nil)

	entry, err := svc.Create(ctx, owner, CreateTimeEntryInput{
		TaskID:    task.ID,
		StartTime: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Nil(t, entry.EndTime)
	assert.Nil(t, entry.DurationSeconds)
	assert.False(t, entry.IsPomodoroSession)
}

func TestTimeEntryService_CreateProbesTaskOwnership(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTimeEntryService(gdb)
	owner := uuid.New()
	ctx := context.Background()

	task := mustCreateTask(t, gdb, owner, "tracked", nil)

	_, err := svc.Create(ctx, uuid.New(), CreateTimeEntryInput{
		TaskID:    task.ID,
		StartTime: time.Now().UTC(),
	})
	requireKind(t, err, apperr.KindNotFound)
}

func TestTimeEntryService_UpdateDerivesFromStoredStart(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTimeEntryService(gdb)
	owner := uuid.New()
	ctx := context.Background()

	task := mustCreateTask(t, gdb, owner, "tracked", nil)
	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	entry, err := svc.Create(ctx, owner, CreateTimeEntryInput{TaskID: task.ID, StartTime: start})
	require.NoError(t, err)

	end := start.Add(90 * time.Second)
	updated, err := svc.Update(ctx, owner, entry.ID, UpdateTimeEntryInput{
		EndTime: patch.Set(end),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DurationSeconds)
	assert.Equal(t, 90, *updated.DurationSeconds)
}

func TestTimeEntryService_UpdateKeepsExplicitDuration(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTimeEntryService(gdb)
	owner := uuid.New()
	ctx := context.Background()

	task := mustCreateTask(t, gdb, owner, "tracked", nil)
	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	entry, err := svc.Create(ctx, owner, CreateTimeEntryInput{TaskID: task.ID, StartTime: start})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, entry.ID, UpdateTimeEntryInput{
		EndTime:         patch.Set(start.Add(90 * time.Second)),
		DurationSeconds: patch.Set(42),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DurationSeconds)
	assert.Equal(t, 42, *updated.DurationSeconds)
}

func TestTimeEntryService_UpdateClearEndTime(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTimeEntryService(gdb)
	owner := uuid.New()
	ctx := context.Background()

	task := mustCreateTask(t, gdb, owner, "tracked", nil)
	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	entry, err := svc.Create(ctx, owner, CreateTimeEntryInput{TaskID: task.ID, StartTime: start, EndTime: &end})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, entry.ID, UpdateTimeEntryInput{
		EndTime:         patch.Clear[time.Time](),
		DurationSeconds: patch.Clear[int](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.EndTime)
	assert.Nil(t, updated.DurationSeconds)
}

func TestTimeEntryService_ListFiltersAndPaginates(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTimeEntryService(gdb)
	owner := uuid.New()
	ctx := context.Background()

	taskA := mustCreateTask(t, gdb, owner, "a", nil)
	taskB := mustCreateTask(t, gdb, owner, "b", nil)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		mustCreateEntry(t, gdb, owner, taskA.ID, base.AddDate(0, 0, i), 60)
	}
	mustCreateEntry(t, gdb, owner, taskB.ID, base, 60)

	page, err := svc.List(ctx, owner, TimeEntryFilter{TaskID: &taskA.ID}, pagination.Params{Page: 2, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.TotalItems)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.Len(t, page.Items, 2)

	from := base.AddDate(0, 0, 10)
	page, err = svc.List(ctx, owner, TimeEntryFilter{TaskID: &taskA.ID, DateFrom: &from}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)

	// Most recent first.
	page, err = svc.List(ctx, owner, TimeEntryFilter{}, pagination.Params{PerPage: 3})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.True(t, page.Items[0].StartTime.After(page.Items[1].StartTime))
}

func TestTimeEntryService_OwnershipMasking(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTimeEntryService(gdb)
	owner := uuid.New()
	stranger := uuid.New()
	ctx := context.Background()

	task := mustCreateTask(t, gdb, owner, "tracked", nil)
	entry := mustCreateEntry(t, gdb, owner, task.ID, time.Now().UTC(), 60)

	_, err := svc.Get(ctx, stranger, entry.ID)
	requireKind(t, err, apperr.KindNotFound)

	_, err = svc.Update(ctx, stranger, entry.ID, UpdateTimeEntryInput{})
	requireKind(t, err, apperr.KindNotFound)

	requireKind(t, svc.Delete(ctx, stranger, entry.ID), apperr.KindNotFound)

	_, err = svc.Get(ctx, owner, entry.ID)
	assert.NoError(t, err)
}
