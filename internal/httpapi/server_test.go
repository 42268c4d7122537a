package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optitask/optitask/internal/db"
	"github.com/optitask/optitask/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gdb, err := db.Open(db.Options{Path: "file::memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { db.Close(gdb) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(gdb, logger, 5*time.Second)
}

// do runs one request through the full handler stack. A zero owner omits
// the identity header entirely.
func do(t *testing.T, h http.Handler, method, target string, owner uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if owner != uuid.Nil {
		req.Header.Set(IdentityHeader, owner.String())
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/health", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[healthBody](t, rec)
	assert.Equal(t, "healthy", body.Status)
}

func TestIdentityExtraction(t *testing.T) {
	h := newTestServer(t).Handler()

	// No header at all.
	rec := do(t, h, http.MethodGet, "/projects", uuid.Nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
	assert.Contains(t, body.Message, IdentityHeader)

	// Header present but empty.
	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set(IdentityHeader, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	// Header present but not a UUID.
	req = httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set(IdentityHeader, "not-a-uuid")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, http.StatusBadRequest, decode[errorBody](t, rr).StatusCode)
}

func TestProjectLifecycle(t *testing.T) {
	h := newTestServer(t).Handler()
	owner := uuid.New()

	rec := do(t, h, http.MethodPost, "/projects", owner, map[string]any{
		"name":  "Deep Work",
		"color": "#ff0000",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Project](t, rec)
	require.NotEqual(t, uuid.Nil, created.ID)

	// Explicit null clears the color; omitting the name leaves it alone.
	rec = do(t, h, http.MethodPut, "/projects/"+created.ID.String(), owner, map[string]any{
		"color": nil,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Project](t, rec)
	assert.Equal(t, "Deep Work", updated.Name)
	assert.Nil(t, updated.Color)

	rec = do(t, h, http.MethodDelete, "/projects/"+created.ID.String(), owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[statusBody](t, rec)
	assert.Equal(t, "success", status.Status)
	assert.Contains(t, status.Message, created.ID.String())

	rec = do(t, h, http.MethodGet, "/projects/"+created.ID.String(), owner, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForeignOwnerMaskedAsNotFound(t *testing.T) {
	h := newTestServer(t).Handler()
	owner := uuid.New()

	rec := do(t, h, http.MethodPost, "/projects", owner, map[string]any{"name": "Private"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Project](t, rec)

	rec = do(t, h, http.MethodGet, "/projects/"+created.ID.String(), uuid.New(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, http.StatusNotFound, body.StatusCode)

	// Indistinguishable from a genuinely absent id.
	rec = do(t, h, http.MethodGet, "/projects/"+uuid.NewString(), owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationFailures(t *testing.T) {
	h := newTestServer(t).Handler()
	owner := uuid.New()

	rec := do(t, h, http.MethodPost, "/projects", owner, map[string]any{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/projects/not-a-uuid", owner, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/tasks?page=abc", owner, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorBody](t, rec).Message, "page")
}

func TestTaskListingEnvelope(t *testing.T) {
	h := newTestServer(t).Handler()
	owner := uuid.New()

	for i := 0; i < 12; i++ {
		rec := do(t, h, http.MethodPost, "/tasks", owner, map[string]any{"title": "task"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/tasks?page=2&per_page=10", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Items      []models.Task `json:"items"`
		TotalItems int64         `json:"total_items"`
		TotalPages int64         `json:"total_pages"`
		Page       int           `json:"page"`
		PerPage    int           `json:"per_page"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(12), envelope.TotalItems)
	assert.Equal(t, int64(2), envelope.TotalPages)
	assert.Equal(t, 2, envelope.Page)
	assert.Len(t, envelope.Items, 2)
}

func TestToggleCompletionRoute(t *testing.T) {
	h := newTestServer(t).Handler()
	owner := uuid.New()

	rec := do(t, h, http.MethodPost, "/tasks", owner, map[string]any{"title": "flip"})
	require.Equal(t, http.StatusCreated, rec.Code)
	task := decode[models.Task](t, rec)
	assert.Equal(t, models.StatusPending, task.Status)

	rec = do(t, h, http.MethodPut, "/tasks/"+task.ID.String()+"/toggle-completion", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusCompleted, decode[models.Task](t, rec).Status)
}

func TestTaskLabelAssociationRoutes(t *testing.T) {
	h := newTestServer(t).Handler()
	owner := uuid.New()

	rec := do(t, h, http.MethodPost, "/tasks", owner, map[string]any{"title": "t"})
	require.Equal(t, http.StatusCreated, rec.Code)
	task := decode[models.Task](t, rec)

	rec = do(t, h, http.MethodPost, "/labels", owner, map[string]any{"name": "urgent"})
	require.Equal(t, http.StatusCreated, rec.Code)
	label := decode[models.Label](t, rec)

	payload := map[string]any{"label_id": label.ID}
	rec = do(t, h, http.MethodPost, "/tasks/"+task.ID.String()+"/labels", owner, payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode[associationBody](t, rec)
	assert.Equal(t, "label added to task successfully", body.Message)

	// Idempotent repeat answers 200, not 409.
	rec = do(t, h, http.MethodPost, "/tasks/"+task.ID.String()+"/labels", owner, payload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "label already associated with task", decode[associationBody](t, rec).Message)

	rec = do(t, h, http.MethodGet, "/tasks/"+task.ID.String()+"/labels", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	labels := decode[[]models.Label](t, rec)
	require.Len(t, labels, 1)
	assert.Equal(t, "urgent", labels[0].Name)

	rec = do(t, h, http.MethodDelete, "/tasks/"+task.ID.String()+"/labels/"+label.ID.String(), owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/tasks/"+task.ID.String()+"/labels/"+label.ID.String(), owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTimeEntryRoutes(t *testing.T) {
	h := newTestServer(t).Handler()
	owner := uuid.New()

	rec := do(t, h, http.MethodPost, "/tasks", owner, map[string]any{"title": "tracked"})
	require.Equal(t, http.StatusCreated, rec.Code)
	task := decode[models.Task](t, rec)

	rec = do(t, h, http.MethodPost, "/time-entries", owner, map[string]any{
		"task_id":    task.ID,
		"start_time": "2026-08-20T10:00:00Z",
		"end_time":   "2026-08-20T10:05:30Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	entry := decode[models.TimeEntry](t, rec)
	require.NotNil(t, entry.DurationSeconds)
	assert.Equal(t, 330, *entry.DurationSeconds)

	// Missing start_time is a validation failure.
	rec = do(t, h, http.MethodPost, "/time-entries", owner, map[string]any{"task_id": task.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsRoutes(t *testing.T) {
	srv := newTestServer(t)
	srv.now = func() time.Time { return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC) }
	h := srv.Handler()
	owner := uuid.New()

	rec := do(t, h, http.MethodPost, "/projects", owner, map[string]any{"name": "Alpha"})
	require.Equal(t, http.StatusCreated, rec.Code)
	project := decode[models.Project](t, rec)

	rec = do(t, h, http.MethodPost, "/tasks", owner, map[string]any{"title": "t", "project_id": project.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	task := decode[models.Task](t, rec)

	rec = do(t, h, http.MethodPost, "/time-entries", owner, map[string]any{
		"task_id":          task.ID,
		"start_time":       "2026-08-18T09:00:00Z",
		"duration_seconds": 120,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Default window is the current week, which covers the 18th.
	rec = do(t, h, http.MethodGet, "/analytics/time-by-project", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats []struct {
		ProjectName          string `json:"project_name"`
		TotalDurationSeconds int64  `json:"total_duration_seconds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, "Alpha", stats[0].ProjectName)
	assert.Equal(t, int64(120), stats[0].TotalDurationSeconds)

	rec = do(t, h, http.MethodGet, "/analytics/productivity-trend?period=last_30_days", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/analytics/time-by-project?period=fortnight", owner, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorBody](t, rec).Message, "fortnight")

	rec = do(t, h, http.MethodGet, "/analytics/time-by-project?start_date=2026-08-20&end_date=2026-08-01", owner, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
