// Package httpapi is the transport boundary: routing, identity
// extraction, payload decoding and response rendering. All domain
// behavior lives in the services it delegates to.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/optitask/optitask/internal/db"
)

// Server wires the resource services to HTTP routes.
type Server struct {
	logger  *slog.Logger
	db      *gorm.DB
	timeout time.Duration
	now     func() time.Time

	projects   *db.ProjectService
	tasks      *db.TaskService
	labels     *db.LabelService
	taskLabels *db.TaskLabelService
	entries    *db.TimeEntryService
	analytics  *db.AnalyticsService
}

// New builds a Server over an opened storage handle. timeout bounds each
// request, which includes waiting for a pool connection.
func New(gdb *gorm.DB, logger *slog.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Server{
		logger:     logger,
		db:         gdb,
		timeout:    timeout,
		now:        time.Now,
		projects:   db.NewProjectService(gdb),
		tasks:      db.NewTaskService(gdb),
		labels:     db.NewLabelService(gdb),
		taskLabels: db.NewTaskLabelService(gdb),
		entries:    db.NewTimeEntryService(gdb),
		analytics:  db.NewAnalyticsService(gdb),
	}
}

// Handler returns the routed HTTP handler with logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.Handle("POST /projects", s.authed(s.createProject))
	mux.Handle("GET /projects", s.authed(s.listProjects))
	mux.Handle("GET /projects/{id}", s.authed(s.getProject))
	mux.Handle("PUT /projects/{id}", s.authed(s.updateProject))
	mux.Handle("DELETE /projects/{id}", s.authed(s.deleteProject))

	mux.Handle("POST /tasks", s.authed(s.createTask))
	mux.Handle("GET /tasks", s.authed(s.listTasks))
	mux.Handle("GET /tasks/{id}", s.authed(s.getTask))
	mux.Handle("PUT /tasks/{id}", s.authed(s.updateTask))
	mux.Handle("DELETE /tasks/{id}", s.authed(s.deleteTask))
	mux.Handle("PUT /tasks/{id}/toggle-completion", s.authed(s.toggleTaskCompletion))

	mux.Handle("POST /tasks/{id}/labels", s.authed(s.addLabelToTask))
	mux.Handle("GET /tasks/{id}/labels", s.authed(s.listLabelsForTask))
	mux.Handle("DELETE /tasks/{id}/labels/{labelID}", s.authed(s.removeLabelFromTask))

	mux.Handle("POST /labels", s.authed(s.createLabel))
	mux.Handle("GET /labels", s.authed(s.listLabels))
	mux.Handle("GET /labels/{id}", s.authed(s.getLabel))
	mux.Handle("PUT /labels/{id}", s.authed(s.updateLabel))
	mux.Handle("DELETE /labels/{id}", s.authed(s.deleteLabel))

	mux.Handle("POST /time-entries", s.authed(s.createTimeEntry))
	mux.Handle("GET /time-entries", s.authed(s.listTimeEntries))
	mux.Handle("GET /time-entries/{id}", s.authed(s.getTimeEntry))
	mux.Handle("PUT /time-entries/{id}", s.authed(s.updateTimeEntry))
	mux.Handle("DELETE /time-entries/{id}", s.authed(s.deleteTimeEntry))

	mux.Handle("GET /analytics/time-by-project", s.authed(s.timeByProject))
	mux.Handle("GET /analytics/productivity-trend", s.authed(s.productivityTrend))

	return s.logRequests(mux)
}

// logRequests is the outermost middleware: one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
