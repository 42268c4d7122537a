package db

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optitask/optitask/internal/analytics"
	"github.com/optitask/optitask/internal/apperr"
	"github.com/optitask/optitask/internal/models"
)

// AnalyticsService runs the grouped-sum aggregations over time entries.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb}
}

// ProjectTimeStat is the total tracked time for one project in a window.
type ProjectTimeStat struct {
	ProjectID            uuid.UUID `json:"project_id"`
	ProjectName          string    `json:"project_name"`
	TotalDurationSeconds int64     `json:"total_duration_seconds"`
}

// TrendPoint is the total tracked time for one calendar day. Days with no
// entries are absent from the series, not zero-filled.
type TrendPoint struct {
	DatePoint            models.Date `json:"date_point"`
	TotalDurationSeconds int64       `json:"total_duration_seconds"`
}

// TimeByProject sums tracked seconds per project for entries whose start
// time falls inside the window, busiest project first. Entries on tasks
// without a project are excluded by the join.
func (s *AnalyticsService) TimeByProject(ctx context.Context, owner uuid.UUID, w analytics.Window) ([]ProjectTimeStat, error) {
	stats := []ProjectTimeStat{}
	err := s.db.WithContext(ctx).
		Table("time_entries").
		Select("projects.id AS project_id, projects.name AS project_name, COALESCE(SUM(time_entries.duration_seconds), 0) AS total_duration_seconds").
		Joins("JOIN tasks ON tasks.id = time_entries.task_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("time_entries.user_id = ?", owner).
		Where("time_entries.start_time >= ? AND time_entries.start_time <= ?", w.Start, w.End).
		Group("projects.id, projects.name").
		Order("total_duration_seconds DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, apperr.FromDB(err, "analytics not found")
	}
	return stats, nil
}

// ProductivityTrend sums tracked seconds per UTC calendar day across the
// window, oldest day first.
func (s *AnalyticsService) ProductivityTrend(ctx context.Context, owner uuid.UUID, w analytics.Window) ([]TrendPoint, error) {
	points := []TrendPoint{}
	err := s.db.WithContext(ctx).
		Table("time_entries").
		Select("DATE(time_entries.start_time) AS date_point, COALESCE(SUM(time_entries.duration_seconds), 0) AS total_duration_seconds").
		Where("time_entries.user_id = ?", owner).
		Where("time_entries.start_time >= ? AND time_entries.start_time <= ?", w.Start, w.End).
		Group("date_point").
		Order("date_point ASC").
		Scan(&points).Error
	if err != nil {
		return nil, apperr.FromDB(err, "analytics not found")
	}
	return points, nil
}
