// Package analytics resolves period selectors into concrete UTC time
// windows for the aggregation queries.
package analytics

import (
	"time"

	"github.com/optitask/optitask/internal/apperr"
	"github.com/optitask/optitask/internal/models"
)

// Named period selectors accepted by the analytics endpoints.
const (
	PeriodThisWeek   = "this_week"
	PeriodLast7Days  = "last_7_days"
	PeriodThisMonth  = "this_month"
	PeriodLast30Days = "last_30_days"
)

// Query is the raw window selection from the caller: either an explicit
// date pair, a named period, or nothing (defaults to this_week).
type Query struct {
	Period    string
	StartDate *models.Date
	EndDate   *models.Date
}

// Window is an inclusive UTC datetime range.
type Window struct {
	Start time.Time
	End   time.Time
}

// DateRange resolves the query to inclusive calendar dates relative to
// today. Explicit dates win over the period selector.
func (q Query) DateRange(today models.Date) (models.Date, models.Date, error) {
	if q.StartDate != nil && q.EndDate != nil {
		if q.StartDate.After(q.EndDate.Time) {
			return models.Date{}, models.Date{}, apperr.BadRequest("start_date cannot be after end_date")
		}
		return *q.StartDate, *q.EndDate, nil
	}

	switch q.Period {
	case "", PeriodThisWeek:
		// Monday-to-Sunday week containing today.
		daysSinceMonday := (int(today.Weekday()) + 6) % 7
		monday := models.Date{Time: today.AddDate(0, 0, -daysSinceMonday)}
		sunday := models.Date{Time: monday.AddDate(0, 0, 6)}
		return monday, sunday, nil
	case PeriodLast7Days:
		return models.Date{Time: today.AddDate(0, 0, -6)}, today, nil
	case PeriodThisMonth:
		first := models.NewDate(today.Year(), today.Month(), 1)
		// First day of the next month minus one day; time.Date normalizes
		// month 13 into January of the next year.
		last := models.Date{Time: time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
		return first, last, nil
	case PeriodLast30Days:
		return models.Date{Time: today.AddDate(0, 0, -29)}, today, nil
	default:
		return models.Date{}, models.Date{}, apperr.BadRequest(
			"invalid period %q: supported values are this_week, last_7_days, this_month, last_30_days, or provide start_date and end_date",
			q.Period)
	}
}

// ResolveWindow widens the resolved date range to inclusive datetime
// bounds: [start 00:00:00, end 23:59:59] UTC, so a record timestamped
// anywhere within the end date is included.
func (q Query) ResolveWindow(today models.Date) (Window, error) {
	start, end, err := q.DateRange(today)
	if err != nil {
		return Window{}, err
	}
	return Window{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC),
	}, nil
}
