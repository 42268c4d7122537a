package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/optitask/optitask/internal/analytics"
	"github.com/optitask/optitask/internal/apperr"
	"github.com/optitask/optitask/internal/models"
	"github.com/optitask/optitask/internal/pagination"
)

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.BadRequest("invalid JSON payload: %v", err)
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("invalid %s: not a valid UUID", name)
	}
	return id, nil
}

func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.BadRequest("invalid %s: not a valid UUID", name)
	}
	return &id, nil
}

func queryString(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	v := r.URL.Query().Get(name)
	return &v
}

// queryPagination reads page/per_page. Non-numeric input is rejected;
// out-of-range values are clamped to defaults by Normalize downstream.
func queryPagination(r *http.Request) (pagination.Params, error) {
	p := pagination.Params{Page: pagination.DefaultPage, PerPage: pagination.DefaultPerPage}
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, apperr.BadRequest("page must be an integer")
		}
		p.Page = n
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, apperr.BadRequest("per_page must be an integer")
		}
		p.PerPage = n
	}
	return p, nil
}

// timeLayouts accepted for datetime query parameters.
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, apperr.BadRequest("invalid %s: expected an ISO-8601 datetime", name)
}

func queryDate(r *http.Request, name string) (*models.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, apperr.BadRequest("invalid %s: expected YYYY-MM-DD", name)
	}
	return &d, nil
}

// analyticsQuery reads the window selection shared by both analytics
// endpoints.
func analyticsQuery(r *http.Request) (analytics.Query, error) {
	start, err := queryDate(r, "start_date")
	if err != nil {
		return analytics.Query{}, err
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		return analytics.Query{}, err
	}
	return analytics.Query{
		Period:    r.URL.Query().Get("period"),
		StartDate: start,
		EndDate:   end,
	}, nil
}
