// Package pagination implements page/offset arithmetic and page metadata
// for listing endpoints.
package pagination

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Params are the caller-supplied paging inputs.
type Params struct {
	Page    int
	PerPage int
}

// Normalize clamps non-positive values to the defaults. Invalid paging is
// forgiven rather than rejected; syntactically broken input is rejected at
// the HTTP layer before it gets here.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	return p
}

// Offset returns the number of rows to skip for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is one page of results plus the metadata clients need to paginate.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
}

// NewPage wraps items with metadata for the given normalized params.
func NewPage[T any](items []T, totalItems int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := (totalItems + int64(p.PerPage) - 1) / int64(p.PerPage)
	return Page[T]{
		Items:      items,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Page:       p.Page,
		PerPage:    p.PerPage,
	}
}
