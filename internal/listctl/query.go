// Package listctl drives the paginated, filterable, sortable, multi-select
// admin user list and coordinates its bulk state-changing operations.
package listctl

import (
	"net/url"
	"strconv"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/domain"
)

// Sort fields accepted by the user list endpoint. Anything else falls back
// to the default.
var allowedSortFields = map[string]bool{
	"created_at": true,
	"full_name":  true,
	"email":      true,
	"status":     true,
}

const (
	defaultSortField = "created_at"
	defaultSortOrder = "desc"
)

// ListQuery is the complete request descriptor for one list view. It is
// never persisted across reloads; every navigation carries it in the URL.
type ListQuery struct {
	Page      int
	PageSize  int
	Search    string
	Status    string
	Branch    string
	SortField string
	SortOrder string
}

// DefaultQuery is the descriptor for a freshly opened list view.
func DefaultQuery() ListQuery {
	return ListQuery{
		Page:      1,
		PageSize:  domain.DefaultPageSize,
		SortField: defaultSortField,
		SortOrder: defaultSortOrder,
	}
}

// ParseQuery reads a list descriptor from URL query values, clamping and
// defaulting anything malformed.
func ParseQuery(values url.Values) ListQuery {
	q := DefaultQuery()
	if n, err := strconv.Atoi(values.Get("page")); err == nil {
		q.Page = domain.ClampPage(n)
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil {
		q.PageSize = domain.ClampPageSize(n)
	}
	q.Search = values.Get("search")
	if s := values.Get("status"); validStatusFilter(s) {
		q.Status = s
	}
	q.Branch = values.Get("branch")
	if f := values.Get("sort_by"); allowedSortFields[f] {
		q.SortField = f
	}
	if o := values.Get("sort_order"); o == "asc" || o == "desc" {
		q.SortOrder = o
	}
	return q
}

// WithSearch returns a copy filtered by the search term. Filter changes
// always reset to the first page.
func (q ListQuery) WithSearch(term string) ListQuery {
	q.Search = term
	q.Page = 1
	return q
}

// WithStatus returns a copy filtered by account status, reset to page 1.
func (q ListQuery) WithStatus(status string) ListQuery {
	if !validStatusFilter(status) {
		status = ""
	}
	q.Status = status
	q.Page = 1
	return q
}

// WithBranch returns a copy filtered by branch, reset to page 1.
func (q ListQuery) WithBranch(branch string) ListQuery {
	q.Branch = branch
	q.Page = 1
	return q
}

// WithSort returns a copy sorted by the given field and order, reset to
// page 1. Unknown fields and orders keep the current sort.
func (q ListQuery) WithSort(field, order string) ListQuery {
	if allowedSortFields[field] {
		q.SortField = field
	}
	if order == "asc" || order == "desc" {
		q.SortOrder = order
	}
	q.Page = 1
	return q
}

// WithPage returns a copy on the given page. Changing page alone preserves
// all filters and sorting.
func (q ListQuery) WithPage(page int) ListQuery {
	q.Page = domain.ClampPage(page)
	return q
}

// Params converts the descriptor to gateway list parameters.
func (q ListQuery) Params() backend.ListUsersParams {
	return backend.ListUsersParams{
		Page:      q.Page,
		Limit:     q.PageSize,
		Search:    q.Search,
		Status:    q.Status,
		Branch:    q.Branch,
		SortBy:    q.SortField,
		SortOrder: q.SortOrder,
	}
}

// Values encodes the descriptor as URL query values for pagination and sort
// links, omitting defaults to keep URLs short.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize != domain.DefaultPageSize {
		v.Set("limit", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Branch != "" {
		v.Set("branch", q.Branch)
	}
	if q.SortField != defaultSortField {
		v.Set("sort_by", q.SortField)
	}
	if q.SortOrder != defaultSortOrder {
		v.Set("sort_order", q.SortOrder)
	}
	return v
}

func validStatusFilter(s string) bool {
	switch domain.UserStatus(s) {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRevoked:
		return true
	}
	return s == ""
}
