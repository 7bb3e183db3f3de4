package domain

// DefaultPageSize is the page size used when none is specified.
const DefaultPageSize = 20

// MaxPageSize is the maximum allowed page size.
const MaxPageSize = 100

// Pagination describes one page of a server-backed list as reported by the
// backend list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a further page exists.
func (p Pagination) HasNext() bool {
	return p.TotalPages > 0 && p.Page < p.TotalPages
}

// ClampPageSize clamps a requested page size to [1, MaxPageSize], applying
// the default when the request carries none.
func ClampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// ClampPage clamps a requested page number to at least 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
