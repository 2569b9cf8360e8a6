package domain

// ID is used across domain entities.
type ID int64

// SortDirection is the client-requested ordering.
type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

// PagingDirective is the requested page window of a list endpoint.
// Page is 1-based.
type PagingDirective struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Offset returns the number of rows to skip for this page.
func (p PagingDirective) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// SortingDirective names the field to order by and the direction.
// SortDirection is kept as the raw client string; list handlers interpret it.
type SortingDirective struct {
	SortProperty  string `json:"sortProperty"`
	SortDirection string `json:"sortDirection"`
}

// Page wraps a slice of list results with paging totals.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPage builds the envelope, computing TotalPages from total and size.
func NewPage[T any](items []T, paging PagingDirective, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if paging.PageSize > 0 {
		pages = (total + paging.PageSize - 1) / paging.PageSize
	}
	return Page[T]{
		Items:      items,
		Page:       paging.Page,
		PageSize:   paging.PageSize,
		Total:      total,
		TotalPages: pages,
	}
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID   ID     `json:"userId"`
	TenantID ID     `json:"tenantId"`
	Role     string `json:"role"`
}
