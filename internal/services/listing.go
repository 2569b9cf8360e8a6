package services

import (
	"math"
	"strings"

	"gateway/internal/domain"
	"gateway/internal/listquery"
	"gateway/internal/repositories"
)

const (
	defaultPageSize    = 50
	defaultMaxPageSize = 200
)

// ListLimits bounds what clients may request from a list endpoint.
type ListLimits struct {
	MaxPageSize int
}

func (l ListLimits) maxPageSize() int {
	if l.MaxPageSize <= 0 {
		return defaultMaxPageSize
	}
	return l.MaxPageSize
}

// resolveList validates directives against the sortable columns of one entity
// and turns them into a repository window. The effective paging is returned so
// the response can echo it.
func resolveList(q listquery.Directives, columns map[string]string, limits ListLimits) (domain.PagingDirective, repositories.ListSpec, error) {
	paging := domain.PagingDirective{Page: 1, PageSize: defaultPageSize}
	if q.Paging != nil {
		paging = *q.Paging
	}
	if max := limits.maxPageSize(); paging.PageSize > max {
		paging.PageSize = max
	}
	if paging.Page-1 > math.MaxInt/paging.PageSize {
		return paging, repositories.ListSpec{}, domain.ValidationError{Field: "page", Msg: "is too large"}
	}

	spec := repositories.ListSpec{
		Limit:  paging.PageSize,
		Offset: paging.Offset(),
	}

	if q.Sorting != nil {
		col, ok := columns[q.Sorting.SortProperty]
		if !ok {
			return paging, spec, domain.ValidationError{Field: "sortProperty", Msg: "cannot sort by " + quote(q.Sorting.SortProperty)}
		}
		dir, err := sqlDirection(q.Sorting.SortDirection)
		if err != nil {
			return paging, spec, err
		}
		spec.OrderBy = col + " " + dir
		if col != "id" {
			spec.OrderBy += ", id " + dir
		}
	}
	return paging, spec, nil
}

func sqlDirection(raw string) (string, error) {
	switch domain.SortDirection(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.SortAscending, "asc":
		return "ASC", nil
	case domain.SortDescending, "desc":
		return "DESC", nil
	}
	return "", domain.ValidationError{Field: "sortDirection", Msg: "must be ascending or descending"}
}

func quote(s string) string {
	return `"` + s + `"`
}
