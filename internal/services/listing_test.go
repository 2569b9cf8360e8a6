package services

import (
	"net/url"
	"testing"

	"gateway/internal/domain"
	"gateway/internal/listquery"
	"gateway/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveList_Defaults(t *testing.T) {
	paging, spec, err := resolveList(listquery.Directives{}, repositories.OrderSortColumns, ListLimits{})
	require.NoError(t, err)
	assert.Equal(t, domain.PagingDirective{Page: 1, PageSize: 50}, paging)
	assert.Equal(t, repositories.ListSpec{Limit: 50, Offset: 0}, spec)
}

func TestResolveList_PagingAndSorting(t *testing.T) {
	q := listquery.Directives{
		Paging:  &domain.PagingDirective{Page: 3, PageSize: 25},
		Sorting: &domain.SortingDirective{SortProperty: "createdAt", SortDirection: "Descending"},
	}
	paging, spec, err := resolveList(q, repositories.OrderSortColumns, ListLimits{MaxPageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 3, paging.Page)
	assert.Equal(t, repositories.ListSpec{Limit: 25, Offset: 50, OrderBy: "created_at DESC, id DESC"}, spec)
}

func TestResolveList_ShortDirectionAndIDColumn(t *testing.T) {
	q := listquery.Directives{Sorting: &domain.SortingDirective{SortProperty: "id", SortDirection: "asc"}}
	_, spec, err := resolveList(q, repositories.DriverSortColumns, ListLimits{})
	require.NoError(t, err)
	assert.Equal(t, "id ASC", spec.OrderBy)
}

func TestResolveList_ClampsPageSize(t *testing.T) {
	q := listquery.Directives{Paging: &domain.PagingDirective{Page: 2, PageSize: 5000}}
	paging, spec, err := resolveList(q, repositories.VehicleSortColumns, ListLimits{MaxPageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 100, paging.PageSize)
	assert.Equal(t, 100, spec.Limit)
	assert.Equal(t, 100, spec.Offset)
}

func TestResolveList_RejectsUnknownProperty(t *testing.T) {
	q := listquery.Directives{Sorting: &domain.SortingDirective{SortProperty: "password; DROP TABLE", SortDirection: "ascending"}}
	_, _, err := resolveList(q, repositories.OrderSortColumns, ListLimits{})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestResolveList_RejectsUnknownDirection(t *testing.T) {
	q := listquery.Directives{Sorting: &domain.SortingDirective{SortProperty: "name", SortDirection: "sideways"}}
	_, _, err := resolveList(q, repositories.RouteSortColumns, ListLimits{})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestResolveList_RejectsOverflowingPage(t *testing.T) {
	q, err := listquery.Extract(url.Values{"page": {"9223372036854775807"}, "pageSize": {"200"}}, nil)
	require.NoError(t, err)
	_, spec, err := resolveList(q, repositories.OrderSortColumns, ListLimits{})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, spec.Offset)

	// pageSize is clamped before the bound is computed
	q, err = listquery.Extract(url.Values{"page": {"46116860184273879"}, "pageSize": {"5000"}}, nil)
	require.NoError(t, err)
	paging, spec, err := resolveList(q, repositories.OrderSortColumns, ListLimits{})
	require.NoError(t, err)
	assert.Equal(t, 200, paging.PageSize)
	assert.Positive(t, spec.Offset)
}
