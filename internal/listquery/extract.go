// Package listquery derives the paging and sorting directives of a list
// request. A directive may come from the query string or from the JSON body,
// never from both.
package listquery

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"gateway/internal/domain"

	"github.com/tidwall/gjson"
)

const (
	queryPage          = "page"
	queryPageSize      = "pageSize"
	querySortProperty  = "sortProperty"
	querySortDirection = "sortDirection"

	bodyPaging  = "paging"
	bodySorting = "sorting"
)

// Directives is the immutable result of extracting one request.
// A nil field means the client did not ask for that directive.
type Directives struct {
	Paging  *domain.PagingDirective
	Sorting *domain.SortingDirective
}

// Extract runs both extractors. They are independent; the first error wins.
func Extract(query url.Values, body []byte) (Directives, error) {
	paging, err := ExtractPaging(query, body)
	if err != nil {
		return Directives{}, err
	}
	sorting, err := ExtractSorting(query, body)
	if err != nil {
		return Directives{}, err
	}
	return Directives{Paging: paging, Sorting: sorting}, nil
}

// ExtractPaging reads page/pageSize from the query or "paging" from the body.
func ExtractPaging(query url.Values, body []byte) (*domain.PagingDirective, error) {
	fromBody, err := bodyField(body, bodyPaging)
	if err != nil {
		return nil, err
	}

	if query.Has(queryPage) && query.Has(queryPageSize) {
		if fromBody.Exists() {
			return nil, domain.ConflictingInputError{Directive: bodyPaging}
		}
		page, err := parsePositive(queryPage, query.Get(queryPage))
		if err != nil {
			return nil, err
		}
		size, err := parsePositive(queryPageSize, query.Get(queryPageSize))
		if err != nil {
			return nil, err
		}
		return &domain.PagingDirective{Page: page, PageSize: size}, nil
	}

	if !fromBody.Exists() {
		return nil, nil
	}

	var p domain.PagingDirective
	if err := json.Unmarshal([]byte(fromBody.Raw), &p); err != nil {
		return nil, domain.ValidationError{Field: bodyPaging, Msg: "must be {page, pageSize} with integer values", Err: err}
	}
	if p.Page < 1 {
		return nil, domain.ValidationError{Field: "paging.page", Msg: "must be a positive integer"}
	}
	if p.PageSize < 1 {
		return nil, domain.ValidationError{Field: "paging.pageSize", Msg: "must be a positive integer"}
	}
	return &p, nil
}

// ExtractSorting reads sortProperty/sortDirection from the query or "sorting"
// from the body. Values are not checked against known fields or directions.
func ExtractSorting(query url.Values, body []byte) (*domain.SortingDirective, error) {
	fromBody, err := bodyField(body, bodySorting)
	if err != nil {
		return nil, err
	}

	if query.Has(querySortProperty) && query.Has(querySortDirection) {
		if fromBody.Exists() {
			return nil, domain.ConflictingInputError{Directive: bodySorting}
		}
		return &domain.SortingDirective{
			SortProperty:  query.Get(querySortProperty),
			SortDirection: query.Get(querySortDirection),
		}, nil
	}

	if !fromBody.Exists() {
		return nil, nil
	}

	var s struct {
		Property  string `json:"property"`
		Direction string `json:"direction"`
	}
	if err := json.Unmarshal([]byte(fromBody.Raw), &s); err != nil {
		return nil, domain.ValidationError{Field: bodySorting, Msg: "must be {property, direction} with string values", Err: err}
	}
	return &domain.SortingDirective{SortProperty: s.Property, SortDirection: s.Direction}, nil
}

// bodyField returns the named top-level field of a JSON object body.
// JSON null counts as absent.
func bodyField(body []byte, name string) (gjson.Result, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return gjson.Result{}, nil
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, domain.ValidationError{Msg: "request body is not valid JSON"}
	}
	res := gjson.GetBytes(body, name)
	if res.Type == gjson.Null {
		return gjson.Result{}, nil
	}
	return res, nil
}

// parsePositive parses the leading base-10 integer of s, ignoring trailing
// characters ("25abc" is 25), and rejects values below 1.
func parsePositive(field, s string) (int, error) {
	n, ok := parseLeadingInt(s)
	if !ok || n < 1 {
		return 0, domain.ValidationError{Field: field, Msg: "must be a positive integer"}
	}
	return n, nil
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
