package cvcue

import (
	"net/url"
	"strconv"
)

// QueryParams represents common list-endpoint parameters.
type QueryParams struct {
	Page     int
	PageSize int
	SortBy   string
	Filter   *FilterBuilder
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithPage sets the page number.
func (p *QueryParams) WithPage(page int) *QueryParams {
	p.Page = page

	return p
}

// WithPageSize sets the page size.
func (p *QueryParams) WithPageSize(size int) *QueryParams {
	p.PageSize = size

	return p
}

// WithSortBy sets the sort key. Prefix with "-" for descending order.
func (p *QueryParams) WithSortBy(key string) *QueryParams {
	p.SortBy = key

	return p
}

// WithFilter attaches a filter expression.
func (p *QueryParams) WithFilter(filter *FilterBuilder) *QueryParams {
	p.Filter = filter

	return p
}

// ToValues converts the params to url.Values. An invalid filter expression
// fails here, before any network call.
func (p *QueryParams) ToValues() (url.Values, error) {
	values := url.Values{}

	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}

	if p.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(p.PageSize))
	}

	if p.SortBy != "" {
		values.Set("sortBy", p.SortBy)
	}

	if p.Filter != nil {
		filterValues, err := p.Filter.ToValues()
		if err != nil {
			return nil, err
		}

		for key, vals := range filterValues {
			for _, val := range vals {
				values.Add(key, val)
			}
		}
	}

	return values, nil
}
