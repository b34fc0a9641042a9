package store

import "math"

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// PaginationParams selects one page of a listing. Match, when set, narrows
// the listing to records whose natural key equals it exactly: identity
// handle, provider or application name, app type. Listings here filter by
// identity, not by keyword.
type PaginationParams struct {
	Page     int
	PageSize int
	Match    string
}

// Normalized clamps the params into their valid ranges so callers can
// pass raw query input. Page is 1-indexed; page size is capped.
func (p PaginationParams) Normalized() PaginationParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

func (p PaginationParams) offset() int {
	return (p.Page - 1) * p.PageSize
}

// PaginationResult places one page inside the full listing.
type PaginationResult struct {
	Total       int64
	TotalPages  int
	CurrentPage int
	PageSize    int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

// Paginate computes where the selected page sits given the total record
// count of the listing.
func Paginate(total int64, params PaginationParams) PaginationResult {
	params = params.Normalized()

	totalPages := int(math.Ceil(float64(total) / float64(params.PageSize)))

	page := params.Page
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	return PaginationResult{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    params.PageSize,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
		PrevPage:    max(page-1, 1),
		NextPage:    min(page+1, totalPages),
	}
}
