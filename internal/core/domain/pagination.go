package domain

import "strconv"

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 8
	MaxPageSize       = 100
)

// Paginator selects one page of a listing.
type Paginator struct {
	PageNumber int
	PageSize   int
}

// NewPaginator parses raw query values. Missing, non-numeric or non-positive
// values fall back to the defaults.
func NewPaginator(pageNumber, pageSize string) Paginator {
	p := Paginator{PageNumber: DefaultPageNumber, PageSize: DefaultPageSize}
	if n, err := strconv.Atoi(pageNumber); err == nil && n >= 1 {
		p.PageNumber = n
	}
	if n, err := strconv.Atoi(pageSize); err == nil && n >= 1 {
		p.PageSize = min(n, MaxPageSize)
	}
	return p
}

// Offset is the number of rows to skip.
func (p Paginator) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// PagesCount returns how many pages total rows span.
func (p Paginator) PagesCount(total int64) int {
	if total == 0 {
		return 0
	}
	size := int64(p.PageSize)
	return int((total + size - 1) / size)
}
