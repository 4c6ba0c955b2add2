package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginator(t *testing.T) {
	tests := []struct {
		name       string
		pageNumber string
		pageSize   string
		want       Paginator
	}{
		{"defaults", "", "", Paginator{1, 8}},
		{"explicit", "3", "20", Paginator{3, 20}},
		{"not numbers", "abc", "x", Paginator{1, 8}},
		{"non positive", "0", "-5", Paginator{1, 8}},
		{"capped size", "1", "1000", Paginator{1, MaxPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPaginator(tt.pageNumber, tt.pageSize))
		})
	}
}

func TestPaginator_OffsetAndPages(t *testing.T) {
	p := Paginator{PageNumber: 3, PageSize: 8}
	assert.Equal(t, 16, p.Offset())
	assert.Equal(t, 0, p.PagesCount(0))
	assert.Equal(t, 1, p.PagesCount(8))
	assert.Equal(t, 2, p.PagesCount(9))
}
