package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageQuery_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		query     PageQuery
		wantPage  int
		wantLimit int
	}{
		{"defaults", PageQuery{}, 1, DefaultPageSize},
		{"negative", PageQuery{Page: -3, Limit: -1}, 1, DefaultPageSize},
		{"limit capped", PageQuery{Page: 2, Limit: 1000}, 2, MaxPageSize},
		{"huge page", PageQuery{Page: math.MaxInt, Limit: MaxPageSize}, MaxPage, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := tt.query.Normalize()
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.GreaterOrEqual(t, Offset(page, limit), 0)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 5, 11)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.True(t, p.HasNextPage)

	p = NewPagination(MaxPage, MaxPageSize, 11)
	assert.Equal(t, MaxPage, p.Page)
	assert.False(t, p.HasNextPage)
}
