package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClampsBadInput(t *testing.T) {
	tests := []struct {
		page, limit string
		want        Params
	}{
		{"", "", Params{Page: 1, Limit: DefaultLimit}},
		{"abc", "xyz", Params{Page: 1, Limit: DefaultLimit}},
		{"0", "0", Params{Page: 1, Limit: DefaultLimit}},
		{"-3", "-1", Params{Page: 1, Limit: DefaultLimit}},
		{"4", "25", Params{Page: 4, Limit: 25}},
		{" 2 ", "5000", Params{Page: 2, Limit: MaxLimit}},
		{"922337203685477581", "100", Params{Page: MaxPage, Limit: MaxLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.page+"/"+tt.limit, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.page, tt.limit))
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		p        Params
		total    int64
		returned int
		skip     int64
		want     Pagination
	}{
		{"last partial page", New(3, 10), 25, 5, 20, Pagination{Current: 3, Total: 3, HasNext: false, HasPrev: true}},
		{"first page", New(1, 10), 25, 10, 0, Pagination{Current: 1, Total: 3, HasNext: true, HasPrev: false}},
		{"empty", New(1, 10), 0, 0, 0, Pagination{Current: 1, Total: 0}},
		{"beyond the end", New(9, 10), 25, 0, 80, Pagination{Current: 9, Total: 3, HasNext: false, HasPrev: true}},
		{"exact multiple", New(2, 5), 10, 5, 5, Pagination{Current: 2, Total: 2, HasNext: false, HasPrev: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.skip, tt.p.Skip())
			assert.Equal(t, tt.want, tt.p.Paginate(tt.total, tt.returned))
		})
	}
}

func TestHugePageNeverOverflows(t *testing.T) {
	p := Parse("922337203685477581", "100")
	assert.GreaterOrEqual(t, p.Skip(), int64(0))
	assert.Equal(t, int64(MaxPage-1)*MaxLimit, p.Skip())

	got := p.Paginate(25, 0)
	assert.False(t, got.HasNext)
	assert.True(t, got.HasPrev)
	assert.Equal(t, 1, got.Total)
}
