package paging

import (
	"strconv"
	"strings"
)

const (
	// DefaultLimit is used when limit is missing, non-numeric or not positive.
	DefaultLimit = 10
	// MaxLimit caps a single page.
	MaxLimit = 100
	// MaxPage caps the page number so the skip stays far below int64 overflow.
	MaxPage = 1_000_000
)

// Params is a 1-based page request.
type Params struct {
	Page  int
	Limit int
}

// Parse reads raw query values. Bad or non-positive pages fall back to 1 and
// pages above MaxPage are capped, so the skip is never negative. Bad or
// non-positive limits fall back to the default.
func Parse(page, limit string) Params {
	return New(atoi(page, 1), atoi(limit, DefaultLimit))
}

// New clamps already-parsed values the same way Parse does.
func New(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func (p Params) Skip() int64 { return int64(p.Page-1) * int64(p.Limit) }

func (p Params) Limit64() int64 { return int64(p.Limit) }

// Pagination is the page-state descriptor returned next to listing items.
type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// Paginate describes the page given the total match count and the number of
// items actually returned for this page.
func (p Params) Paginate(total int64, returned int) Pagination {
	limit := int64(p.Limit)
	if limit < 1 {
		limit = DefaultLimit
	}
	return Pagination{
		Current: p.Page,
		Total:   int((total + limit - 1) / limit),
		HasNext: p.Skip()+int64(returned) < total,
		HasPrev: p.Page > 1,
	}
}

// Page is a listing result.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}
