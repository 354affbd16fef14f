package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page selects the window [(Number-1)*Limit, Number*Limit) of the newest-first ordering.
type Page struct {
	Number int64
	Limit  int64
}

// NewPage replaces non-positive values with the defaults.
func NewPage(number, limit int64) Page {
	if number < 1 {
		number = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset saturates at math.MaxInt64 instead of overflowing.
func (p Page) Offset() int64 {
	p = NewPage(p.Number, p.Limit)
	if p.Number-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Number - 1) * p.Limit
}

// End is the exclusive upper bound of the window, saturating like Offset.
func (p Page) End() int64 {
	p = NewPage(p.Number, p.Limit)
	off := p.Offset()
	if off > math.MaxInt64-p.Limit {
		return math.MaxInt64
	}
	return off + p.Limit
}

func (p Page) HasNext(total int64) bool {
	return p.End() < total
}

// Window returns the [lo, hi) slice bounds for a collection of size total.
func (p Page) Window(total int64) (lo, hi int64) {
	lo, hi = p.Offset(), p.End()
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}
	return lo, hi
}

type BurnPage struct {
	Burns   []BurnRecord `json:"burns"`
	Total   int64        `json:"total"`
	Page    int64        `json:"page"`
	Limit   int64        `json:"limit"`
	HasNext bool         `json:"has_next"`
}
