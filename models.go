package searchresult

import (
	"math"
	"strings"
)

// Record is one flat record as yielded by a RecordSource: field name to scalar
// value (string, number, bool or nil).
type Record map[string]any

// Clone returns a shallow copy of the record. Values are scalars, so a shallow
// copy is enough to keep the original untouched.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Direction represents the sort direction for a field.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// ParseDirection normalizes a direction the way host grids send it:
// "asc" in any case is ascending, everything else is descending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(ASC)) {
		return ASC
	}
	return DESC
}

// Order is a single (field, direction) sort request.
type Order struct {
	Field     string
	Direction Direction
}

// Desc reports whether the order is descending.
func (o Order) Desc() bool {
	return o.Direction == DESC
}

// orderList keeps orders in configuration order with at most one entry per field.
type orderList []Order

// set updates the direction of an existing field in place, or appends it.
func (l orderList) set(field string, dir Direction) orderList {
	for i := range l {
		if l[i].Field == field {
			l[i].Direction = dir
			return l
		}
	}
	return append(l, Order{Field: field, Direction: dir})
}

// unshift moves field to the front, inserting it when absent.
func (l orderList) unshift(field string, dir Direction) orderList {
	out := make(orderList, 0, len(l)+1)
	out = append(out, Order{Field: field, Direction: dir})
	for _, o := range l {
		if o.Field != field {
			out = append(out, o)
		}
	}
	return out
}

// first returns the only order that is ever applied.
func (l orderList) first() (Order, bool) {
	if len(l) == 0 {
		return Order{}, false
	}
	return l[0], true
}

// PageWindow selects one contiguous page of a sorted list.
// CurPage is 1-based. A PageSize of 0 means "no limit".
type PageWindow struct {
	CurPage  int
	PageSize int
}

// Start returns the index of the first item of the window. It saturates at
// math.MaxInt for pages too far out to address.
func (w PageWindow) Start() int {
	if w.CurPage <= 1 || w.PageSize <= 0 {
		return 0
	}
	if w.CurPage-1 > math.MaxInt/w.PageSize {
		return math.MaxInt
	}
	return (w.CurPage - 1) * w.PageSize
}

// endBefore returns the end of the window clamped to n items.
func (w PageWindow) endBefore(n int) int {
	start := w.Start()
	if start >= n {
		return n
	}
	if w.Unlimited() || w.PageSize >= n-start {
		return n
	}
	return start + w.PageSize
}

// Unlimited reports whether the window spans the whole list.
func (w PageWindow) Unlimited() bool {
	return w.PageSize <= 0
}
