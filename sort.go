package searchresult

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// Comparator compares two items. It returns a negative value if a sorts before b,
// zero if they are equal and a positive value otherwise.
type Comparator func(a, b *Item) int

// Reverse returns a comparator with the opposite order.
func Reverse(c Comparator) Comparator {
	return func(a, b *Item) int {
		return c(b, a)
	}
}

// CompareField builds a comparator over the value of field. Items missing the
// field compare like a nil value.
func CompareField(field string) Comparator {
	return func(a, b *Item) int {
		va, _ := a.Get(field)
		vb, _ := b.Get(field)
		return Compare(va, vb)
	}
}

// ComparatorFor returns the comparator for a single order.
func ComparatorFor(o Order) Comparator {
	c := CompareField(o.Field)
	if o.Desc() {
		return Reverse(c)
	}
	return c
}

// SortItems stably sorts items in place by a single order.
func SortItems(items []*Item, o Order) {
	slices.SortStableFunc(items, ComparatorFor(o))
}

// Value classes, in the order they sort.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankOther
)

// Compare is a total order over the scalar values records carry.
//
// Values are ranked by type first: nil (or missing) < bool < number < string <
// anything else. There is no coercion between types, so the string "10" always
// sorts after the number 9. Within a type:
//   - false < true
//   - numbers compare numerically; integers exactly, anything involving a float
//     through float64 (NaN before every other number)
//   - strings compare byte-wise
//   - other values compare by their fmt.Sprint text
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankNil:
		return 0
	case rankBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	case rankNumber:
		return compareNumbers(toNumber(a), toNumber(b))
	case rankString:
		return cmp.Compare(a.(string), b.(string))
	default:
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return rankNumber
	case string:
		return rankString
	default:
		return rankOther
	}
}

// number holds either an exact integer or a float.
type number struct {
	i      int64
	u      uint64
	f      float64
	isInt  bool
	isUint bool
}

func toNumber(v any) number {
	switch n := v.(type) {
	case int:
		return number{i: int64(n), isInt: true}
	case int8:
		return number{i: int64(n), isInt: true}
	case int16:
		return number{i: int64(n), isInt: true}
	case int32:
		return number{i: int64(n), isInt: true}
	case int64:
		return number{i: n, isInt: true}
	case uint:
		return fromUint(uint64(n))
	case uint8:
		return fromUint(uint64(n))
	case uint16:
		return fromUint(uint64(n))
	case uint32:
		return fromUint(uint64(n))
	case uint64:
		return fromUint(n)
	case float32:
		return number{f: float64(n)}
	case float64:
		return number{f: n}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return number{i: i, isInt: true}
		}
		f, err := n.Float64()
		if err != nil {
			return number{f: math.NaN()}
		}
		return number{f: f}
	}
	return number{f: math.NaN()}
}

func fromUint(u uint64) number {
	if u <= math.MaxInt64 {
		return number{i: int64(u), isInt: true}
	}
	return number{u: u, isUint: true}
}

func (n number) float() float64 {
	switch {
	case n.isInt:
		return float64(n.i)
	case n.isUint:
		return float64(n.u)
	default:
		return n.f
	}
}

func compareNumbers(a, b number) int {
	switch {
	case a.isInt && b.isInt:
		return cmp.Compare(a.i, b.i)
	case a.isUint && b.isUint:
		return cmp.Compare(a.u, b.u)
	case a.isUint && b.isInt:
		return 1
	case a.isInt && b.isUint:
		return -1
	}
	return cmp.Compare(a.float(), b.float())
}
