package query

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"portfolio-cms-be/internal/entity"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState holds at most one active sort key. A zero value means no sort.
type SortState struct {
	Key       string
	Direction Direction
}

func (s SortState) Active() bool {
	return s.Key != ""
}

// ParseSort validates raw sort input. allowed restricts the accepted keys;
// a nil allowed list accepts any key.
func ParseSort(key, direction string, allowed []string) (SortState, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return SortState{}, nil
	}
	if allowed != nil && !slices.Contains(allowed, key) {
		return SortState{}, &ValidationError{Field: "sort key", Value: key, Reason: "not sortable"}
	}

	dir := Direction(strings.ToLower(strings.TrimSpace(direction)))
	switch dir {
	case "":
		dir = Asc
	case Asc, Desc:
	default:
		return SortState{}, &ValidationError{Field: "sort direction", Value: direction, Reason: "expected asc or desc"}
	}
	return SortState{Key: key, Direction: dir}, nil
}

// Compare orders a and b by key. Missing values sort last in both
// directions; values of mismatched types are compared as strings.
func Compare(a, b entity.Record, key string, dir Direction) int {
	va, okA := a.Field(key)
	vb, okB := b.Field(key)
	okA = okA && va != nil
	okB = okB && vb != nil

	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}

	c := compareValues(va, vb)
	if dir == Desc {
		c = -c
	}
	return c
}

// SortStable returns a sorted copy of records. Equal keys keep their input
// order. An inactive sort returns the copy unchanged.
func SortStable[T entity.Record](records []T, s SortState) []T {
	out := slices.Clone(records)
	if !s.Active() {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return Compare(a, b, s.Key, s.Direction)
	})
	return out
}

func compareValues(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return compareStrings(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return compareBools(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return compareOrdered(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			return compareOrdered(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return compareOrdered(x, y)
		}
	}
	return compareStrings(fmt.Sprint(a), fmt.Sprint(b))
}

func compareStrings(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

func compareOrdered[N int | int64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
