package frame

import (
	"sort"
	"strings"
	"time"

	"github.com/go-sif/tabular"
)

// SortKey names a column to sort by, and the direction of the sort
type SortKey struct {
	Column     string
	Descending bool
}

// Asc sorts by a column in ascending order
func Asc(colName string) SortKey {
	return SortKey{Column: colName}
}

// Desc sorts by a column in descending order
func Desc(colName string) SortKey {
	return SortKey{Column: colName, Descending: true}
}

// CompareValues compares two non-nil values of the same ColumnType, returning -1, 0 or 1.
// Categories compare by level order, strings lexically, and numbers numerically.
func CompareValues(colType tabular.ColumnType, a, b interface{}) int {
	if ct, ok := colType.(*tabular.CategoryColumnType); ok && len(ct.Levels) > 0 {
		return compareInts(ct.LevelIndex(a.(string)), ct.LevelIndex(b.(string)))
	}
	switch av := a.(type) {
	case string:
		return strings.Compare(av, b.(string))
	case bool:
		bv := b.(bool)
		if av == bv {
			return 0
		} else if !av {
			return -1
		}
		return 1
	case time.Time:
		bv := b.(time.Time)
		if av.Before(bv) {
			return -1
		} else if av.After(bv) {
			return 1
		}
		return 0
	case int64:
		if bv, ok := b.(int64); ok {
			if av < bv {
				return -1
			} else if av > bv {
				return 1
			}
			return 0
		}
	}
	af, _ := toFloat64(a)
	bf, _ := toFloat64(b)
	if af < bf {
		return -1
	} else if af > bf {
		return 1
	}
	return 0
}

func compareInts(a, b int) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// SortPositions returns the row positions of this Frame in sorted order. The sort
// is stable, and nil values sort last regardless of direction.
func (f *Frame) SortPositions(keys ...SortKey) ([]int, error) {
	types := make([]tabular.ColumnType, len(keys))
	for i, k := range keys {
		t, err := f.ColumnType(k.Column)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	positions := defaultIndex(f.NumRows())
	sort.SliceStable(positions, func(i, j int) bool {
		for k, key := range keys {
			vals := f.data[key.Column]
			a, b := vals[positions[i]], vals[positions[j]]
			if a == nil && b == nil {
				continue
			} else if a == nil {
				return false
			} else if b == nil {
				return true
			}
			c := CompareValues(types[k], a, b)
			if c == 0 {
				continue
			}
			if key.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return positions, nil
}

// SortBy returns a new Frame sorted by the given keys, retaining row labels
func (f *Frame) SortBy(keys ...SortKey) (*Frame, error) {
	positions, err := f.SortPositions(keys...)
	if err != nil {
		return nil, err
	}
	return f.Take(positions), nil
}

// SortByIndex returns a new Frame sorted by row label
func (f *Frame) SortByIndex() *Frame {
	positions := defaultIndex(f.NumRows())
	sort.SliceStable(positions, func(i, j int) bool {
		return f.index[positions[i]] < f.index[positions[j]]
	})
	return f.Take(positions)
}
