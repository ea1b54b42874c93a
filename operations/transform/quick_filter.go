package transform

import (
	"sort"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
)

// QuickFilterConf configures QuickFilter
type QuickFilterConf struct {
	KeepUnusedCategories bool // KeepUnusedCategories retains category levels which no longer occur after filtering. Defaults to false.
	ResetIndex           bool // ResetIndex relabels the filtered rows as 0..n-1. Defaults to false.
}

// QuickFilter retains the rows whose values equal the given values for every column
// named in conditions. Conditions on columns missing from the Frame are ignored, and
// nil values never match.
func QuickFilter(conditions map[string]interface{}, conf *QuickFilterConf) frame.Operation {
	if conf == nil {
		conf = &QuickFilterConf{}
	}
	return func(f *frame.Frame) (*frame.Frame, error) {
		cols := make([]string, 0, len(conditions))
		for colName := range conditions {
			if f.HasColumn(colName) {
				cols = append(cols, colName)
			}
		}
		sort.Strings(cols)
		next, err := f.Filter(func(row tabular.Row) (bool, error) {
			for _, colName := range cols {
				v, err := row.Get(colName)
				if err != nil {
					return false, err
				}
				if !valuesEqual(v, conditions[colName]) {
					return false, nil
				}
			}
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		if !conf.KeepUnusedCategories {
			if err := next.RemoveUnusedCategories(); err != nil {
				return nil, err
			}
		}
		if conf.ResetIndex {
			next.ResetIndex()
		}
		return next, nil
	}
}

func valuesEqual(v interface{}, want interface{}) bool {
	if v == nil || want == nil {
		return false
	}
	if fv, ok := asFloat(v); ok {
		fw, ok := asFloat(want)
		return ok && fv == fw
	}
	return v == want
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
