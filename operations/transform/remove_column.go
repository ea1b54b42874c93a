package transform

import "github.com/go-sif/tabular/frame"

// RemoveColumn removes existing columns
func RemoveColumn(oldNames ...string) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		next := f.Copy()
		if err := next.RemoveColumn(oldNames...); err != nil {
			return nil, err
		}
		return next, nil
	}
}

// DropZeroColumns removes the columns whose values are all zero or nil. Useful after one-hot encoding.
func DropZeroColumns() frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		next := f.Copy()
		for _, colName := range f.ColumnNames() {
			vals, err := f.Values(colName)
			if err != nil {
				return nil, err
			}
			allZero := true
			for _, v := range vals {
				if v == nil {
					continue
				}
				switch n := v.(type) {
				case float64:
					allZero = n == 0
				case int64:
					allZero = n == 0
				case bool:
					allZero = !n
				default:
					allZero = false
				}
				if !allZero {
					break
				}
			}
			if allZero {
				if err := next.RemoveColumn(colName); err != nil {
					return nil, err
				}
			}
		}
		return next, nil
	}
}
