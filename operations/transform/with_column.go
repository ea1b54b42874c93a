package transform

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
)

// AddColumn declares that a new (empty) column with a
// specific type and name should be available to the
// next Operation of the pipeline
func AddColumn(colName string, colType tabular.ColumnType) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		next := f.Copy()
		if err := next.AddColumn(colName, colType, make([]interface{}, next.NumRows())); err != nil {
			return nil, err
		}
		return next, nil
	}
}

// WithColumn adds (or replaces) a column whose values are computed from each Row by fn
func WithColumn(colName string, colType tabular.ColumnType, fn func(row tabular.Row) (interface{}, error)) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		vals := make([]interface{}, f.NumRows())
		err := f.Copy().MapRows(func(row tabular.Row) error {
			v, err := fn(row)
			if err != nil {
				return err
			}
			vals[row.Position()] = v
			return nil
		})
		if err != nil {
			return nil, err
		}
		next := f.Copy()
		if err := next.SetColumn(colName, colType, vals); err != nil {
			return nil, err
		}
		return next, nil
	}
}
