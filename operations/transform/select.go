package transform

import (
	"github.com/go-sif/tabular/frame"
	iutil "github.com/go-sif/tabular/internal/util"
)

// Select retains only the given columns, in the given order
func Select(colNames ...string) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		return f.Select(colNames...)
	}
}

// ColToFront moves the given columns to the front of a Frame, keeping the order of the others
func ColToFront(colNames ...string) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		order := append(append([]string(nil), colNames...), iutil.Without(f.ColumnNames(), colNames...)...)
		return f.Select(order...)
	}
}
