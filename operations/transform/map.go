package transform

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
)

// Map transforms each Row of a copy of a Frame in-place
func Map(fn tabular.MapOperation) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		next := f.Copy()
		if err := next.MapRows(fn); err != nil {
			return nil, err
		}
		return next, nil
	}
}
