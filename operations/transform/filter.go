package transform

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
)

// Filter retains the Rows of a Frame for which fn returns true, creating a new Frame
func Filter(fn tabular.FilterOperation) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		return f.Filter(fn)
	}
}
