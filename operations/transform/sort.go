package transform

import "github.com/go-sif/tabular/frame"

// SortBy sorts the rows of a Frame by the given keys, retaining row labels
func SortBy(keys ...frame.SortKey) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		return f.SortBy(keys...)
	}
}

// ResetIndex relabels the rows of a Frame as 0..n-1
func ResetIndex() frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		next := f.Copy()
		next.ResetIndex()
		return next, nil
	}
}
