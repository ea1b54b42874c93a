package transform

import "github.com/go-sif/tabular/frame"

// RenameColumn renames an existing column
func RenameColumn(oldName string, newName string) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		next := f.Copy()
		if err := next.RenameColumn(oldName, newName); err != nil {
			return nil, err
		}
		return next, nil
	}
}
