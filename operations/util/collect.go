package util

import (
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
)

// Collect declares that at most collectionLimit rows should be retained from the
// previous result. A negative limit retains every row.
func Collect(collectionLimit int) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		if collectionLimit == 0 {
			return nil, errors.InvalidArgumentError{Arg: "collectionLimit", Reason: "must be non-zero"}
		}
		return f.Head(collectionLimit), nil
	}
}
