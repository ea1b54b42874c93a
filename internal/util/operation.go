package util

import (
	"fmt"

	"github.com/go-sif/tabular"
)

// rowError describes an error returned, or a value recovered from a panic, while applying
// an operation of the given kind to row
func rowError(kind string, row tabular.Row, recovered interface{}, err error) error {
	if recovered != nil {
		if anErr, ok := recovered.(error); ok {
			return fmt.Errorf("%s Panic: %w\nRow %d: %s\n%s", kind, anErr, row.Index(), row.ToString(), GetTrace())
		}
		return fmt.Errorf("%s Panic: %v\nRow %d: %s\n%s", kind, recovered, row.Index(), row.ToString(), GetTrace())
	}
	if err != nil {
		return fmt.Errorf("%s Error: %w\nRow %d: %s", kind, err, row.Index(), row.ToString())
	}
	return nil
}

// SafeMapOperation wraps a MapOperation such that panics are recovered and nice error messages are constructed
func SafeMapOperation(mapOp tabular.MapOperation) tabular.MapOperation {
	return func(row tabular.Row) (err error) {
		defer func() { err = rowError("Map", row, recover(), err) }()
		return mapOp(row)
	}
}

// SafeFilterOperation wraps a FilterOperation such that panics are recovered and nice error messages are constructed
func SafeFilterOperation(filterOp tabular.FilterOperation) tabular.FilterOperation {
	return func(row tabular.Row) (shouldKeep bool, err error) {
		defer func() { err = rowError("Filter", row, recover(), err) }()
		return filterOp(row)
	}
}

// SafeKeyingOperation wraps a KeyingOperation such that panics are recovered and nice error messages are constructed
func SafeKeyingOperation(keyingOp tabular.KeyingOperation) tabular.KeyingOperation {
	return func(row tabular.Row) (key []byte, err error) {
		defer func() { err = rowError("Keying", row, recover(), err) }()
		return keyingOp(row)
	}
}

// SafeAccumulate feeds a Row to an Accumulator such that panics are recovered and nice error messages are constructed
func SafeAccumulate(acc tabular.Accumulator, row tabular.Row) (err error) {
	defer func() { err = rowError("Accumulate", row, recover(), err) }()
	return acc.Accumulate(row)
}
