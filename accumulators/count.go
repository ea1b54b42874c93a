package accumulators

import (
	"fmt"

	"github.com/go-sif/tabular"
)

// Counter returns a new Count Accumulator, which counts rows
func Counter() tabular.Accumulator {
	return new(Count)
}

// NonNilCounter returns a factory for Count Accumulators which only count rows where a column is not nil
func NonNilCounter(colName string) tabular.AccumulatorFactory {
	return func() tabular.Accumulator {
		return &Count{colName: colName}
	}
}

// Count counts records
type Count struct {
	colName string
	count   int64
}

// GetCount returns the row count from this Accumulator
func (a *Count) GetCount() int64 {
	return a.count
}

// Accumulate adds a row to this Accumulator
func (a *Count) Accumulate(row tabular.Row) error {
	if len(a.colName) > 0 {
		if _, err := row.Get(a.colName); err != nil {
			return err
		}
		if row.IsNil(a.colName) {
			return nil
		}
	}
	a.count++
	return nil
}

// Merge merges another Accumulator into this one
func (a *Count) Merge(o tabular.Accumulator) error {
	ca, ok := o.(*Count)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Count Accumulator")
	}
	a.count += ca.count
	return nil
}

// Result returns the count as an int64
func (a *Count) Result() interface{} {
	return a.count
}

// ResultType returns Int64ColumnType
func (a *Count) ResultType() tabular.ColumnType {
	return &tabular.Int64ColumnType{}
}
