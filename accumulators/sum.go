package accumulators

import (
	"fmt"

	"github.com/go-sif/tabular"
)

// Adder returns a factory for Sum Accumulators over a numeric column. Nil values are skipped.
func Adder(colName string) tabular.AccumulatorFactory {
	return func() tabular.Accumulator {
		return &Sum{colName: colName}
	}
}

// Sum Sums records
type Sum struct {
	colName string
	sum     float64
}

// GetSum returns the row Sum from this Accumulator
func (a *Sum) GetSum() float64 {
	return a.sum
}

// Accumulate adds a row to this Accumulator
func (a *Sum) Accumulate(row tabular.Row) error {
	v, ok, err := numericValue(row, a.colName)
	if err != nil || !ok {
		return err
	}
	a.sum += v
	return nil
}

// Merge merges another Accumulator into this one
func (a *Sum) Merge(o tabular.Accumulator) error {
	ca, ok := o.(*Sum)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Sum Accumulator")
	}
	a.sum += ca.sum
	return nil
}

// Result returns the sum as a float64
func (a *Sum) Result() interface{} {
	return a.sum
}

// ResultType returns Float64ColumnType
func (a *Sum) ResultType() tabular.ColumnType {
	return &tabular.Float64ColumnType{}
}

// numericValue reads a numeric column from a row. ok is false if the value is nil.
func numericValue(row tabular.Row, colName string) (v float64, ok bool, err error) {
	if _, err = row.Get(colName); err != nil {
		return 0, false, err
	}
	if row.IsNil(colName) {
		return 0, false, nil
	}
	v, err = row.GetFloat64(colName)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}
