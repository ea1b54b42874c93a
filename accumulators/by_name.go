package accumulators

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
)

// ByName returns a factory for the named aggregation over a column. Supported names are
// size, count, sum, mean, median, std, var, min and max. size counts rows, while count
// only counts non-nil values.
func ByName(name string, colName string) (tabular.AccumulatorFactory, error) {
	switch name {
	case "size":
		return Counter, nil
	case "count":
		return NonNilCounter(colName), nil
	case "sum":
		return Adder(colName), nil
	case "mean":
		return Averager(colName), nil
	case "median":
		return Medianer(colName), nil
	case "std":
		return StdDever(colName), nil
	case "var":
		return Variancer(colName), nil
	case "min":
		return Minimizer(colName), nil
	case "max":
		return Maximizer(colName), nil
	}
	return nil, errors.InvalidArgumentError{Arg: "agg", Reason: "unknown aggregation " + name}
}
