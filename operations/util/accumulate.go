package util

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/accumulators"
	"github.com/go-sif/tabular/frame"
	iutil "github.com/go-sif/tabular/internal/util"
	"github.com/hashicorp/go-multierror"
)

// AggSpec names an output column, and the Accumulator which computes its value for each group
type AggSpec struct {
	Name    string
	Factory tabular.AccumulatorFactory
}

// Agg builds an AggSpec for a named aggregation (see accumulators.ByName) over a column
func Agg(outName string, aggName string, colName string) (AggSpec, error) {
	factory, err := accumulators.ByName(aggName, colName)
	if err != nil {
		return AggSpec{}, err
	}
	return AggSpec{Name: outName, Factory: factory}, nil
}

// Accumulate feeds the rows at the given positions of a Frame (all rows if positions is nil)
// into a fresh Accumulator. Row errors are collected and returned together.
func Accumulate(f *frame.Frame, positions []int, facc tabular.AccumulatorFactory) (tabular.Accumulator, error) {
	acc := facc()
	var multierr *multierror.Error
	if positions == nil {
		for i := 0; i < f.NumRows(); i++ {
			if err := iutil.SafeAccumulate(acc, f.Row(i)); err != nil {
				multierr = multierror.Append(multierr, err)
			}
		}
	} else {
		for _, pos := range positions {
			if err := iutil.SafeAccumulate(acc, f.Row(pos)); err != nil {
				multierr = multierror.Append(multierr, err)
			}
		}
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return acc, nil
}

// Aggregate groups a Frame by the given columns and reduces each group through Accumulators,
// producing a Frame with one row per group: the grouping columns followed by one column per AggSpec.
func Aggregate(groupBy []string, specs ...AggSpec) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		grouping, err := f.GroupBy(groupBy...)
		if err != nil {
			return nil, err
		}
		result, err := grouping.KeyFrame()
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			var colType tabular.ColumnType
			vals := make([]interface{}, grouping.NumGroups())
			for i, group := range grouping.Groups() {
				acc, err := Accumulate(f, group.Rows, spec.Factory)
				if err != nil {
					return nil, err
				}
				colType = acc.ResultType()
				vals[i] = acc.Result()
			}
			if colType == nil {
				colType = spec.Factory().ResultType()
			}
			if err := result.AddColumn(spec.Name, colType, vals); err != nil {
				return nil, err
			}
		}
		return result, nil
	}
}
