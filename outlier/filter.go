package outlier

import (
	"math"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/stats"
)

// ChangeSpan flags the values of a sorted numeric column which lie within steps positions of
// a change point, i.e. where the value steps positions ahead differs from the value steps
// positions behind. Positions beyond either end take the nearest value inside the column.
func ChangeSpan(f *frame.Frame, colName string, steps int) ([]bool, error) {
	values, err := f.Float64s(colName)
	if err != nil {
		return nil, err
	}
	ahead := stats.FFill(stats.Shift(values, -steps))
	behind := stats.BFill(stats.Shift(values, steps))
	flags := make([]bool, len(values))
	for i := range flags {
		flags[i] = ahead[i] != behind[i]
	}
	return flags, nil
}

// PrecisionFilter keeps the rows of f whose value in colName has no significant digit beyond
// the given number of decimals, i.e. lies within half a unit of the next decimal of its
// rounded value. Rows with a missing value are dropped.
func PrecisionFilter(f *frame.Frame, colName string, precision int) (*frame.Frame, error) {
	if _, err := f.ColumnType(colName); err != nil {
		return nil, err
	}
	tolerance := 1 / (2 * math.Pow(10, float64(precision+1)))
	return f.Filter(func(row tabular.Row) (bool, error) {
		if row.IsNil(colName) {
			return false, nil
		}
		v, err := row.GetFloat64(colName)
		if err != nil {
			return false, err
		}
		return math.Abs(v-stats.Round(v, precision)) < tolerance, nil
	})
}

// GroupedInterpolate returns a copy of f in which missing values of colName are linearly
// interpolated within each group. Rows with a missing group key are left unchanged.
func GroupedInterpolate(f *frame.Frame, colName string, groupBy ...string) (*frame.Frame, error) {
	result := f.Copy()
	values, err := result.Float64s(colName)
	if err != nil {
		return nil, err
	}
	grouping, err := result.GroupBy(groupBy...)
	if err != nil {
		return nil, err
	}
	for _, group := range grouping.Groups() {
		sub := make([]float64, len(group.Rows))
		for i, pos := range group.Rows {
			sub[i] = values[pos]
		}
		for i, v := range stats.Interpolate(sub) {
			values[group.Rows[i]] = v
		}
	}
	if err := result.SetFloat64s(colName, values); err != nil {
		return nil, err
	}
	return result, nil
}
