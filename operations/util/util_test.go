package util

import (
	"math"
	"testing"

	"github.com/go-sif/tabular/accumulators"
	"github.com/go-sif/tabular/frame"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	f, err := frame.FromCols(
		frame.StringCol("g", "b", "a", "b", "a", "a"),
		frame.Float64Col("x", 1, 2, 3, math.NaN(), 7),
	)
	require.Nil(t, err)
	mean, err := Agg("x_mean", "mean", "x")
	require.Nil(t, err)
	count, err := Agg("x_count", "count", "x")
	require.Nil(t, err)

	result, err := f.To(Aggregate([]string{"g"}, mean, count, AggSpec{Name: "rows", Factory: accumulators.Counter}))
	require.Nil(t, err)
	require.Equal(t, []string{"g", "x_mean", "x_count", "rows"}, result.ColumnNames())
	g, _ := result.Strings("g")
	require.Equal(t, []string{"a", "b"}, g)
	means, _ := result.Float64s("x_mean")
	require.Equal(t, []float64{4.5, 2}, means)
	counts, _ := result.Float64s("x_count")
	require.Equal(t, []float64{2, 2}, counts)
	rows, _ := result.Float64s("rows")
	require.Equal(t, []float64{3, 2}, rows)

	_, err = Agg("bad", "mode", "x")
	require.NotNil(t, err)
}

func TestAggregateNoGroups(t *testing.T) {
	f, err := frame.FromCols(frame.Float64Col("x", 1, 2, 3))
	require.Nil(t, err)
	sum, err := Agg("total", "sum", "x")
	require.Nil(t, err)
	result, err := f.To(Aggregate(nil, sum))
	require.Nil(t, err)
	require.Equal(t, 1, result.NumRows())
	total, _ := result.Float64s("total")
	require.Equal(t, []float64{6}, total)
}

func TestAccumulateReportsRowErrors(t *testing.T) {
	f, err := frame.FromCols(frame.StringCol("s", "a", "b"))
	require.Nil(t, err)
	_, err = Accumulate(f, nil, accumulators.Adder("s"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Accumulate Error")
}

func TestCollect(t *testing.T) {
	f, err := frame.FromCols(frame.Float64Col("x", 1, 2, 3))
	require.Nil(t, err)
	result, err := f.To(Collect(2))
	require.Nil(t, err)
	require.Equal(t, 2, result.NumRows())
	_, err = f.To(Collect(0))
	require.NotNil(t, err)
}
