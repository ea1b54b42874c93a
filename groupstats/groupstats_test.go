package groupstats

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-sif/tabular"
	terrors "github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mustFrame(t *testing.T, cols ...frame.Col) *frame.Frame {
	f, err := frame.FromCols(cols...)
	require.Nil(t, err)
	return f
}

func TestRMSD(t *testing.T) {
	f := mustFrame(t,
		frame.Float64Col("x", 1, 1, 1, 3, 3),
		frame.StringCol("g", "a", "a", "a", "b", "b"),
		frame.StringCol("one", "c", "c", "c", "c", "c"),
		frame.Float64Col("same", 1, 1, 1, 1, 1),
	)
	r, err := RMSD(f, "x", "g", nil)
	require.Nil(t, err)
	require.InDelta(t, 2.0, r, 1e-12)

	r, err = RMSD(f, "x", "one", nil)
	require.Nil(t, err)
	require.True(t, math.IsNaN(r))

	r, err = RMSD(f, "same", "g", &RMSDConf{AggFunc: "mean"})
	require.Nil(t, err)
	require.Equal(t, 0.0, r)

	_, err = RMSD(f, "missing", "g", nil)
	require.NotNil(t, err)
}

func TestRMSDPairs(t *testing.T) {
	f := mustFrame(t,
		frame.Float64Col("x", 1, 1, 1, 3, 3),
		frame.StringCol("g", "a", "a", "a", "b", "b"),
	)
	pairs, err := RMSDPairs(f, "x", "g", nil)
	require.Nil(t, err)
	require.Equal(t, 2, pairs.NumRows())
	require.Equal(t, []string{"group_x", "group_y", "count_x", "count_y", "median_by_group_x", "median_by_group_y",
		"weight", "difference", "weighted_squared_difference"}, pairs.ColumnNames())
	diffs, _ := pairs.Float64s("difference")
	require.Equal(t, []float64{-2, 2}, diffs)
	weights, _ := pairs.Float64s("weight")
	require.Equal(t, []float64{6, 6}, weights)
}

func rmsdFrame(t *testing.T) *frame.Frame {
	return mustFrame(t,
		frame.Float64Col("x", 1, 1, 1, 3, 3, 3),
		frame.StringCol("g1", "a", "a", "b", "a", "b", "b"),
		frame.StringCol("g2", "c", "c", "c", "c", "c", "c"),
		frame.StringCol("h", "p", "q", "p", "q", "p", "q"),
	)
}

func TestDfRMSD(t *testing.T) {
	f := mustFrame(t,
		frame.Float64Col("x", 1, 1, 1, 3, 3, 3),
		frame.StringCol("g1", "a", "a", "a", "b", "b", "b"),
		frame.StringCol("g2", "c", "c", "c", "c", "c", "c"),
	)
	for _, parallelism := range []int{1, 4} {
		res, err := DfRMSD(context.Background(), f, []string{"x"}, &DfRMSDConf{Parallelism: parallelism})
		require.Nil(t, err)
		require.Equal(t, []string{"x", "group", "rmsd", "maxperc", "maxlevel", "maxcount", "count"}, res.ColumnNames())
		groups, _ := res.Strings("group")
		require.Equal(t, []string{"g1", "g2"}, groups)
		rmsds, _ := res.Float64s("rmsd")
		require.InDelta(t, 2.0, rmsds[0], 1e-12)
		require.True(t, math.IsNaN(rmsds[1]))
		levels, _ := res.Values("maxlevel")
		require.Equal(t, []interface{}{"a", "c"}, levels)
		percs, _ := res.Float64s("maxperc")
		require.Equal(t, []float64{0.5, 1}, percs)
		counts, _ := res.Values("count")
		require.Equal(t, []interface{}{int64(6), int64(6)}, counts)
	}
}

func TestDfRMSDHue(t *testing.T) {
	f := rmsdFrame(t)
	res, err := DfRMSD(context.Background(), f, []string{"x"}, &DfRMSDConf{Groups: []string{"g1"}, Hue: "h", Parallelism: 2})
	require.Nil(t, err)
	require.Equal(t, []string{"x", "group", "h", "rmsd", "maxperc", "maxlevel", "maxcount", "count"}, res.ColumnNames())
	hues, _ := res.Strings("h")
	require.Equal(t, []string{"p", "q"}, hues)
	rmsds, _ := res.Float64s("rmsd")
	require.InDelta(t, 1.0, rmsds[0], 1e-12)
	require.InDelta(t, 1.0, rmsds[1], 1e-12)

	res, err = DfRMSD(context.Background(), f, []string{"x"}, &DfRMSDConf{Hue: "h", HueOrder: []string{"q"}, SkipRMSD: true})
	require.Nil(t, err)
	hues, _ = res.Strings("h")
	require.Equal(t, []string{"q", "q", "p", "p"}, hues)
	rmsds, _ = res.Float64s("rmsd")
	for _, r := range rmsds {
		require.True(t, math.IsNaN(r))
	}
}

func TestDfRMSDCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DfRMSD(ctx, rmsdFrame(t), []string{"x"}, nil)
	require.NotNil(t, err)
}

func pFrame(t *testing.T) *frame.Frame {
	return mustFrame(t,
		frame.Float64Col("x", 1, 2, 3, 4, 5, 11, 12, 13, 14, 15),
		frame.StringCol("g", "a", "a", "a", "a", "a", "b", "b", "b", "b", "b"),
	)
}

func TestDfP(t *testing.T) {
	res, err := DfP(pFrame(t), "x", "g", nil)
	require.Nil(t, err)
	require.Equal(t, []string{"g", "g_2", "p"}, res.ColumnNames())
	require.Equal(t, 2, res.NumRows())
	ps, _ := res.Float64s("p")
	require.Less(t, ps[0], 0.001)
	require.Equal(t, ps[0], ps[1])

	res, err = DfP(pFrame(t), "x", "g", &DfPConf{AggFunc: "median", Agg: true})
	require.Nil(t, err)
	require.Equal(t, []string{"g", "p"}, res.ColumnNames())
	ps, _ = res.Float64s("p")
	require.InDelta(t, 0.011412, ps[0], 1e-5)

	_, err = DfP(pFrame(t), "x", "g", &DfPConf{AggFunc: "mode"})
	require.NotNil(t, err)
}

func TestDfPFailedTestIsNil(t *testing.T) {
	f := mustFrame(t,
		frame.Float64Col("x", 1, 2),
		frame.StringCol("g", "a", "b"),
	)
	res, err := DfP(f, "x", "g", nil)
	require.Nil(t, err)
	require.True(t, res.IsNil("p", 0))
	require.True(t, res.IsNil("p", 1))
}

func TestDfPHue(t *testing.T) {
	f := mustFrame(t,
		frame.Float64Col("x", 1, 2, 3, 4, 11, 12, 13, 14),
		frame.StringCol("g", "a", "a", "a", "a", "b", "b", "b", "b"),
		frame.StringCol("h", "u", "v", "u", "v", "u", "v", "u", "v"),
	)
	res, err := DfP(f, "x", "g", &DfPConf{Hue: "h"})
	require.Nil(t, err)
	require.Equal(t, []string{"g", "g_2", "h", "h_2", "p"}, res.ColumnNames())
	require.Equal(t, 12, res.NumRows())
	g, _ := res.Strings("g")
	h, _ := res.Strings("h")
	h2, _ := res.Strings("h_2")
	require.Equal(t, "a", g[0])
	require.Equal(t, "u", h[0])
	require.Equal(t, "v", h2[0])
}

func TestDfAgg(t *testing.T) {
	f := mustFrame(t,
		frame.Float64Col("x", 1, 2, 3, 10, 20, 30),
		frame.StringCol("g", "a", "a", "a", "b", "b", "b"),
	)
	res, err := DfAgg(f, "x", "g", nil)
	require.Nil(t, err)
	require.Equal(t, []string{"g", "count", "mean", "median", "std", "p"}, res.ColumnNames())
	g, _ := res.Strings("g")
	require.Equal(t, []string{"a", "b"}, g)
	counts, _ := res.Values("count")
	require.Equal(t, []interface{}{int64(3), int64(3)}, counts)
	means, _ := res.Float64s("mean")
	require.Equal(t, []float64{2, 20}, means)
	stds, _ := res.Float64s("std")
	require.InDelta(t, 1.0, stds[0], 1e-12)
	require.InDelta(t, 10.0, stds[1], 1e-12)
	ps, _ := res.Float64s("p")
	require.False(t, math.IsNaN(ps[0]))
	require.Equal(t, ps[0], ps[1])

	res, err = DfAgg(f, "x", "g", &DfAggConf{Aggs: []string{"max"}, SkipP: true})
	require.Nil(t, err)
	require.Equal(t, []string{"g", "count", "max"}, res.ColumnNames())
}

func TestDfCount(t *testing.T) {
	f := mustFrame(t, frame.Col{
		Name:   "x",
		Type:   &tabular.VarStringColumnType{},
		Values: []interface{}{"a", "b", "b", "c", "c", "c", nil},
	})
	res, err := DfCount(f, "x", nil)
	require.Nil(t, err)
	require.Equal(t, []string{"x", "count", "count_x", "count_total", "perc_x", "perc_total"}, res.ColumnNames())
	xs, _ := res.Strings("x")
	require.Equal(t, []string{"c", "b", "a"}, xs)
	totals, _ := res.Values("count_total")
	require.Equal(t, []interface{}{int64(6), int64(6), int64(6)}, totals)
	percs, _ := res.Float64s("perc_total")
	require.Equal(t, []float64{50, 33.33, 16.67}, percs)

	res, err = DfCount(f, "x", &DfCountConf{TopN: 1, KeepNil: true})
	require.Nil(t, err)
	xs, _ = res.Strings("x")
	require.Equal(t, []string{"other", "c"}, xs)
}

func TestDfCountHue(t *testing.T) {
	f := mustFrame(t,
		frame.StringCol("x", "a", "a", "b", "b", "a", "c"),
		frame.StringCol("h", "u", "v", "u", "u", "u", "v"),
	)
	res, err := DfCount(f, "x", &DfCountConf{Hue: "h"})
	require.Nil(t, err)
	require.Equal(t, []string{"x", "h", "count", "count_x", "count_h", "perc_x", "perc_h"}, res.ColumnNames())
	xs, _ := res.Strings("x")
	percs, _ := res.Float64s("perc_x")
	sums := make(map[string]float64)
	for i, x := range xs {
		sums[x] += percs[i]
	}
	for x, sum := range sums {
		require.InDelta(t, 100, sum, 0.05, x)
	}
}

func TestDfCountXIntKeepNil(t *testing.T) {
	f := mustFrame(t, frame.Float64Col("x", 0.9, math.NaN(), 3.2))
	_, err := DfCount(f, "x", &DfCountConf{XInt: 1, KeepNil: true})
	var ia terrors.InvalidArgumentError
	require.True(t, errors.As(err, &ia))
	require.Equal(t, "KeepNil", ia.Arg)
}

func TestDfCountXInt(t *testing.T) {
	f := mustFrame(t, frame.Float64Col("x", 0.9, 1.1, 3.2))
	res, err := DfCount(f, "x", &DfCountConf{XInt: 1, KeepOrder: true})
	require.Nil(t, err)
	xs, _ := res.Float64s("x")
	require.Equal(t, []float64{1, 2, 3}, xs)
	counts, _ := res.Values("count")
	require.Equal(t, []interface{}{int64(2), int64(0), int64(1)}, counts)
	require.True(t, res.IsNil("perc_x", 1))
	percs, _ := res.Float64s("perc_total")
	require.Equal(t, []float64{66.67, 0, 33.33}, percs)
}

func TestQAgg(t *testing.T) {
	f := mustFrame(t,
		frame.StringCol("g", "a", "a", "b"),
		frame.Float64Col("v", 1, 3, 5),
	)
	res, err := QAgg(f, []string{"g"}, nil)
	require.Nil(t, err)
	require.Equal(t, []string{"g", "v_mean", "v_std"}, res.ColumnNames())
	means, _ := res.Float64s("v_mean")
	require.Equal(t, []float64{2, 5}, means)
}

func TestRank(t *testing.T) {
	f := mustFrame(t,
		frame.Float64Col("v", 3, 1, 2, math.NaN()),
		frame.StringCol("g", "a", "a", "b", "b"),
	)
	ranks, err := Rank(f, "v", nil)
	require.Nil(t, err)
	require.Equal(t, []int64{3, 1, 2, 0}, ranks)

	ranks, err = Rank(f, "v", &RankConf{Descending: true})
	require.Nil(t, err)
	require.Equal(t, []int64{1, 3, 2, 0}, ranks)

	ranks, err = Rank(f, "v", &RankConf{GroupBy: []string{"g"}})
	require.Nil(t, err)
	require.Equal(t, []int64{2, 1, 1, 0}, ranks)

	res, err := f.To(WithRank("rank", "v", nil))
	require.Nil(t, err)
	vals, _ := res.Values("rank")
	require.Equal(t, []interface{}{int64(3), int64(1), int64(2), int64(0)}, vals)
}

func TestRankMissingValues(t *testing.T) {
	f := mustFrame(t, frame.Float64Col("v", math.NaN(), math.NaN(), math.NaN()))
	ranks, err := Rank(f, "v", nil)
	require.Nil(t, err)
	require.Equal(t, []int64{0, 0, 0}, ranks)
}

func TestCorr(t *testing.T) {
	f := mustFrame(t,
		frame.Float64Col("a", 1, 2, 3, 4),
		frame.Float64Col("b", 2, 4, 6, 8),
		frame.Float64Col("c", 1, 3, 2, 4),
		frame.StringCol("s", "w", "x", "y", "z"),
	)
	res, err := Corr(f, nil)
	require.Nil(t, err)
	require.Equal(t, []string{"col_0", "col_1", "corr", "corr_abs"}, res.ColumnNames())
	require.Equal(t, 3, res.NumRows())
	c0, _ := res.Strings("col_0")
	c1, _ := res.Strings("col_1")
	require.Equal(t, "b", c0[0])
	require.Equal(t, "a", c1[0])

	res, err = Corr(f, &CorrConf{Target: "a"})
	require.Nil(t, err)
	require.Equal(t, 2, res.NumRows())
	c0, _ = res.Strings("col_0")
	c1, _ = res.Strings("col_1")
	require.Equal(t, []string{"a", "a"}, c0)
	require.Equal(t, []string{"b", "c"}, c1)
	corrs, _ := res.Float64s("corr")
	require.InDelta(t, 1.0, corrs[0], 1e-12)
	require.InDelta(t, 0.8, corrs[1], 1e-12)

	_, err = Corr(f, &CorrConf{Target: "missing"})
	require.NotNil(t, err)
}

func TestCorrGrouped(t *testing.T) {
	f := mustFrame(t,
		frame.StringCol("g", "x", "x", "x", "y", "y", "y"),
		frame.Float64Col("a", 1, 2, 3, 1, 2, 3),
		frame.Float64Col("b", 1, 2, 3, 1, 3, 2),
	)
	res, err := Corr(f, &CorrConf{GroupBy: []string{"g"}})
	require.Nil(t, err)
	require.Equal(t, []string{"g", "col_0", "col_1", "corr", "corr_abs"}, res.ColumnNames())
	g, _ := res.Strings("g")
	require.Equal(t, []string{"x", "y"}, g)
	corrs, _ := res.Float64s("corr")
	require.InDelta(t, 1.0, corrs[0], 1e-12)
	require.InDelta(t, 0.5, corrs[1], 1e-12)
}

func TestCorrMatrix(t *testing.T) {
	f := mustFrame(t,
		frame.Float64Col("a", 1, 2, 3, 4),
		frame.Float64Col("b", 4, 3, 2, 1),
	)
	res, err := CorrMatrix(f)
	require.Nil(t, err)
	require.Equal(t, []string{"col", "a", "b"}, res.ColumnNames())
	b, _ := res.Float64s("b")
	require.InDelta(t, -1.0, b[0], 1e-12)
	require.InDelta(t, 1.0, b[1], 1e-12)
}
