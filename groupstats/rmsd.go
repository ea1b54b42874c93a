// Package groupstats computes statistics of a value column across the levels of
// grouping columns: root-mean-square differences between group aggregates, pairwise
// p-values, counts and correlation tables.
package groupstats

import (
	"math"

	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/operations/util"
	"github.com/go-sif/tabular/stats"
)

// RMSDConf configures RMSD
type RMSDConf struct {
	AggFunc     string // The aggregation computed per group, one of the names accepted by accumulators.ByName. Defaults to "median".
	Standardize bool   // Standardize x (sample standard deviation) before aggregating. Defaults to false.
	ToAbs       bool   // Use the absolute value of x. Defaults to false.
}

func (c *RMSDConf) aggFunc() string {
	if c == nil || c.AggFunc == "" {
		return "median"
	}
	return c.AggFunc
}

type groupAgg struct {
	key   interface{}
	count int64
	value float64
}

type pair struct {
	a, b   groupAgg
	weight float64
	diff   float64
}

// RMSDPairs returns the paired Frame behind RMSD: one row for each ordered pair of
// distinct groups, with columns group_x, group_y, count_x, count_y, {agg}_by_group_x,
// {agg}_by_group_y, weight, difference and weighted_squared_difference.
func RMSDPairs(f *frame.Frame, x string, group string, conf *RMSDConf) (*frame.Frame, error) {
	pairs, err := rmsdPairs(f, x, group, conf)
	if err != nil {
		return nil, err
	}
	groupType, err := f.ColumnType(group)
	if err != nil {
		return nil, err
	}
	aggName := conf.aggFunc() + "_by_group"
	n := len(pairs)
	gx, gy := make([]interface{}, n), make([]interface{}, n)
	cx, cy := make([]int64, n), make([]int64, n)
	vx, vy := make([]float64, n), make([]float64, n)
	weights, diffs, wsq := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, p := range pairs {
		gx[i], gy[i] = p.a.key, p.b.key
		cx[i], cy[i] = p.a.count, p.b.count
		vx[i], vy[i] = p.a.value, p.b.value
		weights[i], diffs[i] = p.weight, p.diff
		wsq[i] = p.weight * p.diff * p.diff
	}
	return frame.FromCols(
		frame.Col{Name: "group_x", Type: groupType, Values: gx},
		frame.Col{Name: "group_y", Type: groupType, Values: gy},
		frame.Int64Col("count_x", cx...),
		frame.Int64Col("count_y", cy...),
		frame.Float64Col(aggName+"_x", vx...),
		frame.Float64Col(aggName+"_y", vy...),
		frame.Float64Col("weight", weights...),
		frame.Float64Col("difference", diffs...),
		frame.Float64Col("weighted_squared_difference", wsq...),
	)
}

// RMSD returns the weighted root-mean-square difference of the per-group aggregates of x,
// over all ordered pairs of distinct groups, weighted by the product of the groups'
// counts of non-nil x. Fewer than two groups yield NaN.
func RMSD(f *frame.Frame, x string, group string, conf *RMSDConf) (float64, error) {
	pairs, err := rmsdPairs(f, x, group, conf)
	if err != nil {
		return math.NaN(), err
	}
	var num, den float64
	for _, p := range pairs {
		den += p.weight
		if d := p.weight * p.diff * p.diff; !math.IsNaN(d) {
			num += d
		}
	}
	if len(pairs) == 0 || den == 0 {
		return math.NaN(), nil
	}
	return math.Sqrt(num / den), nil
}

func rmsdPairs(f *frame.Frame, x string, group string, conf *RMSDConf) ([]pair, error) {
	values, err := f.Float64s(x)
	if err != nil {
		return nil, err
	}
	if conf != nil && conf.ToAbs {
		for i, v := range values {
			values[i] = math.Abs(v)
		}
	}
	if conf != nil && conf.Standardize {
		mean, std := stats.Mean(values), stats.Std(values, 1)
		for i, v := range values {
			values[i] = (v - mean) / std
		}
	}
	work, err := f.Select(group)
	if err != nil {
		return nil, err
	}
	if err := work.SetFloat64s(x, values); err != nil {
		return nil, err
	}
	count, err := util.Agg("count", "count", x)
	if err != nil {
		return nil, err
	}
	agg, err := util.Agg("value", conf.aggFunc(), x)
	if err != nil {
		return nil, err
	}
	aggregated, err := work.To(util.Aggregate([]string{group}, count, agg))
	if err != nil {
		return nil, err
	}
	keys, _ := aggregated.Values(group)
	counts, _ := aggregated.Float64s("count")
	aggs, _ := aggregated.Float64s("value")
	groups := make([]groupAgg, len(keys))
	for i := range keys {
		groups[i] = groupAgg{key: keys[i], count: int64(counts[i]), value: aggs[i]}
	}
	pairs := make([]pair, 0, len(groups)*(len(groups)-1))
	for _, a := range groups {
		for _, b := range groups {
			if a.key == b.key {
				continue
			}
			pairs = append(pairs, pair{
				a:      a,
				b:      b,
				weight: float64(a.count * b.count),
				diff:   a.value - b.value,
			})
		}
	}
	return pairs, nil
}
