package groupstats

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	iutil "github.com/go-sif/tabular/internal/util"
	"github.com/go-sif/tabular/operations/util"
)

// QAggConf configures QAgg
type QAggConf struct {
	Columns []string // The columns to aggregate. Defaults to all numeric columns outside groupBy.
	Aggs    []string // The aggregations, by accumulators.ByName name. Defaults to mean and std.
}

// QAgg aggregates several columns at once, producing one {col}_{agg} column per column and
// aggregation after the groupBy columns
func QAgg(f *frame.Frame, groupBy []string, conf *QAggConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &QAggConf{}
	}
	aggs := conf.Aggs
	if len(aggs) == 0 {
		aggs = []string{"mean", "std"}
	}
	cols := conf.Columns
	if len(cols) == 0 {
		cols = iutil.Without(f.Schema().NumericColumnNames(), groupBy...)
	}
	specs := make([]util.AggSpec, 0, len(cols)*len(aggs))
	for _, col := range cols {
		for _, agg := range aggs {
			spec, err := util.Agg(col+"_"+agg, agg, col)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
	}
	return f.To(util.Aggregate(groupBy, specs...))
}

// RankConf configures Rank
type RankConf struct {
	GroupBy    []string        // Rank separately within each group. Defaults to a single group.
	Descending bool            // Give rank 1 to the largest value. Defaults to the smallest.
	SortBy     []frame.SortKey // Break ties by these keys. Defaults to row order.
}

// Rank returns the 1-based rank of each row by rankBy within its group, aligned to the rows
// of f. Rows with a missing rankBy value or group key receive rank 0.
func Rank(f *frame.Frame, rankBy string, conf *RankConf) ([]int64, error) {
	if conf == nil {
		conf = &RankConf{}
	}
	keys := []frame.SortKey{{Column: rankBy, Descending: conf.Descending}}
	for _, g := range conf.GroupBy {
		keys = append(keys, frame.Asc(g))
	}
	keys = append(keys, conf.SortBy...)
	positions, err := f.SortPositions(keys...)
	if err != nil {
		return nil, err
	}
	grouping, err := f.GroupBy(conf.GroupBy...)
	if err != nil {
		return nil, err
	}
	assignment := grouping.Assignment()
	next := make([]int64, grouping.NumGroups())
	ranks := make([]int64, f.NumRows())
	for _, pos := range positions {
		g := assignment[pos]
		if g < 0 || f.IsNil(rankBy, pos) {
			continue
		}
		next[g]++
		ranks[pos] = next[g]
	}
	return ranks, nil
}

// WithRank adds the result of Rank as an Int64 column
func WithRank(colName string, rankBy string, conf *RankConf) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		ranks, err := Rank(f, rankBy, conf)
		if err != nil {
			return nil, err
		}
		result := f.Copy()
		if err := result.SetColumn(colName, &tabular.Int64ColumnType{}, frame.Int64Col(colName, ranks...).Values); err != nil {
			return nil, err
		}
		return result, nil
	}
}
