package groupstats

import (
	"log/slog"
	"strings"

	"github.com/go-sif/tabular/bucket"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/operations/util"
)

// DfAggConf configures DfAgg
type DfAggConf struct {
	Hue         string       // Further split the levels of group by this column. Defaults to no hue.
	Aggs        []string     // The aggregations of x, by accumulators.ByName name. Defaults to mean, median and std.
	NQuantiles  int          // Numeric group and hue columns are split into this many quantiles. Defaults to 10.
	NilToMedian bool         // Passed to QuantileSplit. Defaults to false.
	SkipP       bool         // Omit the averaged p-values. Defaults to false.
	PTest       string       // The test used for p-values, see DfPConf.AggFunc. Defaults to "mean".
	SortByCount bool         // Sort by descending count. Defaults to level order.
	Logger      *slog.Logger // Passed to DfP
}

// DfAgg aggregates x per level of group (and hue), returning a Frame with the group (and
// hue) column, the row count of each level, one column per aggregation and, unless SkipP,
// the mean p-value of the level against all other levels (see DfP).
func DfAgg(f *frame.Frame, x string, group string, conf *DfAggConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &DfAggConf{}
	}
	aggs := conf.Aggs
	if len(aggs) == 0 {
		aggs = []string{"mean", "median", "std"}
	}
	gh, err := bucket.GroupHue(f, group, &bucket.GroupHueConf{
		Hue:         conf.Hue,
		X:           x,
		NQuantiles:  conf.NQuantiles,
		NilToMedian: conf.NilToMedian,
	})
	if err != nil {
		return nil, err
	}

	size, err := util.Agg("count", "size", x)
	if err != nil {
		return nil, err
	}
	specs := []util.AggSpec{size}
	for _, name := range aggs {
		spec, err := util.Agg(name, name, x)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	result, err := gh.Frame.To(util.Aggregate(gh.GroupBy, specs...))
	if err != nil {
		return nil, err
	}
	if conf.SortByCount {
		if result, err = result.SortBy(frame.Desc("count")); err != nil {
			return nil, err
		}
	}

	if !conf.SkipP {
		hue := ""
		if conf.Hue != "" {
			hue = bucket.HueColumn
		}
		ps, err := DfP(gh.Frame, x, bucket.GroupColumn, &DfPConf{Hue: hue, AggFunc: conf.PTest, Agg: true, Logger: conf.Logger})
		if err != nil {
			return nil, err
		}
		if err := joinColumn(result, ps, gh.GroupBy, "p"); err != nil {
			return nil, err
		}
	}

	for i, name := range gh.GroupBy {
		if err := result.RenameColumn(name, gh.GroupByNames[i]); err != nil {
			return nil, err
		}
	}
	result.ResetIndex()
	return result, nil
}

// joinColumn adds column colName of right to left, matching rows on the given key columns.
// Rows of left without a match receive nil.
func joinColumn(left *frame.Frame, right *frame.Frame, on []string, colName string) error {
	colType, err := right.ColumnType(colName)
	if err != nil {
		return err
	}
	rightKeys, err := rowKeys(right, on)
	if err != nil {
		return err
	}
	rightVals, _ := right.Values(colName)
	lookup := make(map[string]interface{}, len(rightKeys))
	for i, k := range rightKeys {
		if _, ok := lookup[k]; !ok {
			lookup[k] = rightVals[i]
		}
	}
	leftKeys, err := rowKeys(left, on)
	if err != nil {
		return err
	}
	vals := make([]interface{}, len(leftKeys))
	for i, k := range leftKeys {
		vals[i] = lookup[k]
	}
	return left.SetColumn(colName, colType, vals)
}

func rowKeys(f *frame.Frame, on []string) ([]string, error) {
	parts := make([][]string, len(on))
	for j, colName := range on {
		strs, err := f.Strings(colName)
		if err != nil {
			return nil, err
		}
		parts[j] = strs
	}
	keys := make([]string, f.NumRows())
	for i := range keys {
		fields := make([]string, len(on))
		for j := range on {
			fields[j] = parts[j][i]
		}
		keys[i] = strings.Join(fields, "\x1f")
	}
	return keys, nil
}
