package groupstats

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/bucket"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/internal/runstats"
	iutil "github.com/go-sif/tabular/internal/util"
	"github.com/go-sif/tabular/logging"
	"golang.org/x/sync/errgroup"
)

// DfRMSDConf configures DfRMSD
type DfRMSDConf struct {
	Groups      []string     // The grouping columns to evaluate. Defaults to every column which is neither an x nor the Hue.
	Hue         string       // Evaluate each level of this column separately. Defaults to no hue.
	HueOrder    []string     // The order of the hue levels. Defaults to level order.
	SortByGroup bool         // With a hue, sort by group order before hue order. Defaults to sorting by hue first.
	NQuantiles  int          // Numeric group and hue columns are split into this many quantiles. Defaults to 10.
	SkipRMSD    bool         // Only compute counts, leaving rmsd nil. Defaults to false.
	RMSD        *RMSDConf    // Passed to RMSD
	Parallelism int          // The maximum number of (x, group) cells evaluated concurrently. Defaults to 1.
	Logger      *slog.Logger // Receives progress messages. Defaults to no logging.
}

type rmsdRow struct {
	x        string
	group    string
	hue      interface{}
	rmsd     float64
	maxPerc  float64
	maxLevel interface{}
	maxCount int64
	count    int64
}

// DfRMSD computes the RMSD of each column in xs against each grouping column, returning a
// Frame with columns x, group, [hue], rmsd, maxperc, maxlevel, maxcount and count. maxlevel
// is the most frequent group level, maxcount its count and maxperc its share of count.
//
// Numeric grouping columns are quantile-split first. Without a hue, rows are sorted by
// descending rmsd. With a hue, groups are ordered by descending rmsd within the first hue
// level, and rows sorted by hue and then group order (or the reverse, with SortByGroup).
func DfRMSD(ctx context.Context, f *frame.Frame, xs []string, conf *DfRMSDConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &DfRMSDConf{}
	}
	nQuantiles := conf.NQuantiles
	if nQuantiles <= 0 {
		nQuantiles = 10
	}
	parallelism := conf.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}
	logger := logging.OrDiscard(conf.Logger)
	for _, x := range xs {
		if _, err := f.ColumnType(x); err != nil {
			return nil, err
		}
	}
	groups := conf.Groups
	if len(groups) == 0 {
		groups = iutil.Without(f.ColumnNames(), append(append([]string(nil), xs...), conf.Hue)...)
	}

	// row positions of each hue level
	hueLevels := []interface{}{nil}
	huePositions := [][]int{nil}
	var hueType tabular.ColumnType
	if conf.Hue != "" {
		hf, err := bucket.AsCategory(f, conf.Hue, nQuantiles, nil)
		if err != nil {
			return nil, err
		}
		hueType, _ = hf.ColumnType(conf.Hue)
		grouping, err := hf.GroupBy(conf.Hue)
		if err != nil {
			return nil, err
		}
		hueLevels = hueLevels[:0]
		huePositions = huePositions[:0]
		for _, g := range grouping.Groups() {
			hueLevels = append(hueLevels, g.Key[0])
			huePositions = append(huePositions, g.Rows)
		}
	}

	type cell struct {
		x, group string
	}
	cells := make([]cell, 0, len(xs)*len(groups))
	for _, x := range xs {
		for _, group := range groups {
			if group != x {
				cells = append(cells, cell{x: x, group: group})
			}
		}
	}

	results := make([][]rmsdRow, len(cells))
	progress := runstats.Start(len(cells))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)
	for i, c := range cells {
		i, c := i, c
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			rows, err := rmsdCell(f, c.x, c.group, hueLevels, huePositions, nQuantiles, conf)
			if err != nil {
				return err
			}
			progress.EndUnit(start, f.NumRows())
			logger.Debug("evaluated rmsd", append([]interface{}{"x", c.x, "group", c.group}, progress.LogAttrs()...)...)
			results[i] = rows
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	progress.Finish()
	logger.Info("computed rmsd table", progress.LogAttrs()...)
	rows := make([]rmsdRow, 0, len(cells)*len(hueLevels))
	for _, r := range results {
		rows = append(rows, r...)
	}
	return assembleRMSD(rows, hueType, conf)
}

func rmsdCell(f *frame.Frame, x string, group string, hueLevels []interface{}, huePositions [][]int, nQuantiles int, conf *DfRMSDConf) ([]rmsdRow, error) {
	cols := []string{x}
	if group != x {
		cols = append(cols, group)
	}
	work, err := f.Select(cols...)
	if err != nil {
		return nil, err
	}
	work, err = bucket.AsCategory(work, group, nQuantiles, nil)
	if err != nil {
		return nil, err
	}
	rows := make([]rmsdRow, 0, len(hueLevels))
	for h, hue := range hueLevels {
		sub := work
		if huePositions[h] != nil {
			sub = work.Take(huePositions[h])
		}
		row := rmsdRow{x: x, group: group, hue: hue, rmsd: math.NaN(), maxPerc: math.NaN(), count: int64(sub.NumRows())}
		if !conf.SkipRMSD {
			row.rmsd, err = RMSD(sub, x, group, conf.RMSD)
			if err != nil {
				return nil, err
			}
		}
		counts, err := sub.ValueCounts(group)
		if err != nil {
			return nil, err
		}
		if len(counts) > 0 {
			row.maxLevel = counts[0].Label
			row.maxCount = int64(counts[0].Count)
			row.maxPerc = float64(row.maxCount) / float64(row.count)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func assembleRMSD(rows []rmsdRow, hueType tabular.ColumnType, conf *DfRMSDConf) (*frame.Frame, error) {
	n := len(rows)
	xs, groups, maxLevels := make([]string, n), make([]string, n), make([]interface{}, n)
	hues := make([]interface{}, n)
	rmsds, maxPercs := make([]float64, n), make([]float64, n)
	maxCounts, counts := make([]int64, n), make([]int64, n)
	for i, r := range rows {
		xs[i], groups[i], hues[i], maxLevels[i] = r.x, r.group, r.hue, r.maxLevel
		rmsds[i], maxPercs[i] = r.rmsd, r.maxPerc
		maxCounts[i], counts[i] = r.maxCount, r.count
	}
	cols := []frame.Col{frame.StringCol("x", xs...), frame.StringCol("group", groups...)}
	if hueType != nil {
		if len(conf.HueOrder) > 0 {
			levels := append([]string(nil), conf.HueOrder...)
			for _, l := range hueType.(*tabular.CategoryColumnType).Levels {
				if !iutil.Contains(levels, l) {
					levels = append(levels, l)
				}
			}
			hueType = &tabular.CategoryColumnType{Levels: levels}
		}
		cols = append(cols, frame.Col{Name: conf.Hue, Type: hueType, Values: hues})
	}
	cols = append(cols,
		frame.Float64Col("rmsd", rmsds...),
		frame.Float64Col("maxperc", maxPercs...),
		frame.Col{Name: "maxlevel", Type: &tabular.VarStringColumnType{}, Values: maxLevels},
		frame.Int64Col("maxcount", maxCounts...),
		frame.Int64Col("count", counts...),
	)
	result, err := frame.FromCols(cols...)
	if err != nil {
		return nil, err
	}
	if hueType == nil || len(hueType.(*tabular.CategoryColumnType).Levels) == 0 {
		result, err = result.SortBy(frame.Desc("rmsd"))
		if err != nil {
			return nil, err
		}
		result.ResetIndex()
		return result, nil
	}

	// order groups by rmsd within the first hue level
	first := hueType.(*tabular.CategoryColumnType).Levels[0]
	firstRows, err := result.Filter(func(row tabular.Row) (bool, error) {
		v, err := row.Get(conf.Hue)
		return v == first, err
	})
	if err != nil {
		return nil, err
	}
	firstRows, err = firstRows.SortBy(frame.Desc("rmsd"))
	if err != nil {
		return nil, err
	}
	order := make(map[string]int64)
	xsFirst, _ := firstRows.Strings("x")
	groupsFirst, _ := firstRows.Strings("group")
	for i := range xsFirst {
		order[xsFirst[i]+"\x1f"+groupsFirst[i]] = int64(i)
	}
	orders := make([]interface{}, n)
	for i := range rows {
		if o, ok := order[xs[i]+"\x1f"+groups[i]]; ok {
			orders[i] = o
		}
	}
	if err := result.AddColumn("_order", &tabular.Int64ColumnType{}, orders); err != nil {
		return nil, err
	}
	keys := []frame.SortKey{frame.Asc(conf.Hue), frame.Asc("_order")}
	if conf.SortByGroup {
		keys = []frame.SortKey{frame.Asc("_order"), frame.Asc(conf.Hue)}
	}
	result, err = result.SortBy(keys...)
	if err != nil {
		return nil, err
	}
	if err := result.RemoveColumn("_order"); err != nil {
		return nil, err
	}
	result.ResetIndex()
	return result, nil
}
