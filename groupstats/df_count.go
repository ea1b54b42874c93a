package groupstats

import (
	"math"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/bucket"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/operations/util"
	"github.com/go-sif/tabular/stats"
)

// TotalName replaces the hue in the total count and percentage columns of a DfCount without hue
const TotalName = "total"

// DfCountConf configures DfCount
type DfCountConf struct {
	Hue         string   // Count each combination of x and this column. Defaults to no hue.
	KeepOrder   bool     // Keep the level order of x rather than sorting by descending count of x. Defaults to false.
	TopN        int      // Values of x and hue outside the TopN most frequent ones are recoded to OtherName. Defaults to 5; negative disables recoding.
	OtherName   string   // Defaults to "other".
	XInt        float64  // Round numeric x to multiples of XInt and count missing multiples as zero. Defaults to no rounding.
	XMin        *float64 // The lowest multiple counted with XInt. Defaults to the minimum of x.
	XMax        *float64 // The highest multiple counted with XInt. Defaults to the maximum of x.
	KeepNil     bool     // Count missing values under the label "nan" instead of dropping them. Cannot be combined with XInt. Defaults to false.
}

// DfCount counts the occurrences of each value of x (and hue), returning a Frame with
// columns x, [hue], count, count_{x}, count_{hue}, perc_{x} and perc_{hue}. count_{x} is
// the total count of each x value, count_{hue} the total count of each hue value, and the
// perc columns give count as a percentage of these totals, rounded to two decimals.
// Without a hue, TotalName stands in for the hue and totals span all rows.
func DfCount(f *frame.Frame, x string, conf *DfCountConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &DfCountConf{}
	}
	if conf.KeepNil && conf.XInt > 0 {
		return nil, errors.InvalidArgumentError{Arg: "KeepNil", Reason: "missing values cannot be binned with XInt"}
	}
	topN := conf.TopN
	if topN == 0 {
		topN = 5
	}
	cols := []string{x}
	if conf.Hue != "" {
		cols = append(cols, conf.Hue)
	}
	work, err := f.Select(cols...)
	if err != nil {
		return nil, err
	}
	outX := x
	if x == "count" {
		outX = "count_org"
		if err := work.RenameColumn(x, outX); err != nil {
			return nil, err
		}
	}
	groupBy := []string{outX}
	if conf.Hue != "" {
		groupBy = append(groupBy, conf.Hue)
	}

	for _, colName := range groupBy {
		binned := colName == outX && conf.XInt > 0
		if binned {
			values, err := work.Float64s(colName)
			if err != nil {
				return nil, err
			}
			for i, v := range values {
				values[i] = math.Round(v/conf.XInt) * conf.XInt
			}
			if err := work.SetFloat64s(colName, values); err != nil {
				return nil, err
			}
			continue
		}
		if conf.KeepNil {
			if work, err = nilToLabel(work, colName); err != nil {
				return nil, err
			}
		}
		if topN > 0 {
			if work, err = bucket.TopNCoding(work, colName, topN, &bucket.TopNConf{OtherName: conf.OtherName}); err != nil {
				return nil, err
			}
		}
	}

	size, err := util.Agg("count", "size", outX)
	if err != nil {
		return nil, err
	}
	counts, err := work.To(util.Aggregate(groupBy, size))
	if err != nil {
		return nil, err
	}
	if conf.XInt > 0 {
		if counts, err = fillSteps(work, counts, outX, conf); err != nil {
			return nil, err
		}
	}

	countX, countHue := "count_"+outX, "count_"+TotalName
	percX, percHue := "perc_"+outX, "perc_"+TotalName
	if conf.Hue != "" {
		countHue, percHue = "count_"+conf.Hue, "perc_"+conf.Hue
	}
	n, _ := counts.Float64s("count")
	totalX, err := groupTotals(counts, n, outX)
	if err != nil {
		return nil, err
	}
	var totalHue []float64
	if conf.Hue != "" {
		if totalHue, err = groupTotals(counts, n, conf.Hue); err != nil {
			return nil, err
		}
	} else {
		totalHue = make([]float64, len(n))
		sum := stats.Sum(n)
		for i := range totalHue {
			totalHue[i] = sum
		}
	}
	pX, pHue := make([]float64, len(n)), make([]float64, len(n))
	cX, cHue := make([]int64, len(n)), make([]int64, len(n))
	for i := range n {
		cX[i], cHue[i] = int64(totalX[i]), int64(totalHue[i])
		pX[i] = stats.Round(n[i]/totalX[i]*100, 2)
		pHue[i] = stats.Round(n[i]/totalHue[i]*100, 2)
	}
	if err := counts.SetInt64s(countX, cX); err != nil {
		return nil, err
	}
	if err := counts.SetInt64s(countHue, cHue); err != nil {
		return nil, err
	}
	if err := counts.SetFloat64s(percX, pX); err != nil {
		return nil, err
	}
	if err := counts.SetFloat64s(percHue, pHue); err != nil {
		return nil, err
	}
	if !conf.KeepOrder {
		if counts, err = counts.SortBy(frame.Desc(countX)); err != nil {
			return nil, err
		}
	}
	counts.ResetIndex()
	return counts, nil
}

func nilToLabel(f *frame.Frame, colName string) (*frame.Frame, error) {
	strs, err := f.Strings(colName)
	if err != nil {
		return nil, err
	}
	result := f.Copy()
	if err := result.SetStrings(colName, strs); err != nil {
		return nil, err
	}
	return result, nil
}

// groupTotals sums counts over the rows sharing the same value of colName
func groupTotals(f *frame.Frame, counts []float64, colName string) ([]float64, error) {
	grouping, err := f.GroupBy(colName)
	if err != nil {
		return nil, err
	}
	totals := make([]float64, f.NumRows())
	for _, g := range grouping.Groups() {
		sum := 0.0
		for _, pos := range g.Rows {
			sum += counts[pos]
		}
		for _, pos := range g.Rows {
			totals[pos] = sum
		}
	}
	return totals, nil
}

// fillSteps adds zero counts for every multiple of conf.XInt between XMin and XMax (and
// every hue level) missing from counts
func fillSteps(work *frame.Frame, counts *frame.Frame, x string, conf *DfCountConf) (*frame.Frame, error) {
	values, err := work.Float64s(x)
	if err != nil {
		return nil, err
	}
	lo, hi := stats.Min(values), stats.Max(values)
	if conf.XMin != nil {
		lo = *conf.XMin
	}
	if conf.XMax != nil {
		hi = *conf.XMax
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return counts, nil
	}
	kLo, kHi := int64(math.Round(lo/conf.XInt)), int64(math.Round(hi/conf.XInt))

	on := []string{x}
	hues := []interface{}{nil}
	var hueType tabular.ColumnType
	if conf.Hue != "" {
		on = append(on, conf.Hue)
		if hues, err = counts.Unique(conf.Hue); err != nil {
			return nil, err
		}
		hueType, _ = counts.ColumnType(conf.Hue)
	}
	keys, err := rowKeys(counts, on)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	xType, _ := counts.ColumnType(x)
	for k := kLo; k <= kHi; k++ {
		v := float64(k) * conf.XInt
		for _, h := range hues {
			key := xType.ToString(v)
			row := []interface{}{v}
			if hueType != nil {
				key += "\x1f" + hueType.ToString(h)
				row = append(row, h)
			}
			if present[key] {
				continue
			}
			row = append(row, int64(0))
			if err := counts.AppendRow(row...); err != nil {
				return nil, err
			}
		}
	}
	sortKeys := []frame.SortKey{frame.Asc(x)}
	if conf.Hue != "" {
		sortKeys = append(sortKeys, frame.Asc(conf.Hue))
	}
	return counts.SortBy(sortKeys...)
}
