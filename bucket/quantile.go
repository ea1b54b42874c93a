// Package bucket maps numeric columns onto categorical ones: quantile buckets,
// standard-scaled step groups and top-n recoding. These categories drive the
// grouped statistics in groupstats.
package bucket

import (
	"fmt"
	"math"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/stats"
)

// QuantileConf configures QuantileSplit
type QuantileConf struct {
	Signif      int  // The number of significant digits values and bounds are rounded to. Defaults to 2. Negative values disable rounding.
	NilToMedian bool // Replace missing values with the median before bucketing. Defaults to false.
}

// DefaultQuantileConf returns a QuantileConf with default values
func DefaultQuantileConf() *QuantileConf {
	return &QuantileConf{Signif: 2}
}

func (c *QuantileConf) signif() int {
	if c == nil || c.Signif == 0 {
		return 2
	}
	return c.Signif
}

// QuantileLabels assigns each value to one of n quantile buckets and returns the bucket
// label of every value (nil for missing values) along with the used labels in bucket
// order. Bucket i covers [Q(i/n), Q((i+1)/n)), and the last bucket is closed on the right.
// If values hold at most n distinct values (missing values count as one), ok is false and
// no labels are computed.
func QuantileLabels(values []float64, n int, conf *QuantileConf) (labels []interface{}, levels []string, ok bool, err error) {
	if n <= 0 {
		return nil, nil, false, errors.InvalidArgumentError{Arg: "n", Reason: "number of quantiles must be positive"}
	}
	signif := conf.signif()
	vals := make([]float64, len(values))
	hasNaN := false
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			vals[i] = math.NaN()
			hasNaN = true
			continue
		}
		vals[i] = v
	}
	unique := stats.NUnique(vals)
	if hasNaN {
		unique++
	}
	if unique <= n {
		return nil, nil, false, nil
	}
	if conf != nil && conf.NilToMedian {
		med := stats.Median(vals)
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = med
			}
		}
	}
	if signif > 0 {
		vals = stats.RoundSignifAll(vals, signif)
	}

	qs := make([]float64, n+1)
	for i := range qs {
		qs[i] = float64(i) / float64(n)
	}
	bounds := stats.Quantiles(vals, qs...)

	names := make([]string, n)
	assigned := make([]int, len(vals))
	for i := range assigned {
		assigned[i] = -1
	}
	for i := 0; i < n; i++ {
		lo, hi := bounds[i], bounds[i+1]
		upper, sign := hi, "<"
		if i == n-1 {
			upper, sign = math.Inf(1), "<="
		}
		names[i] = fmt.Sprintf("q%d: %s<=_%s%s", i,
			tabular.FormatFloat(stats.RoundSignif(lo, signif)), sign, tabular.FormatFloat(stats.RoundSignif(hi, signif)))
		// later buckets overwrite earlier ones
		for j, v := range vals {
			if v >= lo && v < upper {
				assigned[j] = i
			}
		}
	}

	used := make([]bool, n)
	labels = make([]interface{}, len(vals))
	for j, b := range assigned {
		if b >= 0 {
			labels[j] = names[b]
			used[b] = true
		}
	}
	levels = make([]string, 0, n)
	for i, u := range used {
		if u {
			levels = append(levels, names[i])
		}
	}
	return labels, levels, true, nil
}

// QuantileSplit returns a copy of f in which the numeric column colName is replaced by a
// Category column of quantile bucket labels (see QuantileLabels). Columns with at most n
// distinct values are returned unchanged.
func QuantileSplit(f *frame.Frame, colName string, n int, conf *QuantileConf) (*frame.Frame, error) {
	values, err := f.Float64s(colName)
	if err != nil {
		return nil, err
	}
	labels, levels, ok, err := QuantileLabels(values, n, conf)
	if err != nil {
		return nil, err
	}
	result := f.Copy()
	if !ok {
		return result, nil
	}
	if err := result.SetCategories(colName, levels, labels); err != nil {
		return nil, err
	}
	return result, nil
}
