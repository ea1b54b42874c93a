// Package outlier removes and flags unusual values in Frame columns.
package outlier

import (
	"log/slog"
	"math"

	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/stats"
)

// Conf configures ToNaN
type Conf struct {
	GroupBy   []string     // Apply the filter separately within each group. Defaults to a single group.
	StdCutoff float64      // Values whose delta lies more than StdCutoff standard deviations from the mean delta are removed. Defaults to 3.
	Reps      int          // The number of times to repeat the filter. Defaults to 1.
	Logger    *slog.Logger // Receives progress messages. Defaults to no logging.
}

// DefaultConf returns a Conf with default values
func DefaultConf() *Conf {
	return &Conf{StdCutoff: 3, Reps: 1}
}

// ToNaN returns a copy of f in which outliers of the numeric column colName are set to nil.
//
// The delta of a point is the mean absolute difference to its previous and next point within
// its group, after linear interpolation of missing values; the first and last point of a group
// use themselves as the missing neighbour. A point is an outlier if its delta lies more than
// StdCutoff sample standard deviations from the group's mean delta. Groups whose deviation
// cannot be computed, and rows with a missing group key, are left unchanged. Row order and
// index are preserved.
func ToNaN(f *frame.Frame, colName string, conf *Conf) (*frame.Frame, error) {
	if conf == nil {
		conf = DefaultConf()
	}
	cutoff := conf.StdCutoff
	if cutoff == 0 {
		cutoff = 3
	}
	reps := conf.Reps
	if reps <= 0 {
		reps = 1
	}
	logger := logging.OrDiscard(conf.Logger)

	result := f.Copy()
	values, err := result.Float64s(colName)
	if err != nil {
		return nil, err
	}
	grouping, err := result.GroupBy(conf.GroupBy...)
	if err != nil {
		return nil, err
	}
	for rep := 0; rep < reps; rep++ {
		removed := 0
		for _, group := range grouping.Groups() {
			sub := make([]float64, len(group.Rows))
			for i, pos := range group.Rows {
				sub[i] = values[pos]
			}
			outliers := groupOutliers(sub, cutoff)
			for i, isOutlier := range outliers {
				if isOutlier && !math.IsNaN(sub[i]) {
					values[group.Rows[i]] = math.NaN()
					removed++
				}
			}
		}
		logger.Debug("removed outliers", "column", colName, "rep", rep+1, "reps", reps, "removed", removed)
	}
	if err := result.SetFloat64s(colName, values); err != nil {
		return nil, err
	}
	return result, nil
}

// Deltas returns the mean absolute difference of each point to its neighbours, after
// linear interpolation. The first and last point use themselves as the missing neighbour.
func Deltas(values []float64) []float64 {
	interp := stats.Interpolate(values)
	prev := stats.BFill(stats.Shift(interp, 1))
	next := stats.FFill(stats.Shift(interp, -1))
	deltas := make([]float64, len(interp))
	for i, v := range interp {
		deltas[i] = 0.5 * (math.Abs(v-prev[i]) + math.Abs(v-next[i]))
	}
	return deltas
}

func groupOutliers(values []float64, cutoff float64) []bool {
	deltas := Deltas(values)
	mean := stats.Mean(deltas)
	std := stats.Std(deltas, 1)
	outliers := make([]bool, len(values))
	if math.IsNaN(std) {
		return outliers
	}
	for i, d := range deltas {
		if math.IsNaN(d) {
			continue
		}
		outliers[i] = math.Abs(d-mean) > cutoff*std
	}
	return outliers
}
