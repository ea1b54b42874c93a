package fit

import (
	"log/slog"
	"math"
	"time"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/score"
	"github.com/go-sif/tabular/stats"
)

// LRConf configures LR
type LRConf struct {
	GroupBy  []string      // Regress separately within each group. Defaults to a single group.
	TimeUnit time.Duration // The unit of x when x is a Time column, measured from the earliest x. Defaults to one day.
	Logger   *slog.Logger  // Receives progress messages. Defaults to no logging.
}

// LR regresses y on x per group, returning a Frame with the groupBy columns, {y}_slope,
// {y}_int, r2, rmse and the mean and sample standard deviation of the error (fit - y) and
// of its absolute value. Rows with a missing x or y are ignored. Groups which cannot be
// regressed receive nil statistics.
func LR(f *frame.Frame, x string, y string, conf *LRConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &LRConf{}
	}
	unit := conf.TimeUnit
	if unit <= 0 {
		unit = 24 * time.Hour
	}
	logger := logging.OrDiscard(conf.Logger)
	xs, err := numericOrTime(f, x, unit)
	if err != nil {
		return nil, err
	}
	ys, err := f.Float64s(y)
	if err != nil {
		return nil, err
	}
	grouping, err := f.GroupBy(conf.GroupBy...)
	if err != nil {
		return nil, err
	}
	result, err := grouping.KeyFrame()
	if err != nil {
		return nil, err
	}

	names := []string{y + "_slope", y + "_int", "r2", "rmse", "error_mean", "error_std", "error_abs_mean", "error_abs_std"}
	columns := make([][]float64, len(names))
	for gi, g := range grouping.Groups() {
		logger.Debug("linear regression", "frame", f.ID(), "iteration", gi+1, "groups", grouping.NumGroups())
		gx, gy := stats.PairwiseComplete(pick(xs, g.Rows), pick(ys, g.Rows))
		row := make([]float64, len(names))
		l, err := fitLine(gx, gy, nil)
		if err != nil {
			logger.Warn("linear regression failed", "frame", f.ID(), "group", g.Name("_"), "error", err.Error())
			for i := range row {
				row[i] = math.NaN()
			}
		} else {
			fitted := make([]float64, len(gx))
			errs := make([]float64, len(gx))
			absErrs := make([]float64, len(gx))
			for i := range gx {
				fitted[i] = l.at(gx[i])
				errs[i] = fitted[i] - gy[i]
				absErrs[i] = math.Abs(errs[i])
			}
			row = []float64{
				l.slope, l.intercept,
				score.R2.Fn(gy, fitted), score.RMSE.Fn(gy, fitted),
				stats.Mean(errs), stats.Std(errs, 1),
				stats.Mean(absErrs), stats.Std(absErrs, 1),
			}
		}
		for i := range names {
			columns[i] = append(columns[i], row[i])
		}
	}
	for i, name := range names {
		vals := make([]interface{}, len(columns[i]))
		for j, v := range columns[i] {
			if !math.IsNaN(v) {
				vals[j] = v
			}
		}
		if err := result.AddColumn(name, &tabular.Float64ColumnType{}, vals); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// numericOrTime reads a numeric column as float64, or a Time column as the number of
// units elapsed since its earliest value
func numericOrTime(f *frame.Frame, colName string, unit time.Duration) ([]float64, error) {
	colType, err := f.ColumnType(colName)
	if err != nil {
		return nil, err
	}
	if _, ok := colType.(*tabular.TimeColumnType); !ok {
		return f.Float64s(colName)
	}
	vals, _ := f.Values(colName)
	var earliest time.Time
	found := false
	for _, v := range vals {
		if t, ok := v.(time.Time); ok && (!found || t.Before(earliest)) {
			earliest, found = t, true
		}
	}
	result := make([]float64, len(vals))
	for i, v := range vals {
		t, ok := v.(time.Time)
		if !ok {
			result[i] = math.NaN()
			continue
		}
		result[i] = float64(t.Sub(earliest)) / float64(unit)
	}
	return result, nil
}
