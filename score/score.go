package score

import (
	"math"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/stats"
)

// Conf configures Score and ScoreByGroup
type Conf struct {
	DropNil bool // Drop rows missing yTrue, yPred or a group key before scoring. Defaults to false.
}

// Score applies metric to the columns yTrue and yPred of f. An empty Frame (after
// dropping incomplete rows) scores NaN.
func Score(f *frame.Frame, yTrue string, yPred string, metric Metric, conf *Conf) (float64, error) {
	if conf == nil {
		conf = &Conf{}
	}
	t, p, err := pairs(f, yTrue, yPred, conf.DropNil)
	if err != nil {
		return math.NaN(), err
	}
	if len(t) == 0 {
		return math.NaN(), nil
	}
	return metric.Fn(t, p), nil
}

// ScoreByGroup applies metric within each group of groupBy, returning a Frame with the
// groupBy columns and one column named after the metric
func ScoreByGroup(f *frame.Frame, yTrue string, yPred string, metric Metric, groupBy []string, conf *Conf) (*frame.Frame, error) {
	if conf == nil {
		conf = &Conf{}
	}
	grouping, err := f.GroupBy(groupBy...)
	if err != nil {
		return nil, err
	}
	result, err := grouping.KeyFrame()
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, grouping.NumGroups())
	for i := range values {
		s, err := Score(grouping.Sub(i), yTrue, yPred, metric, conf)
		if err != nil {
			return nil, err
		}
		if !math.IsNaN(s) {
			values[i] = s
		}
	}
	if err := result.AddColumn(metric.Name, &tabular.Float64ColumnType{}, values); err != nil {
		return nil, err
	}
	return result, nil
}

// pairs reads the yTrue and yPred columns as float64, optionally dropping rows where
// either is missing
func pairs(f *frame.Frame, yTrue string, yPred string, dropNil bool) ([]float64, []float64, error) {
	t, err := f.Float64s(yTrue)
	if err != nil {
		return nil, nil, err
	}
	p, err := f.Float64s(yPred)
	if err != nil {
		return nil, nil, err
	}
	if !dropNil {
		return t, p, nil
	}
	t, p = stats.PairwiseComplete(t, p)
	return t, p, nil
}
