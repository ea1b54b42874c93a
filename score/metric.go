// Package score computes regression and classification scores of predictions held in a
// Frame, overall, per group, or for several prediction columns at once.
package score

import (
	"fmt"
	"math"

	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/stats"
	gstat "gonum.org/v1/gonum/stat"
)

// Func scores paired true and predicted values. Inputs containing NaN, or empty inputs,
// score NaN.
type Func func(yTrue []float64, yPred []float64) float64

// Metric is a named scoring Func
type Metric struct {
	Name string
	Fn   Func
}

var (
	// R2 is the coefficient of determination. A constant yTrue scores 1 when predicted
	// exactly and 0 otherwise.
	R2 = Metric{Name: "r2", Fn: r2}
	// RMSE is the root mean squared error
	RMSE = Metric{Name: "rmse", Fn: rmse}
	// MAE is the mean absolute error
	MAE = Metric{Name: "mae", Fn: mae}
	// StdAE is the population standard deviation of the absolute error
	StdAE = Metric{Name: "stdae", Fn: stdae}
	// MedAE is the median absolute error
	MedAE = Metric{Name: "medae", Fn: medae}
	// Corr is the Pearson correlation between yTrue and yPred
	Corr = Metric{Name: "corr", Fn: corr}
)

// Metrics returns all built-in Metrics
func Metrics() []Metric {
	return []Metric{R2, RMSE, MAE, StdAE, MedAE, Corr}
}

// MetricByName returns the built-in Metric with the given name
func MetricByName(name string) (Metric, error) {
	for _, m := range Metrics() {
		if m.Name == name {
			return m, nil
		}
	}
	return Metric{}, errors.InvalidArgumentError{Arg: "metric", Reason: fmt.Sprintf("unknown metric %q", name)}
}

func usable(yTrue []float64, yPred []float64) bool {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return false
	}
	for i := range yTrue {
		if math.IsNaN(yTrue[i]) || math.IsNaN(yPred[i]) {
			return false
		}
	}
	return true
}

func absErrors(yTrue []float64, yPred []float64) []float64 {
	errs := make([]float64, len(yTrue))
	for i := range yTrue {
		errs[i] = math.Abs(yTrue[i] - yPred[i])
	}
	return errs
}

func r2(yTrue []float64, yPred []float64) float64 {
	if !usable(yTrue, yPred) {
		return math.NaN()
	}
	mean := gstat.Mean(yTrue, nil)
	var ssRes, ssTot float64
	for i := range yTrue {
		ssRes += (yTrue[i] - yPred[i]) * (yTrue[i] - yPred[i])
		ssTot += (yTrue[i] - mean) * (yTrue[i] - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return gstat.RSquaredFrom(yPred, yTrue, nil)
}

func rmse(yTrue []float64, yPred []float64) float64 {
	if !usable(yTrue, yPred) {
		return math.NaN()
	}
	errs := absErrors(yTrue, yPred)
	for i, e := range errs {
		errs[i] = e * e
	}
	return math.Sqrt(gstat.Mean(errs, nil))
}

func mae(yTrue []float64, yPred []float64) float64 {
	if !usable(yTrue, yPred) {
		return math.NaN()
	}
	return gstat.Mean(absErrors(yTrue, yPred), nil)
}

func stdae(yTrue []float64, yPred []float64) float64 {
	if !usable(yTrue, yPred) {
		return math.NaN()
	}
	return stats.Std(absErrors(yTrue, yPred), 0)
}

func medae(yTrue []float64, yPred []float64) float64 {
	if !usable(yTrue, yPred) {
		return math.NaN()
	}
	return stats.Median(absErrors(yTrue, yPred))
}

func corr(yTrue []float64, yPred []float64) float64 {
	if !usable(yTrue, yPred) {
		return math.NaN()
	}
	return stats.Correlation(yTrue, yPred)
}
