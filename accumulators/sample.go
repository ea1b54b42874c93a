package accumulators

import (
	"fmt"
	"math"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/stats"
	gstat "gonum.org/v1/gonum/stat"
)

// Statistic identifies the statistic a Sample Accumulator computes
type Statistic int

const (
	// MeanStatistic is the arithmetic mean
	MeanStatistic Statistic = iota
	// StdStatistic is the sample standard deviation (ddof=1)
	StdStatistic
	// VarStatistic is the sample variance (ddof=1)
	VarStatistic
	// QuantileStatistic is a linearly interpolated quantile
	QuantileStatistic
	// MinStatistic is the minimum
	MinStatistic
	// MaxStatistic is the maximum
	MaxStatistic
)

// Sample collects the non-nil values of a numeric column, and computes a statistic from them
type Sample struct {
	colName   string
	statistic Statistic
	q         float64
	values    []float64
}

func sampler(colName string, statistic Statistic, q float64) tabular.AccumulatorFactory {
	return func() tabular.Accumulator {
		return &Sample{colName: colName, statistic: statistic, q: q}
	}
}

// Averager returns a factory for Accumulators computing the mean of a column
func Averager(colName string) tabular.AccumulatorFactory {
	return sampler(colName, MeanStatistic, 0)
}

// StdDever returns a factory for Accumulators computing the sample standard deviation of a column
func StdDever(colName string) tabular.AccumulatorFactory {
	return sampler(colName, StdStatistic, 0)
}

// Variancer returns a factory for Accumulators computing the sample variance of a column
func Variancer(colName string) tabular.AccumulatorFactory {
	return sampler(colName, VarStatistic, 0)
}

// Quantiler returns a factory for Accumulators computing the q-th quantile of a column
func Quantiler(colName string, q float64) tabular.AccumulatorFactory {
	return sampler(colName, QuantileStatistic, q)
}

// Medianer returns a factory for Accumulators computing the median of a column
func Medianer(colName string) tabular.AccumulatorFactory {
	return Quantiler(colName, 0.5)
}

// Minimizer returns a factory for Accumulators computing the minimum of a column
func Minimizer(colName string) tabular.AccumulatorFactory {
	return sampler(colName, MinStatistic, 0)
}

// Maximizer returns a factory for Accumulators computing the maximum of a column
func Maximizer(colName string) tabular.AccumulatorFactory {
	return sampler(colName, MaxStatistic, 0)
}

// Values returns the values collected by this Accumulator
func (a *Sample) Values() []float64 {
	return a.values
}

// Accumulate adds a row to this Accumulator
func (a *Sample) Accumulate(row tabular.Row) error {
	v, ok, err := numericValue(row, a.colName)
	if err != nil || !ok {
		return err
	}
	a.values = append(a.values, v)
	return nil
}

// Merge merges another Accumulator into this one
func (a *Sample) Merge(o tabular.Accumulator) error {
	sa, ok := o.(*Sample)
	if !ok || sa.statistic != a.statistic {
		return fmt.Errorf("Incoming accumulator is not a matching Sample Accumulator")
	}
	a.values = append(a.values, sa.values...)
	return nil
}

// Float64 returns the statistic, or NaN if it is undefined for the collected values
func (a *Sample) Float64() float64 {
	n := len(a.values)
	if n == 0 {
		return math.NaN()
	}
	switch a.statistic {
	case MeanStatistic:
		return gstat.Mean(a.values, nil)
	case StdStatistic:
		if n < 2 {
			return math.NaN()
		}
		return gstat.StdDev(a.values, nil)
	case VarStatistic:
		if n < 2 {
			return math.NaN()
		}
		return gstat.Variance(a.values, nil)
	case QuantileStatistic:
		return stats.Quantile(a.values, a.q)
	case MinStatistic:
		return stats.Min(a.values)
	case MaxStatistic:
		return stats.Max(a.values)
	}
	return math.NaN()
}

// Result returns the statistic as a float64, or nil if it is undefined
func (a *Sample) Result() interface{} {
	v := a.Float64()
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// ResultType returns Float64ColumnType
func (a *Sample) ResultType() tabular.ColumnType {
	return &tabular.Float64ColumnType{}
}
