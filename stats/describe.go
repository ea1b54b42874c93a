package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	gstat "gonum.org/v1/gonum/stat"
)

// DropNaN returns the non-NaN elements of values
func DropNaN(values []float64) []float64 {
	result := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			result = append(result, v)
		}
	}
	return result
}

// CountValid returns the number of non-NaN elements of values
func CountValid(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Sum returns the sum of the non-NaN elements of values
func Sum(values []float64) float64 {
	return floats.Sum(DropNaN(values))
}

// Mean returns the mean of the non-NaN elements of values
func Mean(values []float64) float64 {
	valid := DropNaN(values)
	if len(valid) == 0 {
		return math.NaN()
	}
	return gstat.Mean(valid, nil)
}

// Std returns the standard deviation of the non-NaN elements of values, with ddof
// delta degrees of freedom (1 for the sample standard deviation, 0 for the population).
func Std(values []float64, ddof int) float64 {
	valid := DropNaN(values)
	if len(valid)-ddof <= 0 {
		return math.NaN()
	}
	if ddof == 1 {
		return gstat.StdDev(valid, nil)
	} else if ddof == 0 {
		return gstat.PopStdDev(valid, nil)
	}
	_, v := gstat.PopMeanVariance(valid, nil)
	return math.Sqrt(v * float64(len(valid)) / float64(len(valid)-ddof))
}

// Min returns the minimum of the non-NaN elements of values
func Min(values []float64) float64 {
	valid := DropNaN(values)
	if len(valid) == 0 {
		return math.NaN()
	}
	return floats.Min(valid)
}

// Max returns the maximum of the non-NaN elements of values
func Max(values []float64) float64 {
	valid := DropNaN(values)
	if len(valid) == 0 {
		return math.NaN()
	}
	return floats.Max(valid)
}

// Median returns the median of the non-NaN elements of values
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Quantile returns the q-th quantile of the non-NaN elements of values, interpolating
// linearly between the closest order statistics (the "type 7" definition).
func Quantile(values []float64, q float64) float64 {
	sorted := DropNaN(values)
	if len(sorted) == 0 || math.IsNaN(q) || q < 0 || q > 1 {
		return math.NaN()
	}
	sort.Float64s(sorted)
	return sortedQuantile(sorted, q)
}

// Quantiles returns several quantiles of the non-NaN elements of values, sorting them only once
func Quantiles(values []float64, qs ...float64) []float64 {
	sorted := DropNaN(values)
	sort.Float64s(sorted)
	result := make([]float64, len(qs))
	for i, q := range qs {
		if len(sorted) == 0 || math.IsNaN(q) || q < 0 || q > 1 {
			result[i] = math.NaN()
			continue
		}
		result[i] = sortedQuantile(sorted, q)
	}
	return result
}

func sortedQuantile(sorted []float64, q float64) float64 {
	h := float64(len(sorted)-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// NUnique returns the number of distinct non-NaN elements of values
func NUnique(values []float64) int {
	seen := make(map[float64]bool)
	for _, v := range values {
		if !math.IsNaN(v) {
			seen[v] = true
		}
	}
	return len(seen)
}

// Correlation returns the Pearson correlation of x and y over the positions where both are
// valid. Fewer than two complete pairs, or a constant input, yield NaN.
func Correlation(x, y []float64) float64 {
	xs, ys := PairwiseComplete(x, y)
	if len(xs) < 2 {
		return math.NaN()
	}
	if floats.Max(xs) == floats.Min(xs) || floats.Max(ys) == floats.Min(ys) {
		return math.NaN()
	}
	return gstat.Correlation(xs, ys, nil)
}

// PairwiseComplete returns the elements of x and y at positions where neither is NaN
func PairwiseComplete(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if i < len(y) && !math.IsNaN(x[i]) && !math.IsNaN(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	return xs, ys
}
