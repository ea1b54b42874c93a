package stats

import "math"

// Round rounds v to the given number of decimals, rounding halves to even. Negative
// decimals round to the left of the decimal point.
func Round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if decimals < 0 {
		scale := math.Pow(10, float64(-decimals))
		return math.RoundToEven(v/scale) * scale
	}
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*scale) / scale
}

// RoundSignif rounds v to the given number of significant digits. Zero and
// non-finite values are returned unchanged.
func RoundSignif(v float64, digits int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) || digits <= 0 {
		return v
	}
	magnitude := int(math.Floor(math.Log10(math.Abs(v))))
	return Round(v, digits-1-magnitude)
}

// RoundSignifAll rounds every element of values to the given number of significant digits
func RoundSignifAll(values []float64, digits int) []float64 {
	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = RoundSignif(v, digits)
	}
	return result
}
