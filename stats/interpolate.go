package stats

import "math"

// Interpolate fills NaN values by linear interpolation between the surrounding valid
// values, treating points as equally spaced. Leading NaN values are kept, and trailing
// NaN values take the last valid value.
func Interpolate(values []float64) []float64 {
	result := append([]float64(nil), values...)
	last := -1
	for i, v := range result {
		if math.IsNaN(v) {
			continue
		}
		if last >= 0 && i-last > 1 {
			step := (v - result[last]) / float64(i-last)
			for j := last + 1; j < i; j++ {
				result[j] = result[last] + step*float64(j-last)
			}
		}
		last = i
	}
	if last >= 0 {
		for j := last + 1; j < len(result); j++ {
			result[j] = result[last]
		}
	}
	return result
}

// Shift returns values shifted by periods positions (positive shifts move values
// towards the end), filling vacated positions with NaN
func Shift(values []float64, periods int) []float64 {
	result := make([]float64, len(values))
	for i := range result {
		j := i - periods
		if j < 0 || j >= len(values) {
			result[i] = math.NaN()
		} else {
			result[i] = values[j]
		}
	}
	return result
}

// FFill propagates the last valid value forward over NaN values
func FFill(values []float64) []float64 {
	result := append([]float64(nil), values...)
	for i := 1; i < len(result); i++ {
		if math.IsNaN(result[i]) {
			result[i] = result[i-1]
		}
	}
	return result
}

// BFill propagates the next valid value backward over NaN values
func BFill(values []float64) []float64 {
	result := append([]float64(nil), values...)
	for i := len(result) - 2; i >= 0; i-- {
		if math.IsNaN(result[i]) {
			result[i] = result[i+1]
		}
	}
	return result
}
