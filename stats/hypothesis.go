package stats

import (
	"fmt"
	"math"

	mstats "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// WelchTTest returns the two-sided p-value of Welch's unequal-variance t-test between
// the non-NaN elements of two samples
func WelchTTest(x1, x2 []float64) (float64, error) {
	res, err := mstats.TwoSampleWelchTTest(mstats.Sample{Xs: DropNaN(x1)}, mstats.Sample{Xs: DropNaN(x2)}, mstats.LocationDiffers)
	if err != nil {
		return math.NaN(), err
	}
	return res.P, nil
}

// MedianTest returns the p-value of Mood's median test between the non-NaN elements of
// two or more samples. Values equal to the grand median count as below it, and Yates'
// continuity correction is applied when there is one degree of freedom.
func MedianTest(samples ...[]float64) (float64, error) {
	if len(samples) < 2 {
		return math.NaN(), fmt.Errorf("median test requires at least two samples")
	}
	valid := make([][]float64, len(samples))
	all := make([]float64, 0)
	for i, s := range samples {
		valid[i] = DropNaN(s)
		if len(valid[i]) == 0 {
			return math.NaN(), fmt.Errorf("median test sample %d is empty", i)
		}
		all = append(all, valid[i]...)
	}
	grandMedian := Median(all)
	table := [2][]float64{make([]float64, len(valid)), make([]float64, len(valid))}
	for i, s := range valid {
		for _, v := range s {
			if v > grandMedian {
				table[0][i]++
			} else {
				table[1][i]++
			}
		}
	}
	rowSums := [2]float64{Sum(table[0]), Sum(table[1])}
	if rowSums[0] == 0 {
		return math.NaN(), fmt.Errorf("all values are below the grand median (%v)", grandMedian)
	} else if rowSums[1] == 0 {
		return math.NaN(), fmt.Errorf("all values are above the grand median (%v)", grandMedian)
	}
	total := float64(len(all))
	dof := float64(len(valid) - 1)
	chi2 := 0.0
	for r := 0; r < 2; r++ {
		for c := range valid {
			colSum := table[0][c] + table[1][c]
			expected := rowSums[r] * colSum / total
			observed := table[r][c]
			if dof == 1 {
				diff := expected - observed
				observed += math.Copysign(math.Min(0.5, math.Abs(diff)), diff)
			}
			chi2 += (observed - expected) * (observed - expected) / expected
		}
	}
	return distuv.ChiSquared{K: dof}.Survival(chi2), nil
}
