package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func linspace(from, to float64, n int) []float64 {
	result := make([]float64, n)
	for i := range result {
		result[i] = from + (to-from)*float64(i)/float64(n-1)
	}
	return result
}

func TestQuantile(t *testing.T) {
	values := linspace(1, 100, 100)
	require.InDelta(t, 10.9, Quantile(values, 0.1), 1e-9)
	require.Equal(t, 1.0, Quantile(values, 0))
	require.Equal(t, 100.0, Quantile(values, 1))
	require.Equal(t, 2.5, Quantile([]float64{4, math.NaN(), 1, 3, 2}, 0.5))
	require.True(t, math.IsNaN(Quantile([]float64{math.NaN()}, 0.5)))
	require.Equal(t, []float64{1, 2.5, 4}, Quantiles([]float64{1, 2, 3, 4}, 0, 0.5, 1))
}

func TestMoments(t *testing.T) {
	values := []float64{1, 2, math.NaN(), 3, 4}
	require.Equal(t, 2.5, Mean(values))
	require.InDelta(t, 1.2909944487358056, Std(values, 1), 1e-12)
	require.InDelta(t, 1.118033988749895, Std(values, 0), 1e-12)
	require.True(t, math.IsNaN(Std([]float64{1}, 1)))
	require.True(t, math.IsNaN(Mean(nil)))
	require.Equal(t, 10.0, Sum(values))
	require.Equal(t, 1.0, Min(values))
	require.Equal(t, 4.0, Max(values))
	require.Equal(t, 4, CountValid(values))
	require.Equal(t, 2, NUnique([]float64{1, 1, 2, math.NaN()}))
}

func TestRoundSignif(t *testing.T) {
	require.Equal(t, 12000.0, RoundSignif(12345, 2))
	require.Equal(t, 0.012, RoundSignif(0.012345, 2))
	require.Equal(t, 11.0, RoundSignif(10.9, 2))
	require.Equal(t, -1.5, RoundSignif(-1.549, 2))
	require.Equal(t, 0.0, RoundSignif(0, 2))
	require.True(t, math.IsInf(RoundSignif(math.Inf(1), 2), 1))
	require.Equal(t, 2.0, Round(2.5, 0))
	require.Equal(t, 1.23, Round(1.234, 2))
}

func TestInterpolate(t *testing.T) {
	nan := math.NaN()
	result := Interpolate([]float64{nan, 1, nan, 3, nan})
	require.True(t, math.IsNaN(result[0]))
	require.Equal(t, []float64{1, 2, 3, 3}, result[1:])

	shifted := Shift([]float64{1, 2, 3}, 1)
	require.True(t, math.IsNaN(shifted[0]))
	require.Equal(t, []float64{1, 2}, shifted[1:])
	require.Equal(t, []float64{1, 1, 3}, FFill([]float64{1, nan, 3}))
	require.Equal(t, []float64{3, 3, 3}, BFill([]float64{nan, nan, 3}))
}

func TestCorrelation(t *testing.T) {
	require.InDelta(t, 1, Correlation([]float64{1, 2, 3, math.NaN()}, []float64{2, 4, 6, 1}), 1e-12)
	require.InDelta(t, -1, Correlation([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
	require.True(t, math.IsNaN(Correlation([]float64{1, 1, 1}, []float64{1, 2, 3})))
}

func TestWelchTTest(t *testing.T) {
	p, err := WelchTTest([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.Nil(t, err)
	require.InDelta(t, 1, p, 1e-9)

	p, err = WelchTTest([]float64{1, 1}, []float64{1, 1})
	require.NotNil(t, err)
	require.True(t, math.IsNaN(p))

	p, err = WelchTTest([]float64{1, 2, 3, 4, 5}, []float64{11, 12, 13, 14, 15})
	require.Nil(t, err)
	require.Less(t, p, 0.001)
}

func TestMedianTest(t *testing.T) {
	p, err := MedianTest([]float64{1, 2, 3, 4, 5}, []float64{6, 7, 8, 9, 10})
	require.Nil(t, err)
	require.InDelta(t, 0.011412, p, 1e-5)

	_, err = MedianTest([]float64{1, 1}, []float64{1, 1})
	require.NotNil(t, err)
	_, err = MedianTest([]float64{1, 2})
	require.NotNil(t, err)
}
