package outlier

import (
	"math"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	"github.com/stretchr/testify/require"
)

func ramp(n int) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = float64(i)
	}
	return vals
}

func TestToNaNRemovesSpike(t *testing.T) {
	vals := ramp(20)
	vals[10] = 100
	f, err := frame.FromCols(frame.Float64Col("y", vals...))
	require.Nil(t, err)
	require.Nil(t, f.SetIndex(ramp20Labels()))

	res, err := ToNaN(f, "y", nil)
	require.Nil(t, err)
	require.True(t, res.IsNil("y", 10))
	count, err := res.Count("y")
	require.Nil(t, err)
	require.Equal(t, 19, count)
	require.Equal(t, f.Index(), res.Index())
	// the input is untouched
	require.False(t, f.IsNil("y", 10))

	res, err = ToNaN(f, "y", &Conf{Reps: 2})
	require.Nil(t, err)
	count, _ = res.Count("y")
	require.Equal(t, 19, count)
}

func ramp20Labels() []int {
	labels := make([]int, 20)
	for i := range labels {
		labels[i] = 100 + i
	}
	return labels
}

func TestToNaNKeepsSmoothRamp(t *testing.T) {
	f, err := frame.FromCols(frame.Float64Col("y", ramp(20)...))
	require.Nil(t, err)
	res, err := ToNaN(f, "y", nil)
	require.Nil(t, err)
	count, _ := res.Count("y")
	require.Equal(t, 20, count)
}

func TestToNaNGrouped(t *testing.T) {
	spiked := ramp(20)
	spiked[10] = 100
	smooth := ramp(20)
	g := make([]interface{}, 0, 41)
	y := make([]float64, 0, 41)
	for i := 0; i < 20; i++ {
		g = append(g, "a", "b")
		y = append(y, spiked[i], smooth[i])
	}
	g = append(g, nil)
	y = append(y, 1000)
	f, err := frame.FromCols(
		frame.Col{Name: "g", Type: &tabular.VarStringColumnType{}, Values: g},
		frame.Float64Col("y", y...),
	)
	require.Nil(t, err)
	res, err := ToNaN(f, "y", &Conf{GroupBy: []string{"g"}})
	require.Nil(t, err)
	require.True(t, res.IsNil("y", 20))
	require.False(t, res.IsNil("y", 21))
	require.False(t, res.IsNil("y", 40))
	count, _ := res.Count("y")
	require.Equal(t, 40, count)
}

func TestToNaNMissingColumn(t *testing.T) {
	f, err := frame.FromCols(frame.Float64Col("y", 1, 2, 3))
	require.Nil(t, err)
	_, err = ToNaN(f, "z", nil)
	require.NotNil(t, err)
}

func TestDeltas(t *testing.T) {
	require.Equal(t, []float64{0.5, 1, 1, 0.5}, Deltas([]float64{0, 1, 2, 3}))
	require.Equal(t, []float64{0.5, 1, 1, 0.5}, Deltas([]float64{0, math.NaN(), 2, 3}))
}

func TestChangeSpan(t *testing.T) {
	f, err := frame.FromCols(frame.Float64Col("y", 0, 0, 0, 1, 1, 1))
	require.Nil(t, err)
	flags, err := ChangeSpan(f, "y", 1)
	require.Nil(t, err)
	require.Equal(t, []bool{false, false, true, true, false, false}, flags)
}

func TestPrecisionFilter(t *testing.T) {
	f, err := frame.FromCols(frame.Float64Col("y", 1.0, 1.05, 1.1, 1.25, math.NaN()))
	require.Nil(t, err)
	res, err := PrecisionFilter(f, "y", 1)
	require.Nil(t, err)
	require.Equal(t, []int{0, 2}, res.Index())
}

func TestGroupedInterpolate(t *testing.T) {
	f, err := frame.FromCols(
		frame.StringCol("g", "a", "a", "a", "b", "b"),
		frame.Float64Col("y", 1, math.NaN(), 3, math.NaN(), 5),
	)
	require.Nil(t, err)
	res, err := GroupedInterpolate(f, "y", "g")
	require.Nil(t, err)
	vals, err := res.Values("y")
	require.Nil(t, err)
	require.Equal(t, []interface{}{1.0, 2.0, 3.0, nil, 5.0}, vals)
}

func TestMahalanobis(t *testing.T) {
	f, err := frame.FromCols(
		frame.Float64Col("x", 1, 2, 3, 4, 5),
		frame.Float64Col("y", 2, 1, 4, 3, 5),
	)
	require.Nil(t, err)
	d, err := MahalanobisPoint([]float64{3, 3}, f, nil, nil)
	require.Nil(t, err)
	require.InDelta(t, 0, d, 1e-12)

	d, err = MahalanobisPoint([]float64{5}, f, []string{"x"}, nil)
	require.Nil(t, err)
	require.InDelta(t, 2/math.Sqrt(2.5), d, 1e-12)

	ds, err := Mahalanobis(f, nil, nil, nil)
	require.Nil(t, err)
	require.Len(t, ds, 5)
	d, err = MahalanobisPoint([]float64{1, 2}, f, nil, nil)
	require.Nil(t, err)
	require.InDelta(t, d, ds[0], 1e-12)
	require.Greater(t, d, 0.0)

	_, err = MahalanobisPoint([]float64{1}, f, nil, nil)
	require.NotNil(t, err)
}

func TestMahalanobisSingularIsNaN(t *testing.T) {
	f, err := frame.FromCols(
		frame.Float64Col("x", 1, 2, 3, 4),
		frame.Float64Col("y", 5, 5, 5, 5),
	)
	require.Nil(t, err)
	ds, err := Mahalanobis(f, nil, nil, nil)
	require.Nil(t, err)
	for _, d := range ds {
		require.True(t, math.IsNaN(d))
	}
}
