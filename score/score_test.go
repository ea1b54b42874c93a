package score

import (
	"errors"
	"math"
	"testing"

	terrors "github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
	"github.com/stretchr/testify/require"
)

func mustFrame(t *testing.T, cols ...frame.Col) *frame.Frame {
	f, err := frame.FromCols(cols...)
	require.Nil(t, err)
	return f
}

func regressionFrame(t *testing.T) *frame.Frame {
	return mustFrame(t,
		frame.Float64Col("y", 1, 2, 3, 4),
		frame.Float64Col("y_pred", 1, 2, 3, 5),
		frame.StringCol("g", "a", "a", "b", "b"),
	)
}

func TestMetrics(t *testing.T) {
	yTrue := []float64{1, 2, 3, 4}
	yPred := []float64{1, 2, 3, 5}
	require.InDelta(t, 0.8, R2.Fn(yTrue, yPred), 1e-12)
	require.InDelta(t, 0.5, RMSE.Fn(yTrue, yPred), 1e-12)
	require.InDelta(t, 0.25, MAE.Fn(yTrue, yPred), 1e-12)
	require.InDelta(t, math.Sqrt(0.1875), StdAE.Fn(yTrue, yPred), 1e-12)
	require.Equal(t, 0.0, MedAE.Fn(yTrue, yPred))
	require.Greater(t, Corr.Fn(yTrue, yPred), 0.9)

	require.Equal(t, 1.0, R2.Fn([]float64{2, 2}, []float64{2, 2}))
	require.Equal(t, 0.0, R2.Fn([]float64{2, 2}, []float64{2, 3}))
	require.True(t, math.IsNaN(RMSE.Fn(nil, nil)))
	require.True(t, math.IsNaN(MAE.Fn([]float64{1, math.NaN()}, []float64{1, 2})))
}

func TestMetricByName(t *testing.T) {
	m, err := MetricByName("medae")
	require.Nil(t, err)
	require.Equal(t, "medae", m.Name)
	_, err = MetricByName("mape")
	require.NotNil(t, err)
}

func TestScore(t *testing.T) {
	f := regressionFrame(t)
	s, err := Score(f, "y", "y_pred", RMSE, nil)
	require.Nil(t, err)
	require.InDelta(t, 0.5, s, 1e-12)

	_, err = Score(f, "y", "missing", RMSE, nil)
	var missing terrors.MissingColumnError
	require.True(t, errors.As(err, &missing))

	withNil := mustFrame(t,
		frame.Float64Col("y", 1, 2, 3),
		frame.Float64Col("y_pred", 1, math.NaN(), 4),
	)
	s, err = Score(withNil, "y", "y_pred", MAE, nil)
	require.Nil(t, err)
	require.True(t, math.IsNaN(s))
	s, err = Score(withNil, "y", "y_pred", MAE, &Conf{DropNil: true})
	require.Nil(t, err)
	require.InDelta(t, 0.5, s, 1e-12)

	empty := mustFrame(t, frame.Float64Col("y"), frame.Float64Col("y_pred"))
	s, err = Score(empty, "y", "y_pred", R2, nil)
	require.Nil(t, err)
	require.True(t, math.IsNaN(s))
}

func TestScoreByGroup(t *testing.T) {
	res, err := ScoreByGroup(regressionFrame(t), "y", "y_pred", RMSE, []string{"g"}, nil)
	require.Nil(t, err)
	require.Equal(t, []string{"g", "rmse"}, res.ColumnNames())
	vals, _ := res.Float64s("rmse")
	require.InDelta(t, 0.0, vals[0], 1e-12)
	require.InDelta(t, math.Sqrt(0.5), vals[1], 1e-12)
}

func classFrame(t *testing.T) *frame.Frame {
	return mustFrame(t,
		frame.StringCol("t", "x", "x", "y", "z"),
		frame.StringCol("p", "x", "y", "y", "y"),
	)
}

func TestAcc(t *testing.T) {
	a, err := Acc(classFrame(t), "t", "p")
	require.Nil(t, err)
	require.Equal(t, 0.5, a)

	r, err := RelAcc(classFrame(t), "t", "p", "")
	require.Nil(t, err)
	require.Equal(t, 0.0, r)
	r, err = RelAcc(classFrame(t), "t", "p", "y")
	require.Nil(t, err)
	require.Equal(t, 0.75, r)
}

func TestConfusionMatrix(t *testing.T) {
	cm, err := ConfusionMatrix(classFrame(t), "t", "p")
	require.Nil(t, err)
	require.Equal(t, []string{"t", "x", "y"}, cm.ColumnNames())
	labels, _ := cm.Strings("t")
	require.Equal(t, []string{"x", "y", "z"}, labels)
	xs, _ := cm.Values("x")
	require.Equal(t, []interface{}{int64(1), int64(0), int64(0)}, xs)
	ys, _ := cm.Values("y")
	require.Equal(t, []interface{}{int64(1), int64(1), int64(1)}, ys)
}

func TestF1PR(t *testing.T) {
	res, err := F1PR(classFrame(t), "t", "p", nil)
	require.Nil(t, err)
	require.Equal(t, []string{"t", "count", "F1", "precision", "recall"}, res.ColumnNames())
	counts, _ := res.Values("count")
	require.Equal(t, []interface{}{int64(2), int64(1), int64(1)}, counts)
	precision, _ := res.Float64s("precision")
	recall, _ := res.Float64s("recall")
	f1, _ := res.Float64s("F1")
	require.InDelta(t, 100.0, precision[0], 1e-9)
	require.InDelta(t, 50.0, recall[0], 1e-9)
	require.InDelta(t, 200.0/3, f1[0], 1e-9)
	require.InDelta(t, 100.0/3, precision[1], 1e-9)
	require.InDelta(t, 50.0, f1[1], 1e-9)
	require.True(t, res.IsNil("precision", 2))
	require.Equal(t, 0.0, recall[2])

	res, err = F1PR(classFrame(t), "t", "p", &F1PRConf{Targets: []string{"y"}, Factor: 1})
	require.Nil(t, err)
	require.Equal(t, 1, res.NumRows())
	f1, _ = res.Float64s("F1")
	require.InDelta(t, 0.5, f1[0], 1e-9)
}

func TestDfScore(t *testing.T) {
	f := regressionFrame(t)
	res, err := DfScore(f, []string{"y"}, nil)
	require.Nil(t, err)
	require.Equal(t, []string{"y_ref", "model", "r2", "rmse", "mae", "stdae", "medae"}, res.ColumnNames())
	require.Equal(t, 1, res.NumRows())
	rmse, _ := res.Float64s("rmse")
	require.InDelta(t, 0.5, rmse[0], 1e-12)

	res, err = DfScore(f, []string{"y"}, &DfScoreConf{Metrics: []string{"rmse", "mae"}, Long: true})
	require.Nil(t, err)
	require.Equal(t, []string{"y_ref", "model", "score", "value"}, res.ColumnNames())
	scores, _ := res.Strings("score")
	require.Equal(t, []string{"rmse", "mae"}, scores)

	res, err = DfScore(f, []string{"y"}, &DfScoreConf{Metrics: []string{"rmse"}, GroupBy: []string{"g"}, Scale: map[string]float64{"y": 10}})
	require.Nil(t, err)
	require.Equal(t, []string{"y_ref", "model", "g", "rmse"}, res.ColumnNames())
	rmse, _ = res.Float64s("rmse")
	require.InDelta(t, 0.0, rmse[0], 1e-12)
	require.InDelta(t, 10*math.Sqrt(0.5), rmse[1], 1e-9)

	_, err = DfScore(f, []string{"y"}, &DfScoreConf{Suffixes: []string{"other"}})
	var missing terrors.MissingColumnError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "y_other", missing.Name)
}
