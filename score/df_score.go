package score

import (
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
)

// DfScoreConf configures DfScore
type DfScoreConf struct {
	Suffixes []string           // Prediction columns are named {y}_{suffix}. Defaults to "pred".
	Metrics  []string           // Metric names, see MetricByName. Defaults to r2, rmse, mae, stdae and medae.
	Long     bool               // Return one row per score instead of one column per metric. Defaults to false.
	Scale    map[string]float64 // Multiplies y and its prediction columns by Scale[y] before scoring. Defaults to no scaling.
	GroupBy  []string           // Score separately within each group. Defaults to a single group.
	DropNil  bool               // Passed to Score
}

// DfScore scores the prediction columns {y}_{suffix} of every y in yTrue. The long form
// has columns [groupBy...], y_ref, model, score and value; the default wide form has
// columns y_ref, model, [groupBy...] and one column per metric, in the given order.
func DfScore(f *frame.Frame, yTrue []string, conf *DfScoreConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &DfScoreConf{}
	}
	suffixes := conf.Suffixes
	if len(suffixes) == 0 {
		suffixes = []string{"pred"}
	}
	names := conf.Metrics
	if len(names) == 0 {
		names = []string{"r2", "rmse", "mae", "stdae", "medae"}
	}
	metrics := make([]Metric, len(names))
	for i, name := range names {
		m, err := MetricByName(name)
		if err != nil {
			return nil, err
		}
		metrics[i] = m
	}
	for _, y := range yTrue {
		if !f.HasColumn(y) {
			return nil, errors.MissingColumnError{Name: y}
		}
		for _, suffix := range suffixes {
			if !f.HasColumn(y + "_" + suffix) {
				return nil, errors.MissingColumnError{Name: y + "_" + suffix}
			}
		}
	}

	work, err := scaled(f, yTrue, suffixes, conf.Scale)
	if err != nil {
		return nil, err
	}
	grouping, err := work.GroupBy(conf.GroupBy...)
	if err != nil {
		return nil, err
	}
	subs := make([]*frame.Frame, grouping.NumGroups())
	for i := range subs {
		subs[i] = grouping.Sub(i)
	}
	scoreConf := &Conf{DropNil: conf.DropNil}

	keys := make([][]interface{}, len(conf.GroupBy))
	var yRefs, models, scoreNames []string
	var values [][]float64
	for _, y := range yTrue {
		for _, suffix := range suffixes {
			for gi, g := range grouping.Groups() {
				row := make([]float64, len(metrics))
				for mi, m := range metrics {
					s, err := Score(subs[gi], y, y+"_"+suffix, m, scoreConf)
					if err != nil {
						return nil, err
					}
					row[mi] = s
				}
				for k := range conf.GroupBy {
					keys[k] = append(keys[k], g.Key[k])
				}
				yRefs = append(yRefs, y)
				models = append(models, suffix)
				values = append(values, row)
			}
		}
	}

	result := frame.New(nil)
	addGroupBy := func(expand int) error {
		for k, colName := range conf.GroupBy {
			colType, _ := work.ColumnType(colName)
			vals := make([]interface{}, 0, len(keys[k])*expand)
			for _, v := range keys[k] {
				for j := 0; j < expand; j++ {
					vals = append(vals, v)
				}
			}
			if err := result.AddColumn(colName, colType, vals); err != nil {
				return err
			}
		}
		return nil
	}

	if conf.Long {
		if err := addGroupBy(len(metrics)); err != nil {
			return nil, err
		}
		var longY, longModel []string
		var longValues []float64
		for i, row := range values {
			for mi, m := range metrics {
				longY = append(longY, yRefs[i])
				longModel = append(longModel, models[i])
				scoreNames = append(scoreNames, m.Name)
				longValues = append(longValues, row[mi])
			}
		}
		for _, c := range []frame.Col{
			frame.StringCol("y_ref", longY...),
			frame.StringCol("model", longModel...),
			frame.StringCol("score", scoreNames...),
			frame.Float64Col("value", longValues...),
		} {
			if err := result.AddColumn(c.Name, c.Type, c.Values); err != nil {
				return nil, err
			}
		}
		result.ResetIndex()
		return result, nil
	}

	for _, c := range []frame.Col{frame.StringCol("y_ref", yRefs...), frame.StringCol("model", models...)} {
		if err := result.AddColumn(c.Name, c.Type, c.Values); err != nil {
			return nil, err
		}
	}
	if err := addGroupBy(1); err != nil {
		return nil, err
	}
	for mi, m := range metrics {
		col := make([]float64, len(values))
		for i, row := range values {
			col[i] = row[mi]
		}
		c := frame.Float64Col(m.Name, col...)
		if err := result.AddColumn(c.Name, c.Type, c.Values); err != nil {
			return nil, err
		}
	}
	result.ResetIndex()
	return result, nil
}

// scaled returns a copy of f in which each y with a Scale factor and its prediction
// columns are multiplied by that factor
func scaled(f *frame.Frame, yTrue []string, suffixes []string, scale map[string]float64) (*frame.Frame, error) {
	if len(scale) == 0 {
		return f, nil
	}
	result := f.Copy()
	for _, y := range yTrue {
		factor, ok := scale[y]
		if !ok {
			continue
		}
		cols := []string{y}
		for _, suffix := range suffixes {
			cols = append(cols, y+"_"+suffix)
		}
		for _, col := range cols {
			vals, err := result.Float64s(col)
			if err != nil {
				return nil, err
			}
			for i := range vals {
				vals[i] *= factor
			}
			if err := result.SetFloat64s(col, vals); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}
