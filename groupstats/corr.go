package groupstats

import (
	"math"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	iutil "github.com/go-sif/tabular/internal/util"
	"github.com/go-sif/tabular/stats"
)

// CorrConf configures Corr
type CorrConf struct {
	Target  string   // Keep only correlations involving this column, which is moved to col_0. Defaults to all correlations.
	GroupBy []string // Compute correlations separately within each group. Defaults to a single group.
}

// Corr returns the Pearson correlations between all numeric columns of f in melted form,
// with columns [groupBy...], col_0, col_1, corr and corr_abs, sorted by descending
// corr_abs. Each unordered pair of columns appears once, and undefined correlations are
// dropped.
func Corr(f *frame.Frame, conf *CorrConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &CorrConf{}
	}
	cols := iutil.Without(f.Schema().NumericColumnNames(), conf.GroupBy...)
	if conf.Target != "" {
		if _, err := f.ColumnType(conf.Target); err != nil {
			return nil, err
		}
	}
	grouping, err := f.GroupBy(conf.GroupBy...)
	if err != nil {
		return nil, err
	}
	data := make([][]float64, len(cols))
	for j, col := range cols {
		if data[j], err = f.Float64s(col); err != nil {
			return nil, err
		}
	}

	keys := make([][]interface{}, len(conf.GroupBy))
	var col0, col1 []string
	var corrs, abs []float64
	for _, g := range grouping.Groups() {
		sub := make([][]float64, len(cols))
		for j := range cols {
			sub[j] = make([]float64, len(g.Rows))
			for i, pos := range g.Rows {
				sub[j][i] = data[j][pos]
			}
		}
		for b := range cols {
			for a := b + 1; a < len(cols); a++ {
				c := stats.Correlation(sub[a], sub[b])
				if math.IsNaN(c) {
					continue
				}
				first, second := cols[a], cols[b]
				if conf.Target != "" {
					if second == conf.Target {
						first, second = second, first
					}
					if first != conf.Target {
						continue
					}
				}
				for k := range conf.GroupBy {
					keys[k] = append(keys[k], g.Key[k])
				}
				col0 = append(col0, first)
				col1 = append(col1, second)
				corrs = append(corrs, c)
				abs = append(abs, math.Abs(c))
			}
		}
	}

	result := frame.New(nil)
	for k, colName := range conf.GroupBy {
		colType, _ := f.ColumnType(colName)
		vals := keys[k]
		if vals == nil {
			vals = []interface{}{}
		}
		if err := result.AddColumn(colName, colType, vals); err != nil {
			return nil, err
		}
	}
	for _, c := range []frame.Col{
		frame.StringCol("col_0", col0...),
		frame.StringCol("col_1", col1...),
		frame.Float64Col("corr", corrs...),
		frame.Float64Col("corr_abs", abs...),
	} {
		if err := result.AddColumn(c.Name, c.Type, c.Values); err != nil {
			return nil, err
		}
	}
	result, err = result.SortBy(frame.Desc("corr_abs"))
	if err != nil {
		return nil, err
	}
	result.ResetIndex()
	return result, nil
}

// CorrMatrix returns the Pearson correlation matrix of the given numeric columns (all numeric
// columns by default) as a Frame with a leading "col" column naming each row
func CorrMatrix(f *frame.Frame, cols ...string) (*frame.Frame, error) {
	if len(cols) == 0 {
		cols = f.Schema().NumericColumnNames()
	}
	data := make([][]float64, len(cols))
	for j, col := range cols {
		vals, err := f.Float64s(col)
		if err != nil {
			return nil, err
		}
		data[j] = vals
	}
	result, err := frame.FromCols(frame.StringCol("col", cols...))
	if err != nil {
		return nil, err
	}
	for b, col := range cols {
		vals := make([]interface{}, len(cols))
		for a := range cols {
			c := stats.Correlation(data[a], data[b])
			if !math.IsNaN(c) {
				vals[a] = c
			}
		}
		if err := result.AddColumn(col, &tabular.Float64ColumnType{}, vals); err != nil {
			return nil, err
		}
	}
	return result, nil
}
