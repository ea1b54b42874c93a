package bucket

import (
	"sort"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	iutil "github.com/go-sif/tabular/internal/util"
)

// Columns added by GroupHue
const (
	GroupColumn = iutil.GroupColumn
	HueColumn   = iutil.HueColumn
	LabelColumn = iutil.LabelColumn
)

// LabelSeparator joins group and hue labels in LabelColumn
const LabelSeparator = "_"

// GroupHueConf configures GroupHue
type GroupHueConf struct {
	Hue         string // An optional secondary grouping column
	X           string // An optional value column which is kept in the result
	NQuantiles  int    // Numeric group and hue columns are split into this many quantiles. Defaults to 10.
	NilToMedian bool   // Passed to QuantileSplit. Defaults to false.
}

// Grouped is a Frame prepared for grouped statistics
type Grouped struct {
	Frame        *frame.Frame // The x, group and hue columns, plus GroupColumn, HueColumn (with a hue) and LabelColumn
	GroupBy      []string     // GroupColumn, and HueColumn with a hue
	GroupByNames []string     // The original names of the GroupBy columns
	Vars         []string     // The columns kept from the input Frame
	Levels       *frame.Frame // One row per distinct (group, hue) combination, in level order
}

// Labels returns the distinct values of LabelColumn, in level order
func (g *Grouped) Labels() []string {
	labels, _ := g.Levels.Strings(LabelColumn)
	return labels
}

// AsCategory returns a copy of f in which colName is a Category column. Numeric columns
// are quantile-split into nQuantiles buckets; numeric columns with few distinct values and
// all other columns use their text representation, with levels in value order. Unused
// levels are dropped.
func AsCategory(f *frame.Frame, colName string, nQuantiles int, conf *QuantileConf) (*frame.Frame, error) {
	colType, err := f.ColumnType(colName)
	if err != nil {
		return nil, err
	}
	if ct, ok := colType.(*tabular.CategoryColumnType); ok && len(ct.Levels) > 0 {
		result := f.Copy()
		if err := result.RemoveUnusedCategories(colName); err != nil {
			return nil, err
		}
		return result, nil
	}
	if tabular.IsNumeric(colType) {
		values, err := f.Float64s(colName)
		if err != nil {
			return nil, err
		}
		labels, levels, ok, err := QuantileLabels(values, nQuantiles, conf)
		if err != nil {
			return nil, err
		}
		if ok {
			result := f.Copy()
			if err := result.SetCategories(colName, levels, labels); err != nil {
				return nil, err
			}
			return result, nil
		}
	}
	unique, err := f.Unique(colName)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return frame.CompareValues(colType, unique[i], unique[j]) < 0
	})
	levels := make([]string, len(unique))
	for i, v := range unique {
		levels[i] = colType.ToString(v)
	}
	values, err := f.Values(colName)
	if err != nil {
		return nil, err
	}
	labels := make([]interface{}, len(values))
	for i, v := range values {
		if v != nil {
			labels[i] = colType.ToString(v)
		}
	}
	result := f.Copy()
	if err := result.SetCategories(colName, levels, labels); err != nil {
		return nil, err
	}
	return result, nil
}

// GroupHue selects the x, group and hue columns of f and adds categorical copies of group
// (GroupColumn) and hue (HueColumn), plus their combined LabelColumn.
func GroupHue(f *frame.Frame, group string, conf *GroupHueConf) (*Grouped, error) {
	if conf == nil {
		conf = &GroupHueConf{}
	}
	nQuantiles := conf.NQuantiles
	if nQuantiles <= 0 {
		nQuantiles = 10
	}
	qconf := &QuantileConf{NilToMedian: conf.NilToMedian}

	result := &Grouped{
		GroupBy:      []string{GroupColumn},
		GroupByNames: []string{group},
		Vars:         []string{group},
	}
	if conf.Hue != "" {
		result.GroupBy = append(result.GroupBy, HueColumn)
		result.GroupByNames = append(result.GroupByNames, conf.Hue)
		if !iutil.Contains(result.Vars, conf.Hue) {
			result.Vars = append(result.Vars, conf.Hue)
		}
	}
	if conf.X != "" && !iutil.Contains(result.Vars, conf.X) {
		result.Vars = append([]string{conf.X}, result.Vars...)
	}

	df, err := f.Select(result.Vars...)
	if err != nil {
		return nil, err
	}
	df, err = withCategoryCopy(df, group, GroupColumn, nQuantiles, qconf)
	if err != nil {
		return nil, err
	}
	if conf.Hue == "" {
		labels, _ := df.Values(GroupColumn)
		groupType, _ := df.ColumnType(GroupColumn)
		if err := df.AddColumn(LabelColumn, groupType, labels); err != nil {
			return nil, err
		}
	} else {
		df, err = withCategoryCopy(df, conf.Hue, HueColumn, nQuantiles, qconf)
		if err != nil {
			return nil, err
		}
		if err := addLabel(df); err != nil {
			return nil, err
		}
	}
	result.Frame = df

	grouping, err := df.GroupBy(LabelColumn)
	if err != nil {
		return nil, err
	}
	first := make([]int, grouping.NumGroups())
	for i, g := range grouping.Groups() {
		first[i] = g.Rows[0]
	}
	levels, err := df.Take(first).Select(append(result.GroupBy, LabelColumn)...)
	if err != nil {
		return nil, err
	}
	levels.ResetIndex()
	result.Levels = levels
	return result, nil
}

func withCategoryCopy(f *frame.Frame, src string, dst string, nQuantiles int, conf *QuantileConf) (*frame.Frame, error) {
	colType, err := f.ColumnType(src)
	if err != nil {
		return nil, err
	}
	values, _ := f.Values(src)
	if err := f.SetColumn(dst, colType, values); err != nil {
		return nil, err
	}
	return AsCategory(f, dst, nQuantiles, conf)
}

// addLabel joins GroupColumn and HueColumn into LabelColumn. Levels follow group level
// order, then hue level order.
func addLabel(f *frame.Frame) error {
	groupType, _ := f.ColumnType(GroupColumn)
	hueType, _ := f.ColumnType(HueColumn)
	groupLevels := groupType.(*tabular.CategoryColumnType).Levels
	hueLevels := hueType.(*tabular.CategoryColumnType).Levels
	groups, _ := f.Values(GroupColumn)
	hues, _ := f.Values(HueColumn)

	labels := make([]interface{}, len(groups))
	used := make(map[string]bool)
	for i := range groups {
		if groups[i] == nil || hues[i] == nil {
			continue
		}
		l := groups[i].(string) + LabelSeparator + hues[i].(string)
		labels[i] = l
		used[l] = true
	}
	levels := make([]string, 0, len(used))
	for _, g := range groupLevels {
		for _, h := range hueLevels {
			l := g + LabelSeparator + h
			if used[l] {
				levels = append(levels, l)
				used[l] = false
			}
		}
	}
	return f.SetCategories(LabelColumn, levels, labels)
}
