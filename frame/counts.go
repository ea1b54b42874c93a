package frame

import (
	"sort"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
)

// ValueCount is the number of occurrences of a value within a column
type ValueCount struct {
	Value interface{}
	Label string
	Count int
}

// ValueCounts counts the distinct non-nil values of a column. Results are ordered by
// descending count, with ties in order of first appearance.
func (f *Frame) ValueCounts(colName string) ([]ValueCount, error) {
	colType, err := f.ColumnType(colName)
	if err != nil {
		return nil, err
	}
	positions := make(map[string]int)
	counts := make([]ValueCount, 0)
	for _, v := range f.data[colName] {
		if v == nil {
			continue
		}
		label := colType.ToString(v)
		i, ok := positions[label]
		if !ok {
			i = len(counts)
			positions[label] = i
			counts = append(counts, ValueCount{Value: v, Label: label})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts, nil
}

// Unique returns the distinct non-nil values of a column, in order of first appearance
func (f *Frame) Unique(colName string) ([]interface{}, error) {
	colType, err := f.ColumnType(colName)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	result := make([]interface{}, 0)
	for _, v := range f.data[colName] {
		if v == nil {
			continue
		}
		label := colType.ToString(v)
		if !seen[label] {
			seen[label] = true
			result = append(result, v)
		}
	}
	return result, nil
}

// DuplicateIndices returns the row labels which occur more than once, in order of first appearance
func (f *Frame) DuplicateIndices() []int {
	counts := make(map[int]int)
	for _, l := range f.index {
		counts[l]++
	}
	result := make([]int, 0)
	for _, l := range f.index {
		if counts[l] > 1 {
			result = append(result, l)
			counts[l] = 0
		}
	}
	return result
}

// DropDuplicateIndices returns a new Frame keeping only the first row for each row label
func (f *Frame) DropDuplicateIndices() *Frame {
	seen := make(map[int]bool)
	keep := make([]int, 0, f.NumRows())
	for pos, l := range f.index {
		if !seen[l] {
			seen[l] = true
			keep = append(keep, pos)
		}
	}
	return f.Take(keep)
}

// Positions returns the row positions of the given row labels
func (f *Frame) Positions(labels []int) ([]int, error) {
	lookup := make(map[int]int, len(f.index))
	for pos, l := range f.index {
		if _, ok := lookup[l]; !ok {
			lookup[l] = pos
		}
	}
	result := make([]int, len(labels))
	for i, l := range labels {
		pos, ok := lookup[l]
		if !ok {
			return nil, errors.InvalidArgumentError{Arg: "labels", Reason: "row label not found in index"}
		}
		result[i] = pos
	}
	return result, nil
}

// RemoveUnusedCategories drops the levels of Category columns which no longer occur in
// this Frame, keeping level order. Without column names, all Category columns are updated.
func (f *Frame) RemoveUnusedCategories(colNames ...string) error {
	if len(colNames) == 0 {
		colNames = f.ColumnNames()
	}
	for _, colName := range colNames {
		colType, err := f.ColumnType(colName)
		if err != nil {
			return err
		}
		ct, ok := colType.(*tabular.CategoryColumnType)
		if !ok || len(ct.Levels) == 0 {
			continue
		}
		used := make(map[string]bool)
		for _, v := range f.data[colName] {
			if v != nil {
				used[v.(string)] = true
			}
		}
		levels := make([]string, 0, len(used))
		for _, l := range ct.Levels {
			if used[l] {
				levels = append(levels, l)
			}
		}
		if err := f.SetCategories(colName, levels, f.data[colName]); err != nil {
			return err
		}
	}
	return nil
}
