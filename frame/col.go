package frame

import (
	"math"
	"time"

	"github.com/go-sif/tabular"
)

// Col describes a named, typed column of values used to construct a Frame
type Col struct {
	Name   string
	Type   tabular.ColumnType
	Values []interface{}
}

// Float64Col builds a Float64 column. NaN values become nil.
func Float64Col(name string, values ...float64) Col {
	vals := make([]interface{}, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			vals[i] = v
		}
	}
	return Col{Name: name, Type: &tabular.Float64ColumnType{}, Values: vals}
}

// Int64Col builds an Int64 column
func Int64Col(name string, values ...int64) Col {
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Col{Name: name, Type: &tabular.Int64ColumnType{}, Values: vals}
}

// BoolCol builds a Bool column
func BoolCol(name string, values ...bool) Col {
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Col{Name: name, Type: &tabular.BoolColumnType{}, Values: vals}
}

// StringCol builds a VarString column
func StringCol(name string, values ...string) Col {
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Col{Name: name, Type: &tabular.VarStringColumnType{}, Values: vals}
}

// TimeCol builds a Time column with the given layout
func TimeCol(name string, format string, values ...time.Time) Col {
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Col{Name: name, Type: &tabular.TimeColumnType{Format: format}, Values: vals}
}

// CategoryCol builds a Category column. If levels is empty, levels are taken
// from the values in order of first appearance.
func CategoryCol(name string, levels []string, values ...string) Col {
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if len(levels) == 0 {
		levels = UniqueStrings(values)
	}
	return Col{Name: name, Type: &tabular.CategoryColumnType{Levels: levels}, Values: vals}
}

// UniqueStrings returns the distinct elements of values, in order of first appearance
func UniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
