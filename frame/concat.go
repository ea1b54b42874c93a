package frame

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
)

// Concat stacks Frames vertically. The result holds the union of their columns, in order of
// first appearance, with nil values where a Frame lacks a column. Row labels are retained.
// Numeric columns of differing types are widened to Float64.
func Concat(frames ...*Frame) (*Frame, error) {
	names := make([]string, 0)
	types := make(map[string]tabular.ColumnType)
	for _, f := range frames {
		for _, name := range f.ColumnNames() {
			t, _ := f.ColumnType(name)
			existing, ok := types[name]
			if !ok {
				names = append(names, name)
				types[name] = t
				continue
			}
			if existing.Name() == t.Name() {
				if ct, isCat := existing.(*tabular.CategoryColumnType); isCat {
					types[name] = mergeLevels(ct, t.(*tabular.CategoryColumnType))
				}
				continue
			}
			if tabular.IsNumeric(existing) && tabular.IsNumeric(t) {
				types[name] = &tabular.Float64ColumnType{}
				continue
			}
			return nil, errors.IncompatibleTypeError{Name: name, Want: existing.Name(), Got: t.Name()}
		}
	}
	result := New(nil)
	for _, f := range frames {
		result.index = append(result.index, f.index...)
	}
	for _, name := range names {
		vals := make([]interface{}, 0, len(result.index))
		for _, f := range frames {
			if col, ok := f.data[name]; ok {
				vals = append(vals, col...)
			} else {
				vals = append(vals, make([]interface{}, f.NumRows())...)
			}
		}
		if err := result.AddColumn(name, types[name], vals); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeLevels(a, b *tabular.CategoryColumnType) *tabular.CategoryColumnType {
	if len(a.Levels) == 0 || len(b.Levels) == 0 {
		return &tabular.CategoryColumnType{}
	}
	levels := append([]string(nil), a.Levels...)
	for _, l := range b.Levels {
		if a.LevelIndex(l) < 0 {
			levels = append(levels, l)
		}
	}
	return &tabular.CategoryColumnType{Levels: levels}
}
