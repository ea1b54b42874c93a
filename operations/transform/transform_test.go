package transform

import (
	"math"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	"github.com/stretchr/testify/require"
)

func testFrame(t *testing.T) *frame.Frame {
	f, err := frame.FromCols(
		frame.CategoryCol("kind", []string{"a", "b", "c"}, "a", "b", "a", "c"),
		frame.Float64Col("x", 1, 2, math.NaN(), 4),
		frame.Int64Col("zeros", 0, 0, 0, 0),
	)
	require.Nil(t, err)
	return f
}

func TestPipeline(t *testing.T) {
	f := testFrame(t)
	result, err := f.To(
		Filter(func(row tabular.Row) (bool, error) {
			return !row.IsNil("x"), nil
		}),
		Map(func(row tabular.Row) error {
			x, err := row.GetFloat64("x")
			if err != nil {
				return err
			}
			return row.SetFloat64("x", x*10)
		}),
		WithColumn("label", &tabular.VarStringColumnType{}, func(row tabular.Row) (interface{}, error) {
			kind, err := row.GetString("kind")
			if err != nil {
				return nil, err
			}
			return kind + "!", nil
		}),
		RenameColumn("x", "x10"),
		RemoveColumn("zeros"),
		ColToFront("label"),
		SortBy(frame.Desc("x10")),
		ResetIndex(),
	)
	require.Nil(t, err)
	require.Equal(t, []string{"label", "kind", "x10"}, result.ColumnNames())
	labels, _ := result.Strings("label")
	require.Equal(t, []string{"c!", "b!", "a!"}, labels)
	x, _ := result.Float64s("x10")
	require.Equal(t, []float64{40, 20, 10}, x)
	require.Equal(t, []int{0, 1, 2}, result.Index())

	orig, _ := f.Float64s("x")
	require.Equal(t, 1.0, orig[0])
}

func TestAddColumn(t *testing.T) {
	f := testFrame(t)
	result, err := f.To(AddColumn("empty", &tabular.Float64ColumnType{}))
	require.Nil(t, err)
	require.True(t, result.IsNil("empty", 0))
	_, err = f.To(AddColumn("x", &tabular.Float64ColumnType{}))
	require.NotNil(t, err)
}

func TestSelectMissing(t *testing.T) {
	_, err := testFrame(t).To(Select("kind", "nope"))
	require.NotNil(t, err)
}

func TestDropZeroColumns(t *testing.T) {
	result, err := testFrame(t).To(DropZeroColumns())
	require.Nil(t, err)
	require.Equal(t, []string{"kind", "x"}, result.ColumnNames())
}

func TestQuickFilter(t *testing.T) {
	f := testFrame(t)
	result, err := f.To(QuickFilter(map[string]interface{}{"kind": "a", "ignored": 1}, nil))
	require.Nil(t, err)
	require.Equal(t, []int{0, 2}, result.Index())
	colType, _ := result.ColumnType("kind")
	require.Equal(t, []string{"a"}, colType.(*tabular.CategoryColumnType).Levels)

	result, err = f.To(QuickFilter(map[string]interface{}{"x": 4}, &QuickFilterConf{ResetIndex: true, KeepUnusedCategories: true}))
	require.Nil(t, err)
	require.Equal(t, []int{0}, result.Index())
	colType, _ = result.ColumnType("kind")
	require.Len(t, colType.(*tabular.CategoryColumnType).Levels, 3)
}
