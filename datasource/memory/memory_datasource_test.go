package memory

import (
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/datasource/parser/dsv"
	"github.com/go-sif/tabular/schema"
	"github.com/stretchr/testify/require"
)

func TestMemoryDatasource(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("name", &tabular.VarStringColumnType{})
	s.CreateColumn("value", &tabular.Float64ColumnType{})
	data := [][]byte{
		[]byte("a,1\nb,2\n"),
		[]byte("c,3\n"),
	}
	source := CreateDataSource(data)
	pm, err := source.Analyze()
	require.Nil(t, err)
	parser := dsv.CreateParser(nil)
	totalRows := 0
	for pm.HasNext() {
		pl := pm.Next()
		f, err := pl.Load(parser, s)
		require.Nil(t, err)
		totalRows += f.NumRows()
	}
	require.False(t, pm.HasNext())
	require.Equal(t, 3, totalRows)

	f, err := Load(data, parser, s)
	require.Nil(t, err)
	require.Equal(t, []int{0, 1, 2}, f.Index())
	vals, _ := f.Float64s("value")
	require.Equal(t, []float64{1, 2, 3}, vals)
}

func TestMemoryDatasourceError(t *testing.T) {
	_, err := Load([][]byte{[]byte("a,1\n"), []byte("b\n")}, dsv.CreateParser(nil), nil)
	require.Nil(t, err)
	s := schema.CreateSchema()
	s.CreateColumn("value", &tabular.Float64ColumnType{})
	_, err = Load([][]byte{[]byte("x\n")}, dsv.CreateParser(nil), s)
	require.ErrorContains(t, err, "Memory loader index: 0")
}
