package jsonl

import (
	"strings"
	"testing"

	"github.com/go-sif/tabular"
	memory "github.com/go-sif/tabular/datasource/memory"
	"github.com/go-sif/tabular/schema"
	"github.com/stretchr/testify/require"
)

func TestJSONLDatasourceParser(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("name", &tabular.VarStringColumnType{})
	s.CreateColumn("meta.index", &tabular.Int64ColumnType{})
	s.CreateColumn("meta.first", &tabular.VarStringColumnType{})
	s.CreateColumn("meta.last", &tabular.VarStringColumnType{})

	parser := CreateParser(nil)
	data := [][]byte{
		[]byte("{\"name\": \"Sean\", \"meta\": { \"index\": 1, \"first\": \"Sean\", \"last\": \"McIntyre\"}}\n{\"name\": \"Chris\", \"meta\": { \"index\": 3, \"first\": \"Chris\", \"last\": \"Dickson\"}}"),
		[]byte("{\"name\": \"Phil\", \"meta\": { \"index\": 2, \"first\": \"Phil\"}}\n{\"name\": \"Fahd\", \"meta\": { \"index\": 4, \"first\": \"Fahd\", \"last\": \"Husain\"}}"),
	}
	f, err := memory.Load(data, parser, s)
	require.Nil(t, err)
	require.Equal(t, 4, f.NumRows())
	idx, _ := f.Values("meta.index")
	require.Equal(t, []interface{}{int64(1), int64(3), int64(2), int64(4)}, idx)
	require.True(t, f.IsNil("meta.last", 2))
}

func TestJSONLInferSchema(t *testing.T) {
	data := `# comment
{"a": 1.5, "b": true, "c": "x", "d": {"e": 1}}

{"a": null, "b": false, "c": "y"}
`
	f, err := CreateParser(&ParserConf{Comment: '#'}).Parse(strings.NewReader(data), nil)
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, f.ColumnNames())
	require.Equal(t, 2, f.NumRows())
	colType, _ := f.ColumnType("a")
	require.IsType(t, &tabular.Float64ColumnType{}, colType)
	colType, _ = f.ColumnType("b")
	require.IsType(t, &tabular.BoolColumnType{}, colType)
	require.True(t, f.IsNil("a", 1))
	d, _ := f.Value("d", 0)
	require.Equal(t, `{"e": 1}`, d)
	require.True(t, f.IsNil("d", 1))
}

func TestJSONLErrors(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("a", &tabular.Float64ColumnType{})
	_, err := CreateParser(nil).Parse(strings.NewReader(`{"a": "x"}`), s)
	require.NotNil(t, err)
	_, err = CreateParser(nil).Parse(strings.NewReader(`{"a": `), s)
	require.NotNil(t, err)
	f, err := CreateParser(&ParserConf{HeaderLines: 1}).Parse(strings.NewReader("header\n"), s)
	require.Nil(t, err)
	require.Equal(t, 0, f.NumRows())
}
