package dsv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/schema"
	"github.com/stretchr/testify/require"
)

const trips = `# trips
vendor,passengers,distance,flag
a,1,2.5,true
b,null,0.75,false
a,3,,true
`

func TestDSVParserInfer(t *testing.T) {
	parser := CreateParser(&ParserConf{HeaderLines: 1, Comment: '#', NilValue: "null", InferTypes: true})
	f, err := parser.Parse(strings.NewReader(trips), nil)
	require.Nil(t, err)
	require.Equal(t, []string{"vendor", "passengers", "distance", "flag"}, f.ColumnNames())
	require.Equal(t, 3, f.NumRows())
	colType, err := f.ColumnType("passengers")
	require.Nil(t, err)
	require.IsType(t, &tabular.Int64ColumnType{}, colType)
	colType, _ = f.ColumnType("distance")
	require.IsType(t, &tabular.Float64ColumnType{}, colType)
	colType, _ = f.ColumnType("flag")
	require.IsType(t, &tabular.BoolColumnType{}, colType)
	require.True(t, f.IsNil("passengers", 1))
	require.True(t, f.IsNil("distance", 2))
	v, err := f.Value("passengers", 2)
	require.Nil(t, err)
	require.Equal(t, int64(3), v)
}

func TestDSVParserSchema(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("vendor", &tabular.VarStringColumnType{})
	s.CreateColumn("passengers", &tabular.Float64ColumnType{})
	s.CreateColumn("distance", &tabular.Float64ColumnType{})
	s.CreateColumn("flag", &tabular.BoolColumnType{})
	parser := CreateParser(&ParserConf{HeaderLines: 1, Comment: '#', NilValue: "null"})
	f, err := parser.Parse(strings.NewReader(trips), s)
	require.Nil(t, err)
	vals, err := f.Float64s("distance")
	require.Nil(t, err)
	require.Equal(t, 2.5, vals[0])
	require.Equal(t, 0.75, vals[1])

	s.CreateColumn("extra", &tabular.VarStringColumnType{})
	_, err = parser.Parse(strings.NewReader(trips), s)
	require.NotNil(t, err)
}

func TestDSVParserNoHeader(t *testing.T) {
	parser := CreateParser(&ParserConf{Delimiter: '\t'})
	f, err := parser.Parse(strings.NewReader("x\t1\ny\t2\n"), nil)
	require.Nil(t, err)
	require.Equal(t, []string{"col_0", "col_1"}, f.ColumnNames())
	vals, _ := f.Strings("col_1")
	require.Equal(t, []string{"1", "2"}, vals)
}

func TestDSVWrite(t *testing.T) {
	f, err := frame.FromCols(
		frame.StringCol("name", "a", "b"),
		frame.Float64Col("value", 1.5, 2),
	)
	require.Nil(t, err)
	require.Nil(t, f.SetColumn("value", &tabular.Float64ColumnType{}, []interface{}{1.5, nil}))
	parser := CreateParser(&ParserConf{NilValue: "NA"})
	var buf bytes.Buffer
	require.Nil(t, parser.Write(&buf, f))
	require.Equal(t, "name,value\na,1.5\nb,NA\n", buf.String())

	back, err := CreateParser(&ParserConf{HeaderLines: 1, NilValue: "NA", InferTypes: true}).Parse(&buf, nil)
	require.Nil(t, err)
	require.True(t, back.IsNil("value", 1))
}
