package xlsx

import (
	"bytes"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXParser(t *testing.T) {
	wb := excelize.NewFile()
	wb.SetCellValue("Sheet1", "A1", "name")
	wb.SetCellValue("Sheet1", "B1", "score")
	wb.SetCellValue("Sheet1", "A2", "a")
	wb.SetCellValue("Sheet1", "B2", 1.5)
	wb.SetCellValue("Sheet1", "A3", "b")
	wb.SetCellValue("Sheet1", "A4", "c")
	wb.SetCellValue("Sheet1", "B4", 3)
	var buf bytes.Buffer
	require.Nil(t, wb.Write(&buf))

	f, err := CreateParser(&ParserConf{HeaderLines: 1, InferTypes: true}).Parse(&buf, nil)
	require.Nil(t, err)
	require.Equal(t, []string{"name", "score"}, f.ColumnNames())
	require.Equal(t, 3, f.NumRows())
	colType, _ := f.ColumnType("score")
	require.IsType(t, &tabular.Float64ColumnType{}, colType)
	require.True(t, f.IsNil("score", 1))
	v, _ := f.Value("score", 2)
	require.Equal(t, 3.0, v)
}

func TestXLSXWrite(t *testing.T) {
	f, err := frame.FromCols(
		frame.StringCol("name", "a", "b"),
		frame.Int64Col("count", 4, 7),
		frame.BoolCol("ok", true, false),
	)
	require.Nil(t, err)
	parser := CreateParser(&ParserConf{Sheet: "counts", HeaderLines: 1, InferTypes: true})
	var buf bytes.Buffer
	require.Nil(t, parser.Write(&buf, f))

	back, err := parser.Parse(&buf, nil)
	require.Nil(t, err)
	require.Equal(t, []string{"name", "count", "ok"}, back.ColumnNames())
	names, _ := back.Strings("name")
	require.Equal(t, []string{"a", "b"}, names)
	counts, _ := back.Values("count")
	require.Equal(t, []interface{}{int64(4), int64(7)}, counts)
	oks, _ := back.Values("ok")
	require.Equal(t, []interface{}{true, false}, oks)
}
