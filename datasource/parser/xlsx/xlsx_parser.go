// Package xlsx reads and writes Excel workbooks as Frames, using https://github.com/xuri/excelize
package xlsx

import (
	"fmt"
	"io"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/datasource"
	"github.com/go-sif/tabular/frame"
	"github.com/xuri/excelize/v2"
)

// ParserConf configures an XLSX Parser
type ParserConf struct {
	Sheet       string // The sheet to read or write. Defaults to the first sheet when reading, and "Sheet1" when writing.
	HeaderLines int    // The number of rows to ignore from the top of the sheet. Without a Schema, the first of them names the columns. Defaults to 0.
	NilValue    string // A special string which represents nil values in the sheet. Empty cells are always nil.
	InferTypes  bool   // Without a Schema, infer numeric and boolean columns. Defaults to VarString columns.
}

// Parser produces Frames from a sheet of an Excel workbook
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new XLSX Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf == nil {
		conf = &ParserConf{}
	}
	return &Parser{conf: conf}
}

// Parse reads the configured sheet of a workbook into a Frame
func (p *Parser) Parse(r io.Reader, schema tabular.Schema) (*frame.Frame, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	sheet := p.conf.Sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	var header []string
	if p.conf.HeaderLines > 0 && len(rows) > 0 {
		header = rows[0]
	}
	if p.conf.HeaderLines >= len(rows) {
		rows = nil
	} else {
		rows = rows[p.conf.HeaderLines:]
	}
	return datasource.FromRecords(header, rows, schema, &datasource.RecordConf{
		NilValue:   p.conf.NilValue,
		InferTypes: p.conf.InferTypes,
	})
}

// Write writes f to a new workbook with a single sheet, starting with a row of column
// names. Numeric and boolean values are written as such, nil values as empty cells and
// everything else as text.
func (p *Parser) Write(w io.Writer, f *frame.Frame) error {
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := p.conf.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := wb.SetSheetName(wb.GetSheetName(0), sheet); err != nil {
		return err
	}
	header, rows := f.Records()
	types := f.Schema().ColumnTypes()
	headerRow := make([]interface{}, len(header))
	for i, name := range header {
		headerRow[i] = name
	}
	if err := setRow(wb, sheet, 1, headerRow); err != nil {
		return err
	}
	for r, row := range rows {
		cells := make([]interface{}, len(header))
		for c, name := range header {
			v, _ := f.Value(name, r)
			switch {
			case v == nil:
				cells[c] = nil
			case types[c].IsNumeric():
				cells[c] = v
			default:
				if _, ok := types[c].(*tabular.BoolColumnType); ok {
					cells[c] = v
				} else {
					cells[c] = row[c]
				}
			}
		}
		if err := setRow(wb, sheet, r+2, cells); err != nil {
			return err
		}
	}
	return wb.Write(w)
}

func setRow(wb *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(sheet, cell, &cells)
}
