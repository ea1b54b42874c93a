// Package dsv reads and writes delimiter-separated text (CSV, TSV) as Frames.
package dsv

import (
	"encoding/csv"
	"io"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/datasource"
	"github.com/go-sif/tabular/frame"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	HeaderLines int    // The number of lines to ignore from the beginning of each file. Without a Schema, the first of them names the columns. Defaults to 0.
	Delimiter   rune   // The delimiter separating columns in the file. Defaults to ,
	Comment     rune   // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue    string // A special string which represents nil values in the dataset. Defaults to "" (the empty string).
	InferTypes  bool   // Without a Schema, infer numeric and boolean columns. Defaults to VarString columns.
}

// Parser produces Frames from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf == nil {
		conf = &ParserConf{}
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Parser{conf: conf}
}

// Parse parses DSV data to produce a Frame
func (p *Parser) Parse(r io.Reader, schema tabular.Schema) (*frame.Frame, error) {
	// start parsing by creating a reader
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.FieldsPerRecord = -1
	if schema != nil {
		reader.FieldsPerRecord = schema.NumColumns()
	}

	// ignore header lines, if configured to do so
	var header []string
	for i := 0; i < p.conf.HeaderLines; i++ {
		line, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if i == 0 {
			header = line
		}
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return datasource.FromRecords(header, records, schema, &datasource.RecordConf{
		NilValue:   p.conf.NilValue,
		InferTypes: p.conf.InferTypes,
	})
}

// Write writes f as DSV, starting with a header line of column names. Nil values are
// written as the configured NilValue.
func (p *Parser) Write(w io.Writer, f *frame.Frame) error {
	writer := csv.NewWriter(w)
	writer.Comma = p.conf.Delimiter
	header, rows := f.Records()
	if err := writer.Write(header); err != nil {
		return err
	}
	for r, row := range rows {
		for c, name := range header {
			if f.IsNil(name, r) {
				row[c] = p.conf.NilValue
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
