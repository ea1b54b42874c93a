package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/schema"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	HeaderLines   int  // The number of lines to ignore from the beginning of each file. Defaults to 0.
	Comment       rune // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int  // Maximum size in bytes of the buffer used to read lines from the file
}

// Parser produces Frames from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are parsed from each row of JSON using their column name, which should be a gjson path. Values within the JSON which do not correspond to a Schema column are ignored.
func CreateParser(conf *ParserConf) *Parser {
	if conf == nil {
		conf = &ParserConf{}
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// Parse parses JSONL data to produce a Frame. With a nil Schema, the columns are the
// top-level keys of the first object, typed by their JSON values.
func (p *Parser) Parse(r io.Reader, s tabular.Schema) (*frame.Frame, error) {
	// start parsing by creating a scanner
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines && scanner.Scan(); i++ {
	}
	var result *frame.Frame
	var colNames []string
	var colTypes []tabular.ColumnType
	lineNum := p.conf.HeaderLines
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || (p.conf.Comment != 0 && strings.HasPrefix(line, string(p.conf.Comment))) {
			continue
		}
		if !gjson.Valid(line) {
			return nil, fmt.Errorf("line %d is not valid JSON: %s", lineNum, line)
		}
		doc := gjson.Parse(line)
		if result == nil {
			if s == nil {
				var err error
				if s, err = inferSchema(doc); err != nil {
					return nil, err
				}
			}
			result = frame.New(s)
			colNames, colTypes = s.ColumnNames(), s.ColumnTypes()
		}
		row := make([]interface{}, len(colNames))
		if err := ParseJSONRow(colNames, colTypes, doc, row); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if err := result.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		return frame.New(s), nil
	}
	return result, nil
}

func inferSchema(doc gjson.Result) (tabular.Schema, error) {
	if !doc.IsObject() {
		return nil, fmt.Errorf("cannot infer columns from a JSON %s", doc.Type.String())
	}
	s := schema.CreateSchema()
	var err error
	doc.ForEach(func(key, value gjson.Result) bool {
		var colType tabular.ColumnType
		switch value.Type {
		case gjson.Number:
			colType = &tabular.Float64ColumnType{}
		case gjson.True, gjson.False:
			colType = &tabular.BoolColumnType{}
		default:
			colType = &tabular.VarStringColumnType{}
		}
		_, err = s.CreateColumn(gjson.Escape(key.String()), colType)
		return err == nil
	})
	return s, err
}
