package datasource

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/schema"
)

// RecordConf configures FromRecords
type RecordConf struct {
	NilValue   string // A special string which represents nil values. The empty string is always nil.
	InferTypes bool   // Without a Schema, infer Int64, Float64 and Bool columns. Defaults to reading every column as VarString.
}

// FromRecords builds a Frame from rows of text fields. With a nil Schema, columns are named
// by header (or col_{i} where the header is short) and typed by InferType.
func FromRecords(header []string, records [][]string, s tabular.Schema, conf *RecordConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &RecordConf{}
	}
	if s == nil {
		width := len(header)
		for _, rec := range records {
			if len(rec) > width {
				width = len(rec)
			}
		}
		s = schema.CreateSchema()
		for i := 0; i < width; i++ {
			name := fmt.Sprintf("col_%d", i)
			if i < len(header) && header[i] != "" {
				name = header[i]
			}
			var colType tabular.ColumnType = &tabular.VarStringColumnType{}
			if conf.InferTypes {
				colType = InferType(column(records, i), conf.NilValue)
			}
			if _, err := s.CreateColumn(name, colType); err != nil {
				return nil, err
			}
		}
	}
	names, types := s.ColumnNames(), s.ColumnTypes()
	result := frame.New(s)
	for r, rec := range records {
		if len(rec) > len(names) {
			return nil, errors.IncompatibleRowError{Want: len(names), Got: len(rec)}
		}
		row := make([]interface{}, len(names))
		for i := range rec {
			if isNil(rec[i], conf.NilValue) {
				continue
			}
			v, err := ParseValue(types[i], rec[i])
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", r, names[i], err)
			}
			row[i] = v
		}
		if err := result.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func isNil(s string, nilValue string) bool {
	return len(s) == 0 || s == nilValue
}

func column(records [][]string, i int) []string {
	result := make([]string, 0, len(records))
	for _, rec := range records {
		if i < len(rec) {
			result = append(result, rec[i])
		}
	}
	return result
}

// InferType returns the narrowest of Int64, Float64 and Bool which can hold every non-nil
// value, or VarString
func InferType(values []string, nilValue string) tabular.ColumnType {
	isInt, isFloat, isBool, seen := true, true, true, false
	for _, v := range values {
		if isNil(v, nilValue) {
			continue
		}
		seen = true
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if _, err := strconv.ParseBool(v); err != nil {
				isBool = false
			}
		}
	}
	switch {
	case !seen:
		return &tabular.VarStringColumnType{}
	case isInt:
		return &tabular.Int64ColumnType{}
	case isFloat:
		return &tabular.Float64ColumnType{}
	case isBool:
		return &tabular.BoolColumnType{}
	}
	return &tabular.VarStringColumnType{}
}

// ParseValue parses a text field into a value of the given ColumnType
func ParseValue(colType tabular.ColumnType, s string) (interface{}, error) {
	switch t := colType.(type) {
	case *tabular.BoolColumnType:
		return strconv.ParseBool(s)
	case *tabular.Int64ColumnType:
		return strconv.ParseInt(s, 10, 64)
	case *tabular.Float64ColumnType:
		return strconv.ParseFloat(s, 64)
	case *tabular.TimeColumnType:
		v, err := time.Parse(t.Layout(), s)
		if err != nil {
			return nil, fmt.Errorf("could not be parsed as datetime with format %s. Was: %#v", t.Layout(), s)
		}
		return v, nil
	case *tabular.CategoryColumnType:
		if !t.Accepts(s) {
			return nil, fmt.Errorf("%#v is not a level", s)
		}
		return s, nil
	case *tabular.VarStringColumnType:
		return s, nil
	}
	return nil, fmt.Errorf("parsing does not support column type %T", colType)
}
