package jsonl

import (
	"fmt"
	"time"

	"github.com/go-sif/tabular"
	"github.com/tidwall/gjson"
)

func parseValue(val gjson.Result, colName string, colType tabular.ColumnType) (interface{}, error) {
	// parse type
	switch t := colType.(type) {
	case *tabular.BoolColumnType:
		if val.Type != gjson.True && val.Type != gjson.False {
			return nil, fmt.Errorf("Column %s was not a boolean. Was: %s", colName, val.Raw)
		}
		return val.Bool(), nil
	case *tabular.Int64ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		return val.Int(), nil
	case *tabular.Float64ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		return val.Float(), nil
	case *tabular.TimeColumnType:
		tval, err := time.Parse(t.Layout(), val.String())
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as datetime with format %s. Was: %s", colName, t.Layout(), val.Raw)
		}
		return tval, nil
	case *tabular.CategoryColumnType:
		if val.Type != gjson.String || !t.Accepts(val.Str) {
			return nil, fmt.Errorf("Column %s was not a level. Was: %s", colName, val.Raw)
		}
		return val.Str, nil
	case *tabular.VarStringColumnType:
		if val.Type == gjson.String {
			return val.Str, nil
		}
		return val.Raw, nil
	}
	return nil, fmt.Errorf("JSONL parsing does not support column type %T", colType)
}

// ParseJSONRow fills row with the values located by each column name, used as a gjson
// path. Missing and null values are nil.
func ParseJSONRow(colNames []string, colTypes []tabular.ColumnType, doc gjson.Result, row []interface{}) error {
	for idx, colName := range colNames {
		val := doc.Get(colName)
		if !val.Exists() || val.Type == gjson.Null {
			row[idx] = nil
			continue
		}
		v, err := parseValue(val, colName, colTypes[idx])
		if err != nil {
			return err
		}
		row[idx] = v
	}
	return nil
}
