package frame

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
)

// rowImpl is a view of a single row of a Frame. Reads and writes go
// straight through to the Frame's column storage.
type rowImpl struct {
	frame *Frame
	pos   int
}

// Schema returns a read-only copy of the schema for a row
func (r *rowImpl) Schema() tabular.Schema {
	return r.frame.schema.Clone()
}

// Index returns the label of this row
func (r *rowImpl) Index() int {
	return r.frame.index[r.pos]
}

// Position returns the position of this row within its Frame
func (r *rowImpl) Position() int {
	return r.pos
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	r.frame.schema.ForEachColumn(func(name string, col tabular.Column) error {
		v := r.frame.data[name][r.pos]
		var val string
		if v == nil {
			val = "nil"
		} else if _, isString := v.(string); isString {
			val = fmt.Sprintf("%q", v)
		} else {
			val = col.Type().ToString(v)
		}
		fmt.Fprintf(&res, "\"%s\": %s,", name, val)
		return nil
	})
	fmt.Fprint(&res, "}")
	return res.String()
}

// IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
func (r *rowImpl) IsNil(colName string) bool {
	return r.frame.IsNil(colName, r.pos)
}

// SetNil sets the given column value to nil within this row
func (r *rowImpl) SetNil(colName string) error {
	vals, ok := r.frame.data[colName]
	if !ok {
		return errors.MissingColumnError{Name: colName}
	}
	vals[r.pos] = nil
	return nil
}

// Get returns the value of any column as an interface{}, if it exists
func (r *rowImpl) Get(colName string) (interface{}, error) {
	return r.frame.Value(colName, r.pos)
}

func (r *rowImpl) getNonNil(colName string) (interface{}, tabular.ColumnType, error) {
	colType, err := r.frame.ColumnType(colName)
	if err != nil {
		return nil, nil, err
	}
	v := r.frame.data[colName][r.pos]
	if v == nil {
		return nil, nil, errors.NilValueError{Name: colName}
	}
	return v, colType, nil
}

// GetBool retrieves a single bool column from this row
func (r *rowImpl) GetBool(colName string) (bool, error) {
	v, colType, err := r.getNonNil(colName)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.IncompatibleTypeError{Name: colName, Want: "bool", Got: colType.Name()}
	}
	return b, nil
}

// GetInt64 retrieves a single numeric column from this row as an int64. Float values are truncated.
func (r *rowImpl) GetInt64(colName string) (int64, error) {
	v, colType, err := r.getNonNil(colName)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	}
	return 0, errors.IncompatibleTypeError{Name: colName, Want: "int64", Got: colType.Name()}
}

// GetFloat64 retrieves a single numeric column from this row as a float64
func (r *rowImpl) GetFloat64(colName string) (float64, error) {
	v, colType, err := r.getNonNil(colName)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat64(v)
	if !ok {
		return 0, errors.IncompatibleTypeError{Name: colName, Want: "float64", Got: colType.Name()}
	}
	return f, nil
}

// GetString retrieves a single string or category column from this row
func (r *rowImpl) GetString(colName string) (string, error) {
	v, colType, err := r.getNonNil(colName)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.IncompatibleTypeError{Name: colName, Want: "string", Got: colType.Name()}
	}
	return s, nil
}

// GetTime retrieves a single time column from this row
func (r *rowImpl) GetTime(colName string) (time.Time, error) {
	v, colType, err := r.getNonNil(colName)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, errors.IncompatibleTypeError{Name: colName, Want: "time", Got: colType.Name()}
	}
	return t, nil
}

// Set modifies the value of any column, validating it against the column's type
func (r *rowImpl) Set(colName string, value interface{}) error {
	colType, err := r.frame.ColumnType(colName)
	if err != nil {
		return err
	}
	nv, err := normalize(colName, colType, value)
	if err != nil {
		return err
	}
	r.frame.data[colName][r.pos] = nv
	return nil
}

// SetBool modifies a single bool column in this row
func (r *rowImpl) SetBool(colName string, value bool) error {
	return r.Set(colName, value)
}

// SetInt64 modifies a single int64 column in this row
func (r *rowImpl) SetInt64(colName string, value int64) error {
	return r.Set(colName, value)
}

// SetFloat64 modifies a single float64 column in this row. NaN is stored as nil.
func (r *rowImpl) SetFloat64(colName string, value float64) error {
	if math.IsNaN(value) {
		return r.SetNil(colName)
	}
	return r.Set(colName, value)
}

// SetString modifies a single string or category column in this row
func (r *rowImpl) SetString(colName string, value string) error {
	return r.Set(colName, value)
}

// SetTime modifies a single time column in this row
func (r *rowImpl) SetTime(colName string, value time.Time) error {
	return r.Set(colName, value)
}
