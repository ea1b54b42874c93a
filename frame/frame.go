// Package frame provides Frame, an in-memory table of named, homogeneously typed columns
// with a row index. Frames are the unit of data for every other package in tabular: helpers
// receive a Frame, work on a Copy, and return a new Frame (or column, or scalar).
package frame

import (
	"fmt"
	"math"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	iutil "github.com/go-sif/tabular/internal/util"
	"github.com/go-sif/tabular/schema"
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
)

// NilString is the text representation of a nil value
const NilString = "nan"

// Operation is a generic Frame transform, producing a new Frame from an existing one
type Operation func(f *Frame) (*Frame, error)

// Frame is an ordered collection of named columns, each a homogeneously typed
// sequence of values, with an index of integer row labels. Missing values are
// stored as nil.
type Frame struct {
	id     string
	schema tabular.Schema
	data   map[string][]interface{}
	index  []int
}

// New creates an empty Frame with the given Schema
func New(s tabular.Schema) *Frame {
	f := &Frame{
		id:     newID(),
		schema: schema.CreateSchema(),
		data:   make(map[string][]interface{}),
	}
	if s != nil {
		f.schema = s.Clone()
		for _, name := range s.ColumnNames() {
			f.data[name] = []interface{}{}
		}
	}
	return f
}

// FromCols builds a Frame from a list of columns, which must all have the same length
func FromCols(cols ...Col) (*Frame, error) {
	f := New(nil)
	for i, c := range cols {
		if i == 0 {
			f.index = defaultIndex(len(c.Values))
		}
		if err := f.AddColumn(c.Name, c.Type, c.Values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func newID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}

func defaultIndex(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// ID returns the unique ID of this Frame
func (f *Frame) ID() string {
	return f.id
}

// Schema returns a copy of the Schema of this Frame
func (f *Frame) Schema() tabular.Schema {
	return f.schema.Clone()
}

// NumRows returns the number of rows in this Frame
func (f *Frame) NumRows() int {
	return len(f.index)
}

// NumColumns returns the number of columns in this Frame
func (f *Frame) NumColumns() int {
	return f.schema.NumColumns()
}

// ColumnNames returns the names of the columns of this Frame, in order
func (f *Frame) ColumnNames() []string {
	return f.schema.ColumnNames()
}

// HasColumn returns true iff this Frame has a column with the given name
func (f *Frame) HasColumn(colName string) bool {
	return f.schema.HasColumn(colName)
}

// ColumnType returns the type of the given column
func (f *Frame) ColumnType(colName string) (tabular.ColumnType, error) {
	col, err := f.schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	return col.Type(), nil
}

// Index returns a copy of the row labels of this Frame
func (f *Frame) Index() []int {
	return append([]int(nil), f.index...)
}

// Label returns the row label at the given position
func (f *Frame) Label(pos int) int {
	return f.index[pos]
}

// SetIndex replaces the row labels of this Frame
func (f *Frame) SetIndex(labels []int) error {
	if len(labels) != f.NumRows() {
		return errors.IncompatibleRowError{Want: f.NumRows(), Got: len(labels)}
	}
	f.index = append([]int(nil), labels...)
	return nil
}

// ResetIndex relabels the rows of this Frame as 0..n-1
func (f *Frame) ResetIndex() {
	f.index = defaultIndex(f.NumRows())
}

// Value returns the value of a column at a row position. Missing values are nil.
func (f *Frame) Value(colName string, pos int) (interface{}, error) {
	vals, ok := f.data[colName]
	if !ok {
		return nil, errors.MissingColumnError{Name: colName}
	}
	if pos < 0 || pos >= len(vals) {
		return nil, fmt.Errorf("Row position %d is out of range [0, %d)", pos, len(vals))
	}
	return vals[pos], nil
}

// IsNil returns true iff the value of a column at a row position is missing. Unknown columns are never nil.
func (f *Frame) IsNil(colName string, pos int) bool {
	vals, ok := f.data[colName]
	if !ok {
		return false
	}
	return vals[pos] == nil
}

// Values returns a copy of the values of a column
func (f *Frame) Values(colName string) ([]interface{}, error) {
	vals, ok := f.data[colName]
	if !ok {
		return nil, errors.MissingColumnError{Name: colName}
	}
	return append([]interface{}(nil), vals...), nil
}

// Float64s returns the values of a numeric (or bool) column as float64s. Missing values are NaN.
func (f *Frame) Float64s(colName string) ([]float64, error) {
	colType, err := f.ColumnType(colName)
	if err != nil {
		return nil, err
	}
	vals := f.data[colName]
	result := make([]float64, len(vals))
	for i, v := range vals {
		if v == nil {
			result[i] = math.NaN()
			continue
		}
		fv, ok := toFloat64(v)
		if !ok {
			return nil, errors.IncompatibleTypeError{Name: colName, Want: "numeric", Got: colType.Name()}
		}
		result[i] = fv
	}
	return result, nil
}

// Strings returns the text representation of the values of a column. Missing values are NilString.
func (f *Frame) Strings(colName string) ([]string, error) {
	colType, err := f.ColumnType(colName)
	if err != nil {
		return nil, err
	}
	vals := f.data[colName]
	result := make([]string, len(vals))
	for i, v := range vals {
		if v == nil {
			result[i] = NilString
		} else {
			result[i] = colType.ToString(v)
		}
	}
	return result, nil
}

// Count returns the number of non-nil values in a column
func (f *Frame) Count(colName string) (int, error) {
	vals, ok := f.data[colName]
	if !ok {
		return 0, errors.MissingColumnError{Name: colName}
	}
	n := 0
	for _, v := range vals {
		if v != nil {
			n++
		}
	}
	return n, nil
}

// Row returns a view of the row at the given position
func (f *Frame) Row(pos int) tabular.Row {
	return &rowImpl{frame: f, pos: pos}
}

// Copy returns a deep copy of this Frame, with a new ID
func (f *Frame) Copy() *Frame {
	data := make(map[string][]interface{}, len(f.data))
	for k, v := range f.data {
		data[k] = append([]interface{}(nil), v...)
	}
	return &Frame{
		id:     newID(),
		schema: f.schema.Clone(),
		data:   data,
		index:  f.Index(),
	}
}

// AppendRow appends a row of values, in column order, to this Frame
func (f *Frame) AppendRow(values ...interface{}) error {
	names := f.schema.ColumnNames()
	types := f.schema.ColumnTypes()
	if len(values) != len(names) {
		return errors.IncompatibleRowError{Want: len(names), Got: len(values)}
	}
	normalized := make([]interface{}, len(values))
	for i, v := range values {
		nv, err := normalize(names[i], types[i], v)
		if err != nil {
			return err
		}
		normalized[i] = nv
	}
	for i, name := range names {
		f.data[name] = append(f.data[name], normalized[i])
	}
	label := 0
	if n := len(f.index); n > 0 {
		label = f.index[n-1] + 1
	}
	f.index = append(f.index, label)
	return nil
}

// AddColumn appends a new column to this Frame
func (f *Frame) AddColumn(colName string, colType tabular.ColumnType, values []interface{}) error {
	if f.schema.NumColumns() == 0 && f.NumRows() == 0 && len(f.index) == 0 {
		f.index = defaultIndex(len(values))
	}
	if len(values) != f.NumRows() {
		return errors.IncompatibleRowError{Want: f.NumRows(), Got: len(values)}
	}
	normalized, err := normalizeAll(colName, colType, values)
	if err != nil {
		return err
	}
	if _, err := f.schema.CreateColumn(colName, colType); err != nil {
		return err
	}
	f.data[colName] = normalized
	return nil
}

// SetColumn replaces the values and type of a column, keeping its position, or appends it if it does not exist
func (f *Frame) SetColumn(colName string, colType tabular.ColumnType, values []interface{}) error {
	if !f.HasColumn(colName) {
		return f.AddColumn(colName, colType, values)
	}
	if len(values) != f.NumRows() {
		return errors.IncompatibleRowError{Want: f.NumRows(), Got: len(values)}
	}
	normalized, err := normalizeAll(colName, colType, values)
	if err != nil {
		return err
	}
	names := f.schema.ColumnNames()
	types := f.schema.ColumnTypes()
	newSchema := schema.CreateSchema()
	for i, name := range names {
		t := types[i]
		if name == colName {
			t = colType
		}
		if _, err := newSchema.CreateColumn(name, t); err != nil {
			return err
		}
	}
	f.schema = newSchema
	f.data[colName] = normalized
	return nil
}

// SetFloat64s replaces (or adds) a Float64 column. NaN values are stored as nil.
func (f *Frame) SetFloat64s(colName string, values []float64) error {
	return f.SetColumn(colName, &tabular.Float64ColumnType{}, Float64Col(colName, values...).Values)
}

// SetInt64s replaces (or adds) an Int64 column
func (f *Frame) SetInt64s(colName string, values []int64) error {
	return f.SetColumn(colName, &tabular.Int64ColumnType{}, Int64Col(colName, values...).Values)
}

// SetBools replaces (or adds) a Bool column
func (f *Frame) SetBools(colName string, values []bool) error {
	return f.SetColumn(colName, &tabular.BoolColumnType{}, BoolCol(colName, values...).Values)
}

// SetStrings replaces (or adds) a VarString column
func (f *Frame) SetStrings(colName string, values []string) error {
	return f.SetColumn(colName, &tabular.VarStringColumnType{}, StringCol(colName, values...).Values)
}

// SetCategories replaces (or adds) a Category column with the given levels. Values must be strings or nil.
func (f *Frame) SetCategories(colName string, levels []string, values []interface{}) error {
	return f.SetColumn(colName, &tabular.CategoryColumnType{Levels: append([]string(nil), levels...)}, values)
}

// RemoveColumn removes columns from this Frame
func (f *Frame) RemoveColumn(colNames ...string) error {
	for _, colName := range colNames {
		if _, err := f.schema.RemoveColumn(colName); err != nil {
			return err
		}
		delete(f.data, colName)
	}
	return nil
}

// RenameColumn renames a column of this Frame
func (f *Frame) RenameColumn(oldName string, newName string) error {
	if _, err := f.schema.RenameColumn(oldName, newName); err != nil {
		return err
	}
	if oldName != newName {
		f.data[newName] = f.data[oldName]
		delete(f.data, oldName)
	}
	return nil
}

// Select returns a new Frame containing only the given columns, in the given order
func (f *Frame) Select(colNames ...string) (*Frame, error) {
	result := New(nil)
	result.index = f.Index()
	for _, colName := range colNames {
		colType, err := f.ColumnType(colName)
		if err != nil {
			return nil, err
		}
		if _, err := result.schema.CreateColumn(colName, colType); err != nil {
			return nil, err
		}
		result.data[colName] = append([]interface{}(nil), f.data[colName]...)
	}
	return result, nil
}

// Take returns a new Frame containing the rows at the given positions, in the given order. Row labels are retained.
func (f *Frame) Take(positions []int) *Frame {
	result := &Frame{
		id:     newID(),
		schema: f.schema.Clone(),
		data:   make(map[string][]interface{}, len(f.data)),
		index:  make([]int, len(positions)),
	}
	for i, p := range positions {
		result.index[i] = f.index[p]
	}
	for name, vals := range f.data {
		col := make([]interface{}, len(positions))
		for i, p := range positions {
			col[i] = vals[p]
		}
		result.data[name] = col
	}
	return result
}

// Head returns a new Frame containing at most the first n rows of this Frame
func (f *Frame) Head(n int) *Frame {
	if n > f.NumRows() || n < 0 {
		n = f.NumRows()
	}
	return f.Take(defaultIndex(n))
}

// MapRows transforms every Row of this Frame in place. Errors from individual rows
// are collected and returned together once all rows have been visited.
func (f *Frame) MapRows(fn tabular.MapOperation) error {
	safeFn := iutil.SafeMapOperation(fn)
	var multierr *multierror.Error
	for i := 0; i < f.NumRows(); i++ {
		if err := safeFn(f.Row(i)); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}

// Filter returns a new Frame containing the rows for which fn returns true. Errors from individual rows
// are collected and returned together once all rows have been visited.
func (f *Frame) Filter(fn tabular.FilterOperation) (*Frame, error) {
	safeFn := iutil.SafeFilterOperation(fn)
	var multierr *multierror.Error
	keep := make([]int, 0, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		shouldKeep, err := safeFn(f.Row(i))
		if err != nil {
			multierr = multierror.Append(multierr, err)
		} else if shouldKeep {
			keep = append(keep, i)
		}
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return f.Take(keep), nil
}

// To applies a series of Operations to this Frame, in order, returning the final result.
// The original Frame is never modified.
func (f *Frame) To(ops ...Operation) (*Frame, error) {
	next := f
	for _, op := range ops {
		result, err := op(next)
		if err != nil {
			return nil, err
		}
		next = result
	}
	if next == f {
		return f.Copy(), nil
	}
	return next, nil
}

func normalizeAll(colName string, colType tabular.ColumnType, values []interface{}) ([]interface{}, error) {
	normalized := make([]interface{}, len(values))
	for i, v := range values {
		nv, err := normalize(colName, colType, v)
		if err != nil {
			return nil, err
		}
		normalized[i] = nv
	}
	return normalized, nil
}

// normalize coerces a value to the canonical representation of a column type
func normalize(colName string, colType tabular.ColumnType, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch colType.(type) {
	case *tabular.Float64ColumnType:
		fv, ok := toFloat64(v)
		if _, isBool := v.(bool); ok && !isBool {
			if math.IsNaN(fv) {
				return nil, nil
			}
			return fv, nil
		}
	case *tabular.Int64ColumnType:
		switch iv := v.(type) {
		case int:
			return int64(iv), nil
		case int32:
			return int64(iv), nil
		}
	}
	if !colType.Accepts(v) {
		return nil, errors.IncompatibleTypeError{Name: colName, Want: colType.Name(), Got: fmt.Sprintf("%T", v)}
	}
	return v, nil
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
