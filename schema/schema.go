package schema

import (
	"fmt"
	"reflect"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
)

// Column describes the position and type of a field in a Row.
type column struct {
	idx     int
	colType tabular.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() tabular.Column {
	return &column{c.idx, c.colType}
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// SetIndex modifies the index of this Column within a Schema
func (c *column) SetIndex(newIndex int) {
	c.idx = newIndex
}

// Type returns the ColumnType of this Column
func (c *column) Type() tabular.ColumnType {
	return c.colType
}

// Schema is an ordered mapping from column names to Columns.
// It allows one to obtain Columns by name, define new columns,
// remove columns, etc.
type schema struct {
	schema map[string]tabular.Column
}

// CreateSchema is a factory for Schemas
func CreateSchema() tabular.Schema {
	return &schema{
		schema: make(map[string]tabular.Column),
	}
}

// Equals returns nil iff this and another Schema are equivalent
func (s *schema) Equals(otherSchema tabular.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	return s.ForEachColumn(func(name string, col tabular.Column) error {
		otherCol, err := otherSchema.GetColumn(name)
		if err != nil {
			return err
		}
		if col.Index() != otherCol.Index() {
			return fmt.Errorf("Column %s indices do not match", name)
		}
		if reflect.TypeOf(col.Type()) != reflect.TypeOf(otherCol.Type()) {
			return fmt.Errorf("Column %s types do not match", name)
		}
		return nil
	})
}

// Clone returns a copy of this Schema
func (s *schema) Clone() tabular.Schema {
	newSchema := make(map[string]tabular.Column)
	for k, v := range s.schema {
		newSchema[k] = v.Clone()
	}
	return &schema{schema: newSchema}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.schema)
}

// GetColumn returns the Column with the given name
func (s *schema) GetColumn(colName string) (col tabular.Column, err error) {
	col, ok := s.schema[colName]
	if !ok {
		err = errors.MissingColumnError{Name: colName}
	}
	return
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.schema[colName]
	return ok
}

// CreateColumn defines a new column at the end of the Schema
func (s *schema) CreateColumn(colName string, columnType tabular.ColumnType) (newSchema tabular.Schema, err error) {
	_, containsColumn := s.schema[colName]
	if containsColumn {
		err = errors.DuplicateColumnError{Name: colName}
	} else if columnType == nil {
		err = fmt.Errorf("Column %s must have a type", colName)
	} else {
		s.schema[colName] = &column{len(s.schema), columnType}
		newSchema = s
	}
	return
}

// RenameColumn renames a column within the Schema, retaining its position
func (s *schema) RenameColumn(oldName string, newName string) (newSchema tabular.Schema, err error) {
	if oldName == newName {
		_, err = s.GetColumn(oldName)
		return s, err
	}
	if s.HasColumn(newName) {
		return nil, errors.DuplicateColumnError{Name: newName}
	}
	_, err = s.GetColumn(oldName)
	if err == nil {
		s.schema[newName] = s.schema[oldName]
		delete(s.schema, oldName)
		newSchema = s
	}
	return
}

// RemoveColumn removes a column from the Schema, shifting the columns after it
// so that indices remain dense
func (s *schema) RemoveColumn(colName string) (tabular.Schema, error) {
	removed, ok := s.schema[colName]
	if !ok {
		return nil, errors.MissingColumnError{Name: colName}
	}
	delete(s.schema, colName)
	for _, col := range s.schema {
		if col.Index() > removed.Index() {
			col.SetIndex(col.Index() - 1)
		}
	}
	return s, nil
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.schema))
	for k, v := range s.schema {
		names[v.Index()] = k
	}
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []tabular.ColumnType {
	types := make([]tabular.ColumnType, len(s.schema))
	for _, v := range s.schema {
		types[v.Index()] = v.Type()
	}
	return types
}

// NumericColumnNames returns the names of numeric columns in the schema, in index order
func (s *schema) NumericColumnNames() []string {
	names := s.ColumnNames()
	types := s.ColumnTypes()
	numeric := make([]string, 0, len(names))
	for i, name := range names {
		if tabular.IsNumeric(types[i]) {
			numeric = append(numeric, name)
		}
	}
	return numeric
}

// ForEachColumn iterates over the columns in this Schema, in order of column index.
func (s *schema) ForEachColumn(fn func(name string, col tabular.Column) error) error {
	for _, k := range s.ColumnNames() {
		err := fn(k, s.schema[k])
		if err != nil {
			return err
		}
	}
	return nil
}
