package tabular

import "time"

// Row is a view of a single row of a table, along with the Schema
// of that row. In practice, users of Row will call its getter and
// setter methods to retrieve, manipulate and store data. Numeric
// getters coerce between numeric column types.
type Row interface {
	Schema() Schema                                      // Schema returns a read-only copy of the schema for a row
	Index() int                                          // Index returns the label of this row within the table's index
	Position() int                                       // Position returns the 0-based position of this row within its table
	ToString() string                                    // ToString returns a string representation of this row
	IsNil(colName string) bool                           // IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
	SetNil(colName string) error                         // SetNil sets the given column value to nil within this row
	Get(colName string) (col interface{}, err error)     // Get returns the value of any column as an interface{}, if it exists
	GetBool(colName string) (bool, error)                // GetBool retrieves a single bool column from this row
	GetInt64(colName string) (int64, error)              // GetInt64 retrieves a single numeric column from this row as an int64
	GetFloat64(colName string) (float64, error)          // GetFloat64 retrieves a single numeric column from this row as a float64
	GetString(colName string) (string, error)            // GetString retrieves a single string or category column from this row
	GetTime(colName string) (time.Time, error)           // GetTime retrieves a single time column from this row
	Set(colName string, value interface{}) error         // Set modifies the value of any column, validating it against the column's type
	SetBool(colName string, value bool) error            // SetBool modifies a single bool column in this row
	SetInt64(colName string, value int64) error          // SetInt64 modifies a single int64 column in this row
	SetFloat64(colName string, value float64) error      // SetFloat64 modifies a single float64 column in this row. NaN is stored as nil.
	SetString(colName string, value string) error        // SetString modifies a single string or category column in this row
	SetTime(colName string, value time.Time) error       // SetTime modifies a single time column in this row
}
