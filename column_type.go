package tabular

import (
	"math"
	"strconv"
	"time"
)

// ColumnType is the type of a Column
type ColumnType interface {
	Name() string                  // Name returns a short, human-readable name for this ColumnType
	IsNumeric() bool               // IsNumeric returns true iff values of this type can be read as a float64
	Accepts(v interface{}) bool    // Accepts returns true iff v is a valid, non-nil value for this ColumnType
	ToString(v interface{}) string // ToString produces a string representation of a value of this ColumnType
}

// IsNumeric returns true iff the given ColumnType holds numeric values
func IsNumeric(colType ColumnType) bool {
	return colType != nil && colType.IsNumeric()
}

// FormatFloat produces the canonical string representation of a float64 value,
// as used in labels and text output
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Name returns the name of this ColumnType
func (b *BoolColumnType) Name() string {
	return "bool"
}

// IsNumeric returns false, as booleans are not treated as numbers
func (b *BoolColumnType) IsNumeric() bool {
	return false
}

// Accepts returns true iff v is a bool
func (b *BoolColumnType) Accepts(v interface{}) bool {
	_, ok := v.(bool)
	return ok
}

// ToString produces a string representation of a value of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return strconv.FormatBool(v.(bool))
}

// Int64ColumnType is a column type which stores an int64 value
type Int64ColumnType struct{}

// Name returns the name of this ColumnType
func (b *Int64ColumnType) Name() string {
	return "int64"
}

// IsNumeric returns true
func (b *Int64ColumnType) IsNumeric() bool {
	return true
}

// Accepts returns true iff v is an int64
func (b *Int64ColumnType) Accepts(v interface{}) bool {
	_, ok := v.(int64)
	return ok
}

// ToString produces a string representation of a value of a Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return strconv.FormatInt(v.(int64), 10)
}

// Float64ColumnType is a column type which stores a float64 value.
// NaN is never stored; it is represented by nil.
type Float64ColumnType struct{}

// Name returns the name of this ColumnType
func (b *Float64ColumnType) Name() string {
	return "float64"
}

// IsNumeric returns true
func (b *Float64ColumnType) IsNumeric() bool {
	return true
}

// Accepts returns true iff v is a float64 which is not NaN
func (b *Float64ColumnType) Accepts(v interface{}) bool {
	f, ok := v.(float64)
	return ok && !math.IsNaN(f)
}

// ToString produces a string representation of a value of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return FormatFloat(v.(float64))
}

// TimeColumnType is a column type which stores a time.Time value
type TimeColumnType struct {
	Format string // Format is the layout used to parse and print values. Defaults to time.RFC3339.
}

// Name returns the name of this ColumnType
func (b *TimeColumnType) Name() string {
	return "time"
}

// IsNumeric returns false
func (b *TimeColumnType) IsNumeric() bool {
	return false
}

// Accepts returns true iff v is a time.Time
func (b *TimeColumnType) Accepts(v interface{}) bool {
	_, ok := v.(time.Time)
	return ok
}

// Layout returns the time layout of this TimeColumnType
func (b *TimeColumnType) Layout() string {
	if len(b.Format) == 0 {
		return time.RFC3339
	}
	return b.Format
}

// ToString produces a string representation of a value of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	return v.(time.Time).Format(b.Layout())
}
