package tabular

// VarStringColumnType is a column type which stores a variable-length string value
type VarStringColumnType struct{}

// Name returns the name of this ColumnType
func (b *VarStringColumnType) Name() string {
	return "string"
}

// IsNumeric returns false
func (b *VarStringColumnType) IsNumeric() bool {
	return false
}

// Accepts returns true iff v is a string
func (b *VarStringColumnType) Accepts(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

// ToString produces a string representation of a value of a VarStringColumnType value
func (b *VarStringColumnType) ToString(v interface{}) string {
	return v.(string)
}

// CategoryColumnType is a column type which stores one of a fixed, ordered set of string labels.
// Levels define the sort order of the column. A CategoryColumnType without Levels accepts any string.
type CategoryColumnType struct {
	Levels []string
}

// Name returns the name of this ColumnType
func (b *CategoryColumnType) Name() string {
	return "category"
}

// IsNumeric returns false
func (b *CategoryColumnType) IsNumeric() bool {
	return false
}

// Accepts returns true iff v is a string and one of the Levels of this CategoryColumnType
func (b *CategoryColumnType) Accepts(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return len(b.Levels) == 0 || b.LevelIndex(s) >= 0
}

// LevelIndex returns the position of a label within Levels, or -1 if it is not a level
func (b *CategoryColumnType) LevelIndex(label string) int {
	for i, l := range b.Levels {
		if l == label {
			return i
		}
	}
	return -1
}

// ToString produces a string representation of a value of a CategoryColumnType value
func (b *CategoryColumnType) ToString(v interface{}) string {
	return v.(string)
}
