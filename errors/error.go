package errors

import (
	"fmt"
)

// NilValueError occurs when a value in a Row is nil
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// MissingColumnError occurs when a column cannot be found in a Schema
type MissingColumnError struct{ Name string }

// Error returns a textual representation of this MissingColumnError
func (e MissingColumnError) Error() string {
	return fmt.Sprintf("Schema does not contain column with name %s", e.Name)
}

// DuplicateColumnError occurs when a column is defined twice within a Schema
type DuplicateColumnError struct{ Name string }

// Error returns a textual representation of this DuplicateColumnError
func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("Schema already contains column with name %s", e.Name)
}

// IncompatibleTypeError occurs when a value does not match the type of its column
type IncompatibleTypeError struct {
	Name string
	Want string
	Got  string
}

// Error returns a textual representation of this IncompatibleTypeError
func (e IncompatibleTypeError) Error() string {
	return fmt.Sprintf("Column %s expects values of type %s, got %s", e.Name, e.Want, e.Got)
}

// IncompatibleRowError occurs when a Row's width does not match an expected Schema
type IncompatibleRowError struct {
	Want int
	Got  int
}

// Error returns a textual representation of this IncompatibleRowError
func (e IncompatibleRowError) Error() string {
	return fmt.Sprintf("Row width %d is not compatible with Schema of width %d", e.Got, e.Want)
}

// InvalidArgumentError occurs when a function is called with an unusable argument
type InvalidArgumentError struct {
	Arg    string
	Reason string
}

// Error returns a textual representation of this InvalidArgumentError
func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("Invalid argument %s: %s", e.Arg, e.Reason)
}

// EmptyFrameError occurs when an operation requires at least one row
type EmptyFrameError struct{}

// Error returns a textual representation of this EmptyFrameError
func (e EmptyFrameError) Error() string {
	return "Frame contains no rows"
}
