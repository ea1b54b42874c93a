package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsAs(t *testing.T) {
	var err error = fmt.Errorf("loading: %w", MissingColumnError{Name: "x"})
	var missing MissingColumnError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "x", missing.Name)
	require.Equal(t, "loading: Schema does not contain column with name x", err.Error())
}

func TestMessages(t *testing.T) {
	require.Equal(t, "Value for column a is nil", NilValueError{Name: "a"}.Error())
	require.Equal(t, "Column a expects values of type float64, got string", IncompatibleTypeError{Name: "a", Want: "float64", Got: "string"}.Error())
	require.Equal(t, "Row width 2 is not compatible with Schema of width 3", IncompatibleRowError{Want: 3, Got: 2}.Error())
	require.Equal(t, "Invalid argument n: must be positive", InvalidArgumentError{Arg: "n", Reason: "must be positive"}.Error())
}
