package util

import (
	"fmt"
	"runtime"
	"strings"
)

// GetTrace produces the string representation of a stack trace
func GetTrace() string {
	var name, file string
	var line int
	var pc [16]uintptr
	var res strings.Builder
	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", name, file, line)
		}
	}
	return res.String()
}

// DefaultColumns returns cols, or fallback if cols is empty
func DefaultColumns(cols []string, fallback []string) []string {
	if len(cols) == 0 {
		return fallback
	}
	return cols
}

// Without returns the elements of cols which are not in exclude, preserving order
func Without(cols []string, exclude ...string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	result := make([]string, 0, len(cols))
	for _, c := range cols {
		if !skip[c] {
			result = append(result, c)
		}
	}
	return result
}

// Contains returns true iff s is an element of list
func Contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
