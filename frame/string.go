package frame

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Records returns the column names of this Frame, and the text representation of each row
func (f *Frame) Records() (header []string, rows [][]string) {
	header = f.ColumnNames()
	cols := make([][]string, len(header))
	for i, name := range header {
		cols[i], _ = f.Strings(name)
	}
	rows = make([][]string, f.NumRows())
	for r := range rows {
		row := make([]string, len(header))
		for c := range header {
			row[c] = cols[c][r]
		}
		rows[r] = row
	}
	return
}

// ToString renders at most maxRows rows of this Frame as an aligned text table, including the row index
func (f *Frame) ToString(maxRows int) string {
	var res strings.Builder
	w := tabwriter.NewWriter(&res, 0, 0, 2, ' ', tabwriter.AlignRight)
	header, rows := f.Head(maxRows).Records()
	fmt.Fprintf(w, "\t%s\t\n", strings.Join(header, "\t"))
	for i, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t\n", strconv.Itoa(f.index[i]), strings.Join(row, "\t"))
	}
	w.Flush()
	if f.NumRows() > maxRows && maxRows >= 0 {
		fmt.Fprintf(&res, "... %d more rows\n", f.NumRows()-maxRows)
	}
	fmt.Fprintf(&res, "[%d rows x %d columns]\n", f.NumRows(), f.NumColumns())
	return res.String()
}

// String renders the first 10 rows of this Frame
func (f *Frame) String() string {
	return f.ToString(10)
}
