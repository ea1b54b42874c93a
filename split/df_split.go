package split

import (
	"strings"

	"github.com/go-sif/tabular/frame"
)

// DfSplitConf configures DfSplit
type DfSplitConf struct {
	PrintKey bool   // Prefix each value in a key with its column name and KeySep. Defaults to false.
	Sep      string // Separates the columns of a key. Defaults to "_".
	KeySep   string // Separates column name and value when PrintKey is set. Defaults to "==".
}

// Part is one level of a DfSplit
type Part struct {
	Key   string
	Frame *frame.Frame
}

// DfSplit returns one sub-Frame per level of the splitBy columns, ordered by level. Rows
// with a missing value in splitBy belong to no part.
func DfSplit(f *frame.Frame, splitBy []string, conf *DfSplitConf) ([]Part, error) {
	if conf == nil {
		conf = &DfSplitConf{}
	}
	sep, keySep := conf.Sep, conf.KeySep
	if sep == "" {
		sep = "_"
	}
	if keySep == "" {
		keySep = "=="
	}
	grouping, err := f.GroupBy(splitBy...)
	if err != nil {
		return nil, err
	}
	parts := make([]Part, grouping.NumGroups())
	for i, g := range grouping.Groups() {
		fields := make([]string, len(splitBy))
		for j, label := range g.Labels {
			if conf.PrintKey {
				fields[j] = splitBy[j] + keySep + label
			} else {
				fields[j] = label
			}
		}
		parts[i] = Part{Key: strings.Join(fields, sep), Frame: grouping.Sub(i)}
	}
	return parts, nil
}
