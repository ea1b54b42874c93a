package bucket

import (
	"sort"

	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
)

// TopNConf configures TopNCoding
type TopNConf struct {
	OtherName  string // The label given to values outside the top n. Defaults to "other".
	NilToOther bool   // Recode missing values to OtherName as well. Defaults to false.
}

// TopN returns the n most frequent labels, ordered by descending frequency. Ties are
// broken by first appearance.
func TopN(labels []string, n int) []string {
	positions := make(map[string]int)
	distinct := make([]string, 0)
	counts := make([]int, 0)
	for _, l := range labels {
		i, ok := positions[l]
		if !ok {
			i = len(distinct)
			positions[l] = i
			distinct = append(distinct, l)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	order := make([]int, len(distinct))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if n > len(order) {
		n = len(order)
	}
	result := make([]string, n)
	for i := 0; i < n; i++ {
		result[i] = distinct[order[i]]
	}
	return result
}

// TopNCoding returns a copy of f in which colName is replaced by a Category column holding
// the text representation of its values. Values outside the n most frequent ones are recoded
// to conf.OtherName. Levels are the kept labels by frequency, followed by OtherName if used.
func TopNCoding(f *frame.Frame, colName string, n int, conf *TopNConf) (*frame.Frame, error) {
	if n < 0 {
		return nil, errors.InvalidArgumentError{Arg: "n", Reason: "must not be negative"}
	}
	otherName := "other"
	nilToOther := false
	if conf != nil {
		if conf.OtherName != "" {
			otherName = conf.OtherName
		}
		nilToOther = conf.NilToOther
	}
	strs, err := f.Strings(colName)
	if err != nil {
		return nil, err
	}
	present := make([]string, 0, len(strs))
	for pos, s := range strs {
		if !f.IsNil(colName, pos) {
			present = append(present, s)
		}
	}
	top := TopN(present, n)
	keep := make(map[string]bool, len(top))
	for _, l := range top {
		keep[l] = true
	}

	labels := make([]interface{}, len(strs))
	usedOther := false
	for pos, s := range strs {
		if f.IsNil(colName, pos) {
			if nilToOther {
				labels[pos] = otherName
				usedOther = true
			}
			continue
		}
		if keep[s] {
			labels[pos] = s
		} else {
			labels[pos] = otherName
			usedOther = true
		}
	}
	levels := append([]string(nil), top...)
	if usedOther && !keep[otherName] {
		levels = append(levels, otherName)
	}

	result := f.Copy()
	if err := result.SetCategories(colName, levels, labels); err != nil {
		return nil, err
	}
	return result, nil
}
