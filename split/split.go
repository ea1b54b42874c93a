// Package split divides the rows of a Frame into parts, for train/test or k-fold
// evaluation, or by the levels of key columns.
package split

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"

	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
	iutil "github.com/go-sif/tabular/internal/util"
	"github.com/go-sif/tabular/logging"
)

// KIndexColumn is the name of the column added by WithKIndex
const KIndexColumn = iutil.KIndexColumn

// KSplitConf configures KSplit
type KSplitConf struct {
	K           int             // The number of parts. Defaults to 5.
	GroupBy     []string        // Split each group separately, so every group is spread over all parts. Defaults to a single group.
	SortBy      []frame.SortKey // Order rows by these keys before slicing. Defaults to a random order.
	SortByIndex bool            // Order rows by their index label before slicing. Ignored if SortBy is set.
	Seed        *int64          // Seeds the random order. Defaults to an unseeded order.
	Logger      *slog.Logger    // Receives progress messages. Defaults to no logging.
}

func (conf *KSplitConf) k() int {
	if conf.K <= 0 {
		return 5
	}
	return conf.K
}

// KSplit assigns each row of f to one of K parts, returning the part index of each row
// aligned to the rows of f. Within a group, rows are ordered randomly (or by SortBy) and
// sliced into K contiguous parts whose sizes differ by at most one. Rows with a missing
// group key receive -1.
func KSplit(f *frame.Frame, conf *KSplitConf) ([]int64, error) {
	if conf == nil {
		conf = &KSplitConf{}
	}
	k := conf.k()
	logger := logging.OrDiscard(conf.Logger)
	logger.Debug("splitting frame", "frame", f.ID(), "k", k, "rows", f.NumRows())

	grouping, err := f.GroupBy(conf.GroupBy...)
	if err != nil {
		return nil, err
	}
	var order []int
	if len(conf.SortBy) > 0 {
		if order, err = f.SortPositions(conf.SortBy...); err != nil {
			return nil, err
		}
	} else if conf.SortByIndex {
		labels := f.Index()
		order = make([]int, len(labels))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool { return labels[order[i]] < labels[order[j]] })
	}
	var rng *rand.Rand
	if order == nil && conf.Seed != nil {
		seed := uint64(*conf.Seed)
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	members := make([][]int, grouping.NumGroups())
	if order != nil {
		assignment := grouping.Assignment()
		for _, pos := range order {
			if g := assignment[pos]; g >= 0 {
				members[g] = append(members[g], pos)
			}
		}
	} else {
		for i, g := range grouping.Groups() {
			rows := append([]int(nil), g.Rows...)
			swap := func(a, b int) { rows[a], rows[b] = rows[b], rows[a] }
			if rng != nil {
				rng.Shuffle(len(rows), swap)
			} else {
				rand.Shuffle(len(rows), swap)
			}
			members[i] = rows
		}
	}

	parts := make([]int64, f.NumRows())
	for i := range parts {
		parts[i] = -1
	}
	for _, rows := range members {
		n := len(rows)
		for i, pos := range rows {
			parts[pos] = int64(i * k / n)
		}
	}
	logger.Debug("split frame", "frame", f.ID(), "k", k, "groups", grouping.NumGroups())
	return parts, nil
}

// WithKIndex adds the result of KSplit as an Int64 column named KIndexColumn. Rows
// with a missing group key receive nil.
func WithKIndex(conf *KSplitConf) frame.Operation {
	return func(f *frame.Frame) (*frame.Frame, error) {
		parts, err := KSplit(f, conf)
		if err != nil {
			return nil, err
		}
		vals := make([]interface{}, len(parts))
		for i, p := range parts {
			if p >= 0 {
				vals[i] = p
			}
		}
		result := f.Copy()
		if err := result.SetColumn(KIndexColumn, frame.Int64Col(KIndexColumn).Type, vals); err != nil {
			return nil, err
		}
		return result, nil
	}
}

// TrainTest splits f into a training Frame holding every part of KSplit but the test-th,
// and a testing Frame holding the test-th part. Both retain the row labels of f.
func TrainTest(f *frame.Frame, test int, conf *KSplitConf) (*frame.Frame, *frame.Frame, error) {
	if conf == nil {
		conf = &KSplitConf{}
	}
	if test < 0 || test >= conf.k() {
		return nil, nil, errors.InvalidArgumentError{Arg: "test", Reason: fmt.Sprintf("must be in [0, %d)", conf.k())}
	}
	parts, err := KSplit(f, conf)
	if err != nil {
		return nil, nil, err
	}
	var train, testing []int
	for pos, p := range parts {
		if p == int64(test) {
			testing = append(testing, pos)
		} else if p >= 0 {
			train = append(train, pos)
		}
	}
	return f.Take(train), f.Take(testing), nil
}
