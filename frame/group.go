package frame

import (
	"bytes"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/tabular"
	iutil "github.com/go-sif/tabular/internal/util"
	"github.com/hashicorp/go-multierror"
)

// keySeparator separates the labels of individual columns within a group key
const keySeparator = 0x1f

// Group is a partition of the rows of a Frame sharing the same key
type Group struct {
	Key    []interface{} // Key holds the values of the grouping columns
	Labels []string      // Labels holds the text representation of Key
	Rows   []int         // Rows holds the positions of the group's rows, in Frame order
}

// Name joins the labels of this Group with sep
func (g *Group) Name(sep string) string {
	return strings.Join(g.Labels, sep)
}

// Grouping is the result of partitioning a Frame by one or more columns
type Grouping struct {
	frame   *Frame
	columns []string
	groups  []*Group
}

// GroupBy partitions the rows of this Frame by the values of the given columns. Rows with
// a nil value in any grouping column are dropped. Groups are ordered by key. Without
// columns, all rows form a single group.
func (f *Frame) GroupBy(colNames ...string) (*Grouping, error) {
	types := make([]tabular.ColumnType, len(colNames))
	for i, colName := range colNames {
		t, err := f.ColumnType(colName)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	g := &Grouping{frame: f, columns: append([]string(nil), colNames...)}
	if len(colNames) == 0 {
		g.groups = []*Group{{Key: []interface{}{}, Labels: []string{}, Rows: defaultIndex(f.NumRows())}}
		return g, nil
	}
	keyFn := iutil.SafeKeyingOperation(groupKey(colNames, types))
	byHash := make(map[uint64][]*Group)
	var multierr *multierror.Error
	for pos := 0; pos < f.NumRows(); pos++ {
		key, err := keyFn(f.Row(pos))
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		} else if key == nil {
			continue
		}
		hash := xxhash.Sum64(key)
		var group *Group
		for _, candidate := range byHash[hash] {
			if bytes.Equal(joinLabels(candidate.Labels), key) {
				group = candidate
				break
			}
		}
		if group == nil {
			group = &Group{Key: make([]interface{}, len(colNames)), Labels: make([]string, len(colNames))}
			for i, colName := range colNames {
				v := f.data[colName][pos]
				group.Key[i] = v
				group.Labels[i] = types[i].ToString(v)
			}
			byHash[hash] = append(byHash[hash], group)
			g.groups = append(g.groups, group)
		}
		group.Rows = append(group.Rows, pos)
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	sort.SliceStable(g.groups, func(i, j int) bool {
		for k := range colNames {
			c := CompareValues(types[k], g.groups[i].Key[k], g.groups[j].Key[k])
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return g, nil
}

// groupKey builds a KeyingOperation from the labels of the given columns. A nil key
// means the row has a missing value in one of the columns.
func groupKey(colNames []string, types []tabular.ColumnType) tabular.KeyingOperation {
	return func(row tabular.Row) ([]byte, error) {
		labels := make([]string, len(colNames))
		for i, colName := range colNames {
			v, err := row.Get(colName)
			if err != nil {
				return nil, err
			} else if v == nil {
				return nil, nil
			}
			labels[i] = types[i].ToString(v)
		}
		return joinLabels(labels), nil
	}
}

func joinLabels(labels []string) []byte {
	var buf bytes.Buffer
	for i, l := range labels {
		if i > 0 {
			buf.WriteByte(keySeparator)
		}
		buf.WriteString(l)
	}
	return buf.Bytes()
}

// Columns returns the names of the grouping columns
func (g *Grouping) Columns() []string {
	return append([]string(nil), g.columns...)
}

// Frame returns the Frame which was grouped
func (g *Grouping) Frame() *Frame {
	return g.frame
}

// Groups returns the groups of this Grouping, ordered by key
func (g *Grouping) Groups() []*Group {
	return g.groups
}

// NumGroups returns the number of groups
func (g *Grouping) NumGroups() int {
	return len(g.groups)
}

// Sub returns a new Frame containing the rows of the i-th group
func (g *Grouping) Sub(i int) *Frame {
	return g.frame.Take(g.groups[i].Rows)
}

// ForEach calls fn with each group and a Frame of its rows, stopping at the first error
func (g *Grouping) ForEach(fn func(group *Group, sub *Frame) error) error {
	for i, group := range g.groups {
		if err := fn(group, g.Sub(i)); err != nil {
			return err
		}
	}
	return nil
}

// Assignment returns, for each row position of the grouped Frame, the index of its group, or -1 if the row was dropped
func (g *Grouping) Assignment() []int {
	assignment := make([]int, g.frame.NumRows())
	for i := range assignment {
		assignment[i] = -1
	}
	for gi, group := range g.groups {
		for _, pos := range group.Rows {
			assignment[pos] = gi
		}
	}
	return assignment
}

// KeyFrame returns a new Frame with one row per group, holding the values of the grouping columns
func (g *Grouping) KeyFrame() (*Frame, error) {
	result := New(nil)
	result.index = defaultIndex(len(g.groups))
	for k, colName := range g.columns {
		colType, err := g.frame.ColumnType(colName)
		if err != nil {
			return nil, err
		}
		vals := make([]interface{}, len(g.groups))
		for i, group := range g.groups {
			vals[i] = group.Key[k]
		}
		if err := result.AddColumn(colName, colType, vals); err != nil {
			return nil, err
		}
	}
	return result, nil
}
