package score

import (
	"math"
	"sort"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
)

// Acc returns the share of rows whose yPred label equals their yTrue label. An empty
// Frame scores NaN.
func Acc(f *frame.Frame, yTrue string, yPred string) (float64, error) {
	t, p, err := labelPairs(f, yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}
	return accuracy(t, p), nil
}

func accuracy(t []string, p []string) float64 {
	if len(t) == 0 {
		return math.NaN()
	}
	hits := 0
	for i := range t {
		if t[i] == p[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(t))
}

// RelAcc returns the accuracy of yPred relative to predicting the most common yTrue label
// everywhere. With a targetClass, it returns the accuracy within the rows of that class
// minus the share of the class.
func RelAcc(f *frame.Frame, yTrue string, yPred string, targetClass string) (float64, error) {
	t, p, err := labelPairs(f, yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}
	if len(t) == 0 {
		return math.NaN(), nil
	}
	if targetClass == "" {
		counts, err := f.ValueCounts(yTrue)
		if err != nil {
			return math.NaN(), err
		}
		mostCommon := 0
		if len(counts) > 0 {
			mostCommon = counts[0].Count
		}
		return accuracy(t, p) - float64(mostCommon)/float64(len(t)), nil
	}
	var tc, pc []string
	for i := range t {
		if t[i] == targetClass {
			tc = append(tc, t[i])
			pc = append(pc, p[i])
		}
	}
	return accuracy(tc, pc) - float64(len(tc))/float64(len(t)), nil
}

// confusion holds the counts of (true, predicted) label pairs
type confusion struct {
	trueLabels []string
	predLabels []string
	counts     map[[2]string]int64
}

func newConfusion(f *frame.Frame, yTrue string, yPred string) (*confusion, error) {
	trueVals, err := f.Values(yTrue)
	if err != nil {
		return nil, err
	}
	predVals, err := f.Values(yPred)
	if err != nil {
		return nil, err
	}
	t, _ := f.Strings(yTrue)
	p, _ := f.Strings(yPred)
	c := &confusion{counts: make(map[[2]string]int64)}
	seenTrue, seenPred := make(map[string]bool), make(map[string]bool)
	for i := range t {
		if trueVals[i] == nil || predVals[i] == nil {
			continue
		}
		if !seenTrue[t[i]] {
			seenTrue[t[i]] = true
			c.trueLabels = append(c.trueLabels, t[i])
		}
		if !seenPred[p[i]] {
			seenPred[p[i]] = true
			c.predLabels = append(c.predLabels, p[i])
		}
		c.counts[[2]string{t[i], p[i]}]++
	}
	sort.Strings(c.trueLabels)
	sort.Strings(c.predLabels)
	return c, nil
}

func (c *confusion) rowSum(label string) int64 {
	var sum int64
	for _, p := range c.predLabels {
		sum += c.counts[[2]string{label, p}]
	}
	return sum
}

func (c *confusion) colSum(label string) int64 {
	var sum int64
	for _, t := range c.trueLabels {
		sum += c.counts[[2]string{t, label}]
	}
	return sum
}

// ConfusionMatrix counts each combination of yTrue and yPred labels, returning a Frame
// with one row per true label (column yTrue) and one Int64 column per predicted label.
// Labels are sorted, and rows missing either label are ignored.
func ConfusionMatrix(f *frame.Frame, yTrue string, yPred string) (*frame.Frame, error) {
	c, err := newConfusion(f, yTrue, yPred)
	if err != nil {
		return nil, err
	}
	result, err := frame.FromCols(frame.StringCol(yTrue, c.trueLabels...))
	if err != nil {
		return nil, err
	}
	for _, p := range c.predLabels {
		vals := make([]interface{}, len(c.trueLabels))
		for i, t := range c.trueLabels {
			vals[i] = c.counts[[2]string{t, p}]
		}
		if err := result.AddColumn(p, &tabular.Int64ColumnType{}, vals); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// F1PRConf configures F1PR
type F1PRConf struct {
	Targets []string // The labels to report. Defaults to every true label.
	Factor  float64  // Scales F1, precision and recall. Defaults to 100.
}

// F1PR returns, per target label, the number of true occurrences (count) and the F1 score,
// precision and recall of predicting it, scaled by Factor. Undefined rates are nil.
func F1PR(f *frame.Frame, yTrue string, yPred string, conf *F1PRConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &F1PRConf{}
	}
	factor := conf.Factor
	if factor == 0 {
		factor = 100
	}
	c, err := newConfusion(f, yTrue, yPred)
	if err != nil {
		return nil, err
	}
	targets := conf.Targets
	if len(targets) == 0 {
		targets = c.trueLabels
	}
	counts := make([]int64, len(targets))
	f1s, precisions, recalls := make([]float64, len(targets)), make([]float64, len(targets)), make([]float64, len(targets))
	for i, target := range targets {
		tp := float64(c.counts[[2]string{target, target}])
		rowSum, colSum := c.rowSum(target), c.colSum(target)
		counts[i] = rowSum
		precision := tp / float64(colSum)
		recall := tp / float64(rowSum)
		f1 := 2 * precision * recall / (precision + recall)
		precisions[i], recalls[i], f1s[i] = precision*factor, recall*factor, f1*factor
	}
	return frame.FromCols(
		frame.StringCol(yTrue, targets...),
		frame.Int64Col("count", counts...),
		frame.Float64Col("F1", f1s...),
		frame.Float64Col("precision", precisions...),
		frame.Float64Col("recall", recalls...),
	)
}

// labelPairs reads yTrue and yPred as text labels, missing values included as NilString
func labelPairs(f *frame.Frame, yTrue string, yPred string) ([]string, []string, error) {
	t, err := f.Strings(yTrue)
	if err != nil {
		return nil, nil, err
	}
	p, err := f.Strings(yPred)
	if err != nil {
		return nil, nil, err
	}
	return t, p, nil
}
