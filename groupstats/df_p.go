package groupstats

import (
	"log/slog"
	"math"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/bucket"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/operations/util"
	"github.com/go-sif/tabular/stats"
)

// DfPConf configures DfP
type DfPConf struct {
	Hue        string       // Further split the levels of group by this column. Defaults to no hue.
	AggFunc    string       // "mean" compares levels with Welch's t-test, "median" with Mood's median test. Defaults to "mean".
	Agg        bool         // Average the p-values of each level over all the levels it was compared with. Defaults to false.
	NQuantiles int          // Numeric group and hue columns are split into this many quantiles. Defaults to 10.
	Logger     *slog.Logger // Receives failed tests. Defaults to no logging.
}

// DfP returns the p-value of a hypothesis test of x between every ordered pair of distinct
// levels of group (and hue). The result has columns group, group_2, [hue, hue_2] and p, or
// with conf.Agg the columns group, [hue] and the mean p. Tests which cannot be carried out
// yield a nil p.
func DfP(f *frame.Frame, x string, group string, conf *DfPConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &DfPConf{}
	}
	logger := logging.OrDiscard(conf.Logger)
	test := stats.WelchTTest
	switch conf.AggFunc {
	case "", "mean":
	case "median":
		test = func(a, b []float64) (float64, error) {
			return stats.MedianTest(a, b)
		}
	default:
		return nil, errors.InvalidArgumentError{Arg: "AggFunc", Reason: "unsupported test for " + conf.AggFunc}
	}

	gh, err := bucket.GroupHue(f, group, &bucket.GroupHueConf{Hue: conf.Hue, X: x, NQuantiles: conf.NQuantiles})
	if err != nil {
		return nil, err
	}
	values, err := gh.Frame.Float64s(x)
	if err != nil {
		return nil, err
	}
	labels, _ := gh.Frame.Strings(bucket.LabelColumn)
	levels := gh.Labels()
	samples := make(map[string][]float64, len(levels))
	for i, l := range labels {
		if !gh.Frame.IsNil(bucket.LabelColumn, i) && !math.IsNaN(values[i]) {
			samples[l] = append(samples[l], values[i])
		}
	}
	levelGroups, _ := gh.Levels.Values(bucket.GroupColumn)
	var levelHues []interface{}
	if conf.Hue != "" {
		levelHues, _ = gh.Levels.Values(bucket.HueColumn)
	}

	groupType, _ := gh.Frame.ColumnType(bucket.GroupColumn)
	var hueType tabular.ColumnType
	if conf.Hue != "" {
		hueType, _ = gh.Frame.ColumnType(bucket.HueColumn)
	}
	var groups1, groups2, hues1, hues2 []interface{}
	ps := make([]float64, 0, len(levels)*len(levels))
	for i1, l1 := range levels {
		for i2, l2 := range levels {
			if i1 == i2 {
				continue
			}
			p, err := test(samples[l1], samples[l2])
			if err != nil {
				logger.Warn("hypothesis test failed", "x", x, "level", l1, "level_2", l2, "error", err)
				p = math.NaN()
			}
			ps = append(ps, p)
			groups1 = append(groups1, levelGroups[i1])
			groups2 = append(groups2, levelGroups[i2])
			if conf.Hue != "" {
				hues1 = append(hues1, levelHues[i1])
				hues2 = append(hues2, levelHues[i2])
			}
		}
	}

	cols := []frame.Col{
		{Name: group, Type: groupType, Values: groups1},
		{Name: group + "_2", Type: groupType, Values: groups2},
	}
	if conf.Hue != "" {
		cols = append(cols,
			frame.Col{Name: conf.Hue, Type: hueType, Values: hues1},
			frame.Col{Name: conf.Hue + "_2", Type: hueType, Values: hues2},
		)
	}
	cols = append(cols, frame.Float64Col("p", ps...))
	result, err := frame.FromCols(cols...)
	if err != nil {
		return nil, err
	}
	if !conf.Agg {
		return result, nil
	}
	mean, err := util.Agg("p", "mean", "p")
	if err != nil {
		return nil, err
	}
	return result.To(util.Aggregate(gh.GroupByNames, mean))
}
