package bucket

import (
	"math"
	"strconv"

	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/stats"
)

// StepGroupConf configures NumericToGroup
type StepGroupConf struct {
	Step       float64 // The width of a group, in standard deviations (or raw units if Unscaled). Defaults to 1.
	OuterLimit int     // Groups beyond +/- OuterLimit steps are merged into the outermost group. Defaults to 4.
	Suffix     string  // Appended to each group label after an underscore. Defaults to "std", or "step" if Unscaled.
	NoSuffix   bool    // Omit the suffix entirely. Defaults to false.
	Absolute   bool    // Group absolute values. Defaults to false.
	Unscaled   bool    // Skip standard scaling. Defaults to false.
}

// NumericToGroup returns a copy of f in which the numeric column colName is replaced by a
// Category column of integer step groups, such as "-1_std" or "2_std". Values are
// standard-scaled (population standard deviation) unless conf.Unscaled, then truncated
// towards zero in units of conf.Step. Levels are ordered by step.
func NumericToGroup(f *frame.Frame, colName string, conf *StepGroupConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &StepGroupConf{}
	}
	step := conf.Step
	if step <= 0 {
		step = 1
	}
	outerLimit := conf.OuterLimit
	if outerLimit <= 0 {
		outerLimit = 4
	}
	suffix := conf.Suffix
	if suffix == "" {
		suffix = "std"
		if conf.Unscaled {
			suffix = "step"
		}
	}
	if conf.NoSuffix {
		suffix = ""
	} else {
		suffix = "_" + suffix
	}

	values, err := f.Float64s(colName)
	if err != nil {
		return nil, err
	}
	if !conf.Unscaled {
		mean := stats.Mean(values)
		scale := stats.Std(values, 0)
		if scale == 0 || math.IsNaN(scale) {
			scale = 1
		}
		for i, v := range values {
			values[i] = (v - mean) / scale
		}
	}

	groups := make([]int, len(values))
	minGroup, maxGroup := outerLimit, -outerLimit
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if conf.Absolute {
			v = math.Abs(v)
		}
		g := int(math.Floor(math.Abs(v) / step))
		if v < 0 {
			g = -g
		}
		if g > outerLimit {
			g = outerLimit
		} else if g < -outerLimit {
			g = -outerLimit
		}
		groups[i] = g
		if g < minGroup {
			minGroup = g
		}
		if g > maxGroup {
			maxGroup = g
		}
	}

	labels := make([]interface{}, len(values))
	used := make(map[int]bool)
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		labels[i] = strconv.Itoa(groups[i]) + suffix
		used[groups[i]] = true
	}
	levels := make([]string, 0, len(used))
	for g := minGroup; g <= maxGroup; g++ {
		if used[g] {
			levels = append(levels, strconv.Itoa(g)+suffix)
		}
	}

	result := f.Copy()
	if err := result.SetCategories(colName, levels, labels); err != nil {
		return nil, err
	}
	return result, nil
}
