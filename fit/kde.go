package fit

import (
	"fmt"
	"math"

	mstats "github.com/aclements/go-moremath/stats"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
	iutil "github.com/go-sif/tabular/internal/util"
	"github.com/go-sif/tabular/stats"
	"gonum.org/v1/gonum/floats"
	gstat "gonum.org/v1/gonum/stat"
)

// Named peak width cutoffs, as a fraction of the peak density
var (
	// SigmaCutoff is the density of a normal distribution at one standard deviation,
	// relative to its maximum
	SigmaCutoff = math.Exp(-0.5)
	// EFoldingCutoff is 1-1/e
	EFoldingCutoff = 1 - 1/math.E
	// HalfMaxCutoff gives the full width at half maximum
	HalfMaxCutoff = 0.5
)

var kdeReserved = []string{"value", "perc", "diff", "sign", "ex_max", "ex_min", "phase", "mean", "std", "range",
	"value_min", "value_max", "range_min", "range_max"}

// KDEConf configures KDE
type KDEConf struct {
	Name        string    // The name of the x column of both Frames. Defaults to "x".
	XRange      []float64 // The points at which to evaluate the density. Defaults to XSteps points spanning the values.
	XSteps      int       // Defaults to 1000.
	PercCutoff  float64   // Ignore peaks below this fraction of the highest density. Defaults to 0.1; negative disables.
	RangeCutoff float64   // Peaks extend while the density is at least this fraction of the peak's. Defaults to SigmaCutoff.
}

// KDE estimates the density of values with a Gaussian kernel, using Scott's factor
// n^(-1/5) times the sample standard deviation as bandwidth. It returns the density curve
// (columns name, value, perc, diff, sign, ex_max, ex_min and phase) and a table of its
// peaks, holding the mean and standard deviation of the values under each peak and the
// extent of the peak at RangeCutoff.
func KDE(values []float64, conf *KDEConf) (curve *frame.Frame, peaks *frame.Frame, err error) {
	if conf == nil {
		conf = &KDEConf{}
	}
	name := conf.Name
	if name == "" {
		name = "x"
	}
	if iutil.Contains(kdeReserved, name) {
		return nil, nil, errors.InvalidArgumentError{Arg: "Name", Reason: fmt.Sprintf("%s is reserved", name)}
	}
	steps := conf.XSteps
	if steps <= 0 {
		steps = 1000
	} else if steps < 2 {
		steps = 2
	}
	percCutoff := conf.PercCutoff
	if percCutoff == 0 {
		percCutoff = 0.1
	}
	rangeCutoff := conf.RangeCutoff
	if rangeCutoff == 0 {
		rangeCutoff = SigmaCutoff
	}

	sample := stats.DropNaN(values)
	if len(sample) == 0 {
		return nil, nil, errors.EmptyFrameError{}
	}
	bandwidth := stats.Std(sample, 1) * math.Pow(float64(len(sample)), -0.2)
	if math.IsNaN(bandwidth) || bandwidth == 0 {
		return nil, nil, errors.InvalidArgumentError{Arg: "values", Reason: "density of a constant sample is undefined"}
	}
	kde := &mstats.KDE{
		Sample:    mstats.Sample{Xs: sample},
		Kernel:    mstats.GaussianKernel,
		Bandwidth: bandwidth,
	}

	xs := conf.XRange
	if len(xs) == 0 {
		xs = floats.Span(make([]float64, steps), floats.Min(sample), floats.Max(sample))
	}
	n := len(xs)
	density := make([]float64, n)
	for i, x := range xs {
		density[i] = kde.PDF(x)
	}
	top := floats.Max(density)
	perc := make([]float64, n)
	diffs := make([]float64, n)
	signs := make([]float64, n)
	for i := range density {
		perc[i] = density[i] / top
		if i == 0 {
			diffs[i], signs[i] = math.NaN(), math.NaN()
			continue
		}
		diffs[i] = density[i] - density[i-1]
		signs[i] = sign(diffs[i])
	}
	exMax, exMin := make([]bool, n), make([]bool, n)
	phases := make([]int64, n)
	var phase int64
	for i := range density {
		if i+1 < n {
			change := signs[i] - signs[i+1]
			exMax[i] = change > 0
			exMin[i] = change < 0
		}
		if exMin[i] {
			phase++
		}
		phases[i] = phase
		if percCutoff > 0 && perc[i] <= percCutoff {
			exMax[i] = false
		}
	}
	curve, err = frame.FromCols(
		frame.Float64Col(name, xs...),
		frame.Float64Col("value", density...),
		frame.Float64Col("perc", perc...),
		frame.Float64Col("diff", diffs...),
		frame.Float64Col("sign", signs...),
		frame.BoolCol("ex_max", exMax...),
		frame.BoolCol("ex_min", exMin...),
		frame.Int64Col("phase", phases...),
	)
	if err != nil {
		return nil, nil, err
	}

	var px, pv, means, stds, ranges, rangeMin, rangeMax, valueMin, valueMax []float64
	var pphase []int64
	for i := range density {
		if !exMax[i] {
			continue
		}
		first, last := -1, -1
		for j := range density {
			if phases[j] != phases[i] || density[j] < density[i]*rangeCutoff {
				continue
			}
			if first < 0 {
				first = j
			}
			last = j
		}
		lo, hi := xs[first], xs[last]
		var under []float64
		for _, v := range sample {
			if v > lo && v < hi {
				under = append(under, v)
			}
		}
		mean, std := math.NaN(), math.NaN()
		if len(under) > 0 {
			mean, std = gstat.PopMeanStdDev(under, nil)
		}
		px = append(px, xs[i])
		pv = append(pv, density[i])
		pphase = append(pphase, phases[i])
		means = append(means, mean)
		stds = append(stds, std)
		ranges = append(ranges, hi-lo)
		rangeMin = append(rangeMin, lo)
		rangeMax = append(rangeMax, hi)
		valueMin = append(valueMin, density[first])
		valueMax = append(valueMax, density[last])
	}
	peaks, err = frame.FromCols(
		frame.Float64Col(name, px...),
		frame.Float64Col("value", pv...),
		frame.Int64Col("phase", pphase...),
		frame.Float64Col("mean", means...),
		frame.Float64Col("std", stds...),
		frame.Float64Col("range", ranges...),
		frame.Float64Col("range_min", rangeMin...),
		frame.Float64Col("range_max", rangeMax...),
		frame.Float64Col("value_min", valueMin...),
		frame.Float64Col("value_max", valueMax...),
	)
	if err != nil {
		return nil, nil, err
	}
	return curve, peaks, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
