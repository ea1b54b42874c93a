// Package fit provides quick per-group linear fits and kernel density estimates on Frames.
package fit

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/stats"
	gstat "gonum.org/v1/gonum/stat"
)

// LFitConf configures LFit
type LFitConf struct {
	Weights     string       // A column of weights, applied to the residuals before squaring. Defaults to equal weights.
	GroupBy     []string     // Fit separately within each group. Defaults to a single group.
	Extrapolate int          // Append this many rows per group, continuing x by its mean step. Defaults to 0.
	CatchError  bool         // Log a failed fit and copy y into the fit column instead of failing. Defaults to false.
	Logger      *slog.Logger // Receives progress and failure messages. Defaults to no logging.
}

// FitError occurs when a line cannot be fit to a group
type FitError struct {
	Group  string
	Reason string
}

// Error returns a textual representation of this FitError
func (e FitError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("Cannot fit line: %s", e.Reason)
	}
	return fmt.Sprintf("Cannot fit line to group %s: %s", e.Group, e.Reason)
}

// line is a fitted straight line
type line struct {
	intercept float64
	slope     float64
}

func (l line) at(x float64) float64 {
	return l.intercept + l.slope*x
}

// fitLine fits a least-squares line to the finite (x, y) pairs, weighting squared
// residuals by w²
func fitLine(x []float64, y []float64, w []float64) (line, error) {
	var xs, ys, ws []float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
		if w != nil {
			wi := w[i]
			if math.IsNaN(wi) {
				wi = 0
			}
			ws = append(ws, wi*wi)
		}
	}
	if len(xs) < 2 {
		return line{}, FitError{Reason: fmt.Sprintf("%d finite points", len(xs))}
	}
	if stats.NUnique(xs) < 2 {
		return line{}, FitError{Reason: "x is constant"}
	}
	alpha, beta := gstat.LinearRegression(xs, ys, ws, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return line{}, FitError{Reason: "weights are zero"}
	}
	return line{intercept: alpha, slope: beta}, nil
}

// LFit fits y against x with a (weighted) least-squares line per group and returns a copy
// of f with an added column {y}_fit. x and y become Float64 columns, and rows with a
// missing group key keep a nil fit. Extrapolated rows are appended after the input rows,
// holding the group key, x and the fit, and the index of the result is reset.
func LFit(f *frame.Frame, x string, y string, conf *LFitConf) (*frame.Frame, error) {
	if conf == nil {
		conf = &LFitConf{}
	}
	logger := logging.OrDiscard(conf.Logger)
	fitName := y + "_fit"
	xs, err := f.Float64s(x)
	if err != nil {
		return nil, err
	}
	ys, err := f.Float64s(y)
	if err != nil {
		return nil, err
	}
	var ws []float64
	if conf.Weights != "" {
		if ws, err = f.Float64s(conf.Weights); err != nil {
			return nil, err
		}
	}
	if conf.Extrapolate < 0 {
		return nil, errors.InvalidArgumentError{Arg: "Extrapolate", Reason: "must not be negative"}
	}
	grouping, err := f.GroupBy(conf.GroupBy...)
	if err != nil {
		return nil, err
	}

	fitted := make([]float64, f.NumRows())
	for i := range fitted {
		fitted[i] = math.NaN()
	}
	type extension struct {
		group *frame.Group
		xs    []float64
		fit   []float64
	}
	var extensions []extension
	for gi, g := range grouping.Groups() {
		logger.Debug("fitting group", "frame", f.ID(), "group", g.Name("_"), "iteration", gi+1, "groups", grouping.NumGroups())
		gx, gy := pick(xs, g.Rows), pick(ys, g.Rows)
		var gw []float64
		if ws != nil {
			gw = pick(ws, g.Rows)
		}
		l, err := fitLine(gx, gy, gw)
		if err != nil {
			fe := err.(FitError)
			fe.Group = g.Name("_")
			if !conf.CatchError {
				return nil, fe
			}
			logger.Warn("handled fit failure", "frame", f.ID(), "error", fe.Error())
			for i, pos := range g.Rows {
				fitted[pos] = gy[i]
			}
			continue
		}
		for i, pos := range g.Rows {
			fitted[pos] = l.at(gx[i])
		}
		if conf.Extrapolate > 0 {
			ext := extension{group: g}
			step := stats.Mean(diff(gx))
			next := stats.Max(gx)
			for k := 0; k < conf.Extrapolate; k++ {
				next += step
				ext.xs = append(ext.xs, next)
				ext.fit = append(ext.fit, l.at(next))
			}
			extensions = append(extensions, ext)
		}
	}

	result := f.Copy()
	for _, set := range []struct {
		name   string
		values []float64
	}{{x, xs}, {y, ys}, {fitName, fitted}} {
		if err := result.SetFloat64s(set.name, set.values); err != nil {
			return nil, err
		}
	}
	if len(extensions) == 0 {
		return result, nil
	}
	names := result.ColumnNames()
	for _, ext := range extensions {
		for k := range ext.xs {
			row := make([]interface{}, len(names))
			for j, name := range names {
				switch name {
				case x:
					row[j] = ext.xs[k]
				case fitName:
					row[j] = ext.fit[k]
				default:
					for gk, groupCol := range conf.GroupBy {
						if name == groupCol {
							row[j] = ext.group.Key[gk]
						}
					}
				}
			}
			if err := result.AppendRow(row...); err != nil {
				return nil, err
			}
		}
	}
	result.ResetIndex()
	return result, nil
}

func pick(values []float64, positions []int) []float64 {
	result := make([]float64, len(positions))
	for i, pos := range positions {
		result[i] = values[pos]
	}
	return result
}

// diff returns the differences between consecutive elements of values
func diff(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	result := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		result[i-1] = values[i] - values[i-1]
	}
	return result
}
