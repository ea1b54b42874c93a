package outlier

import (
	"log/slog"
	"math"

	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/logging"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Reference is a multivariate reference distribution: the mean and sample covariance of
// a set of columns, estimated from the complete rows of a Frame
type Reference struct {
	params []string
	mean   *mat.VecDense
	chol   *mat.Cholesky
}

// NewReference estimates a Reference from the complete rows of f. Without params, all
// columns of f are used. If the covariance matrix cannot be inverted, the Reference is
// degenerate and every distance computed from it is NaN.
func NewReference(f *frame.Frame, params []string, logger *slog.Logger) (*Reference, error) {
	logger = logging.OrDiscard(logger)
	if len(params) == 0 {
		params = f.ColumnNames()
	}
	cols := make([][]float64, len(params))
	for j, p := range params {
		vals, err := f.Float64s(p)
		if err != nil {
			return nil, err
		}
		cols[j] = vals
	}
	data := make([]float64, 0, f.NumRows()*len(params))
	rows := 0
	for i := 0; i < f.NumRows(); i++ {
		if !complete(cols, i) {
			continue
		}
		for j := range params {
			data = append(data, cols[j][i])
		}
		rows++
	}
	ref := &Reference{params: append([]string(nil), params...)}
	if rows < 2 || len(params) == 0 {
		logger.Warn("too few complete rows to estimate a covariance matrix", "rows", rows)
		return ref, nil
	}
	x := mat.NewDense(rows, len(params), data)
	mean := make([]float64, len(params))
	for j := range params {
		mean[j] = stat.Mean(mat.Col(nil, j, x), nil)
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, x, nil)
	var chol mat.Cholesky
	if ok := chol.Factorize(&cov); !ok {
		logger.Warn("covariance matrix is not invertible", "params", params)
		return ref, nil
	}
	ref.mean = mat.NewVecDense(len(params), mean)
	ref.chol = &chol
	return ref, nil
}

// Params returns the columns this Reference was estimated from
func (r *Reference) Params() []string {
	return append([]string(nil), r.params...)
}

// Distance returns the Mahalanobis distance of a point, given in Params order, to this
// Reference. Points with missing coordinates, and degenerate References, yield NaN.
func (r *Reference) Distance(point []float64) (float64, error) {
	if len(point) != len(r.params) {
		return math.NaN(), errors.InvalidArgumentError{Arg: "point", Reason: "dimension does not match the reference"}
	}
	if r.chol == nil {
		return math.NaN(), nil
	}
	for _, v := range point {
		if math.IsNaN(v) {
			return math.NaN(), nil
		}
	}
	return stat.Mahalanobis(mat.NewVecDense(len(point), append([]float64(nil), point...)), r.mean, r.chol), nil
}

// Mahalanobis returns the Mahalanobis distance of every row of points to the distribution
// of the same columns in ref. A nil ref measures points against themselves.
func Mahalanobis(points *frame.Frame, ref *frame.Frame, params []string, logger *slog.Logger) ([]float64, error) {
	if ref == nil {
		ref = points
	}
	reference, err := NewReference(ref, params, logger)
	if err != nil {
		return nil, err
	}
	cols := make([][]float64, len(reference.params))
	for j, p := range reference.params {
		vals, err := points.Float64s(p)
		if err != nil {
			return nil, err
		}
		cols[j] = vals
	}
	result := make([]float64, points.NumRows())
	point := make([]float64, len(cols))
	for i := range result {
		for j := range cols {
			point[j] = cols[j][i]
		}
		d, err := reference.Distance(point)
		if err != nil {
			return nil, err
		}
		result[i] = d
	}
	return result, nil
}

// MahalanobisPoint returns the Mahalanobis distance of a single point to the distribution
// of params in ref
func MahalanobisPoint(point []float64, ref *frame.Frame, params []string, logger *slog.Logger) (float64, error) {
	reference, err := NewReference(ref, params, logger)
	if err != nil {
		return math.NaN(), err
	}
	return reference.Distance(point)
}

func complete(cols [][]float64, i int) bool {
	for _, c := range cols {
		if math.IsNaN(c[i]) {
			return false
		}
	}
	return true
}
