package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"macro-dashboard/models"
)

// ErrInsufficientData is returned when fewer than two complete rows are
// available for fitting.
var ErrInsufficientData = errors.New("forecast: fewer than 2 complete training rows")

// Model is an ordinary least-squares fit of Target on Columns.
type Model struct {
	Columns   []string
	Intercept float64
	Coef      []float64
	// Means holds the training mean of each column.
	Means []float64
	// X is the training matrix, one row per complete record.
	X *mat.Dense
	Y []float64
}

// TrainingSet extracts the rows of records where every column and the
// target are numeric.
func TrainingSet(records []models.Record, columns []string, target string) (*mat.Dense, []float64) {
	var data, y []float64
	for _, r := range records {
		t, ok := r.Number(target)
		if !ok {
			continue
		}
		row := make([]float64, 0, len(columns))
		for _, c := range columns {
			v, ok := r.Number(c)
			if !ok {
				break
			}
			row = append(row, v)
		}
		if len(row) != len(columns) {
			continue
		}
		data = append(data, row...)
		y = append(y, t)
	}
	if len(y) == 0 {
		return nil, nil
	}
	return mat.NewDense(len(y), len(columns), data), y
}

// Train fits Target on Predictors over records.
func Train(records []models.Record) (*Model, error) {
	return Fit(records, Predictors, Target)
}

// Fit fits target on columns with an intercept. Rank-deficient systems get
// the minimum-norm solution.
func Fit(records []models.Record, columns []string, target string) (*Model, error) {
	x, y := TrainingSet(records, columns, target)
	if len(y) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientData, len(y))
	}
	n, p := x.Dims()

	means := make([]float64, p)
	for j := 0; j < p; j++ {
		means[j] = stat.Mean(mat.Col(nil, j, x), nil)
	}
	yMean := stat.Mean(y, nil)

	centred := mat.NewDense(n, p, nil)
	centred.Apply(func(i, j int, v float64) float64 { return v - means[j] }, x)
	yc := make([]float64, n)
	for i, v := range y {
		yc[i] = v - yMean
	}

	coef, err := leastSquares(centred, yc)
	if err != nil {
		return nil, err
	}

	return &Model{
		Columns:   append([]string(nil), columns...),
		Intercept: yMean - floats.Dot(means, coef),
		Coef:      coef,
		Means:     means,
		X:         x,
		Y:         y,
	}, nil
}

// leastSquares solves min ||a·b - y|| via the thin SVD pseudo-inverse,
// discarding singular values below the numpy lstsq cutoff.
func leastSquares(a *mat.Dense, y []float64) ([]float64, error) {
	n, p := a.Dims()
	coef := make([]float64, p)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, errors.New("forecast: SVD factorisation failed")
	}
	s := svd.Values(nil)
	if len(s) == 0 || s[0] == 0 {
		return coef, nil
	}
	cutoff := s[0] * float64(max(n, p)) * eps

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	for k, sk := range s {
		if sk <= cutoff {
			break
		}
		var uty float64
		for i := 0; i < n; i++ {
			uty += u.At(i, k) * y[i]
		}
		scale := uty / sk
		for j := 0; j < p; j++ {
			coef[j] += scale * v.At(j, k)
		}
	}
	return coef, nil
}

var eps = math.Nextafter(1, 2) - 1

// Rows is the number of training rows.
func (m *Model) Rows() int {
	return len(m.Y)
}

// PredictRow evaluates the fitted plane at row, ordered as m.Columns.
func (m *Model) PredictRow(row []float64) float64 {
	return m.Intercept + floats.Dot(m.Coef, row)
}

// Predict aligns v to the model columns (absent predictors are 0.0) and
// predicts the target.
func (m *Model) Predict(v *InputVector) float64 {
	return m.PredictRow(v.Row(m.Columns))
}

// Coefficient returns the coefficient of column, or 0 if not a column.
func (m *Model) Coefficient(column string) float64 {
	for i, c := range m.Columns {
		if c == column {
			return m.Coef[i]
		}
	}
	return 0
}
