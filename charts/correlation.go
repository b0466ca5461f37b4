package charts

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"macro-dashboard/models"
)

// Heatmap is a symmetric correlation matrix. NaN marks undefined cells
// (fewer than two paired values or a constant column).
type Heatmap struct {
	Title   string      `json:"title"`
	Columns []string    `json:"columns"`
	Matrix  [][]float64 `json:"-"`
}

// Heading implements Chart.
func (h *Heatmap) Heading() string { return h.Title }

// CorrelationHeatmap computes pairwise-complete Pearson correlations over
// columns. Columns without any numeric value are dropped.
func CorrelationHeatmap(rows []models.Record, columns []string) (*Heatmap, error) {
	h := &Heatmap{Title: "Correlation Heatmap"}
	for _, c := range columns {
		if len(models.Numbers(rows, c)) > 0 {
			h.Columns = append(h.Columns, c)
		}
	}
	if len(h.Columns) == 0 {
		return nil, noData("correlation columns")
	}

	h.Matrix = make([][]float64, len(h.Columns))
	for i := range h.Columns {
		h.Matrix[i] = make([]float64, len(h.Columns))
	}
	for i, a := range h.Columns {
		for j := i; j < len(h.Columns); j++ {
			r := Pearson(rows, a, h.Columns[j])
			h.Matrix[i][j], h.Matrix[j][i] = r, r
		}
	}
	return h, nil
}

// Pearson correlates a and b over records holding both.
func Pearson(rows []models.Record, a, b string) float64 {
	var xs, ys []float64
	for _, r := range rows {
		x, okX := r.Number(a)
		y, okY := r.Number(b)
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
