package forecast

import (
	"math"
	"sort"
)

// DefaultSample is the number of training rows attributed by default.
const DefaultSample = 100

// Attribution holds per-feature contributions for a set of rows. For a
// linear model contributions are exact: coef_j * (x_j - mean_j), and each
// row's contributions sum to its prediction minus Base.
type Attribution struct {
	Columns []string    `json:"columns"`
	Base    float64     `json:"base"`
	Values  [][]float64 `json:"values"`
}

// Importance is the mean absolute attribution of one feature.
type Importance struct {
	Predictor string  `json:"predictor"`
	MeanAbs   float64 `json:"mean_abs"`
}

// Base is the prediction at the training means.
func (m *Model) Base() float64 {
	return m.PredictRow(m.Means)
}

// Attribute returns the contribution of each column for row.
func (m *Model) Attribute(row []float64) []float64 {
	out := make([]float64, len(m.Columns))
	for j := range m.Columns {
		out[j] = m.Coef[j] * (row[j] - m.Means[j])
	}
	return out
}

// Explain attributes the first sample training rows, or all of them if
// fewer are available.
func (m *Model) Explain(sample int) *Attribution {
	n := m.Rows()
	if sample <= 0 || sample > n {
		sample = n
	}
	a := &Attribution{
		Columns: m.Columns,
		Base:    m.Base(),
		Values:  make([][]float64, 0, sample),
	}
	for i := 0; i < sample; i++ {
		a.Values = append(a.Values, m.Attribute(m.X.RawRowView(i)))
	}
	return a
}

// ExplainInput attributes the prediction for v.
func (m *Model) ExplainInput(v *InputVector) []float64 {
	return m.Attribute(v.Row(m.Columns))
}

// Summary ranks features by mean absolute attribution, largest first;
// ties keep column order.
func (a *Attribution) Summary() []Importance {
	out := make([]Importance, len(a.Columns))
	for j, c := range a.Columns {
		out[j].Predictor = c
		if len(a.Values) == 0 {
			continue
		}
		var sum float64
		for _, row := range a.Values {
			sum += math.Abs(row[j])
		}
		out[j].MeanAbs = sum / float64(len(a.Values))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeanAbs > out[j].MeanAbs
	})
	return out
}
