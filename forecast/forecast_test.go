package forecast

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macro-dashboard/models"
	"macro-dashboard/testutil"
)

// linearRows builds rows where Predicted_GDP is an exact linear function
// of the predictors plus a missing-value row that must be excluded.
func linearRows(n int) []models.Record {
	weights := []float64{0.05, -0.02, 0.001, 0.3, -0.1, 0.5, -0.25, -0.4}
	rng := rand.New(rand.NewSource(42))
	var out []models.Record
	for i := 0; i < n; i++ {
		vals := map[string]float64{}
		target := 1.5
		for j, p := range Predictors {
			x := rng.Float64()*100 + float64(j)
			vals[p] = x
			target += weights[j] * x
		}
		vals[Target] = target
		out = append(out, testutil.Record("2022-07-13", models.SentimentPositive, vals, nil))
	}
	partial := testutil.Record("2022-07-14", models.SentimentNegative, map[string]float64{models.ColVIX: 99, Target: 1000}, nil)
	return append(out, partial)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "vix_value", Key(models.ColVIX))
	assert.Equal(t, "crude_oil_prices_usd_barrel", Key(models.ColCrudeOil))
	assert.Equal(t, "s_p_500_change", Key(models.ColSP500Change))
}

func TestBoundsMeanAndRange(t *testing.T) {
	var rows []models.Record
	for _, v := range []float64{1, 2, 3, 4, 5} {
		rows = append(rows, testutil.Record("2022-07-13", models.SentimentPositive, map[string]float64{models.ColVIX: v}, nil))
	}
	bounds, warnings := Bounds(rows)
	require.Len(t, bounds, len(Predictors))
	assert.Len(t, warnings, len(Predictors)-1)

	var vix Bound
	for _, b := range bounds {
		if b.Predictor == models.ColVIX {
			vix = b
		}
	}
	require.True(t, vix.Valid)
	assert.Equal(t, 3.0, vix.Mean)
	assert.Equal(t, 1.0, vix.Min)
	assert.Equal(t, 5.0, vix.Max)

	v := NewInputVector(bounds, nil)
	assert.Equal(t, 3.0, v.Value(models.ColVIX))
	assert.Equal(t, 0.0, v.Value(models.ColGold), "no numeric values falls back to 0.0")
}

func TestInputVectorResolution(t *testing.T) {
	bounds := []Bound{
		{Predictor: models.ColVIX, Min: 10, Max: 40, Mean: 20, Valid: true},
		{Predictor: models.ColGold, Min: 1500, Max: 2000, Mean: 1800, Valid: true},
	}
	v := NewInputVector(bounds, map[string]float64{models.ColVIX: 25, models.ColGold: 9999})

	assert.Equal(t, 25.0, v.Value(models.ColVIX))
	assert.True(t, v.UserSet(models.ColVIX))
	assert.Equal(t, 2000.0, v.Value(models.ColGold), "user value is clamped")
	assert.Equal(t, 0.0, v.Value(models.ColInflation), "absent bound resolves to 0.0")
	assert.Equal(t, 0.0, v.Value("not a predictor"))

	row := v.Row([]string{models.ColGold, "other", models.ColVIX})
	assert.Equal(t, []float64{2000, 0, 25}, row)
}

func TestTrainRecoversExactPlane(t *testing.T) {
	m, err := Train(linearRows(30))
	require.NoError(t, err)
	assert.Equal(t, 30, m.Rows(), "incomplete row is excluded")
	assert.Equal(t, Predictors, m.Columns)
	assert.InDelta(t, 1.5, m.Intercept, 1e-6)
	assert.InDelta(t, 0.3, m.Coefficient(models.ColSP500Change), 1e-6)
	assert.InDelta(t, -0.4, m.Coefficient(models.ColInflation), 1e-6)
}

func TestTrainSkipsNonFiniteCells(t *testing.T) {
	rows := linearRows(30)
	poisoned := map[string]float64{}
	for k, v := range rows[0].Values {
		poisoned[k] = v
	}
	poisoned[models.ColVIX] = math.NaN()
	poisoned[models.ColGold] = math.Inf(1)
	rows = append(rows, testutil.Record("2022-07-15", models.SentimentNegative, poisoned, nil))

	m, err := Train(rows)
	require.NoError(t, err)
	assert.Equal(t, 30, m.Rows())
	assert.InDelta(t, -0.1, m.Coefficient(models.ColVIX), 1e-6)

	bounds, warnings := Bounds(rows)
	assert.Empty(t, warnings)
	for _, b := range bounds {
		assert.False(t, math.IsNaN(b.Mean) || math.IsInf(b.Max, 0), b.Predictor)
	}
}

func TestPredictEqualsDirectEvaluation(t *testing.T) {
	m, err := Train(linearRows(25))
	require.NoError(t, err)

	user := map[string]float64{}
	bounds := make([]Bound, 0, len(Predictors))
	for i, p := range Predictors {
		user[p] = float64(i) + 2.5
		bounds = append(bounds, Bound{Predictor: p, Min: -1e9, Max: 1e9, Valid: true})
	}
	v := NewInputVector(bounds, user)

	want := m.Intercept
	for i, p := range Predictors {
		want += m.Coef[i] * user[p]
	}
	assert.InDelta(t, want, m.Predict(v), 1e-9)
}

func TestTrainInsufficientRows(t *testing.T) {
	_, err := Train(linearRows(1))
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Train(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestTrainUnderdeterminedStillFits(t *testing.T) {
	m, err := Train(linearRows(3))
	require.NoError(t, err)
	for i := 0; i < m.Rows(); i++ {
		assert.InDelta(t, m.Y[i], m.PredictRow(m.X.RawRowView(i)), 1e-6)
	}
}

func TestExplainSumsToPrediction(t *testing.T) {
	m, err := Train(linearRows(40))
	require.NoError(t, err)

	a := m.Explain(DefaultSample)
	require.Len(t, a.Values, 40, "sample is capped at available rows")
	for i, row := range a.Values {
		var sum float64
		for _, v := range row {
			sum += v
		}
		assert.InDelta(t, m.PredictRow(m.X.RawRowView(i)), a.Base+sum, 1e-6)
	}

	summary := a.Summary()
	require.Len(t, summary, len(Predictors))
	for i := 1; i < len(summary); i++ {
		assert.GreaterOrEqual(t, summary[i-1].MeanAbs, summary[i].MeanAbs)
	}
}

func TestExplainSmallSample(t *testing.T) {
	m, err := Train(linearRows(12))
	require.NoError(t, err)
	assert.Len(t, m.Explain(5).Values, 5)
	assert.Len(t, m.Explain(0).Values, 12)
}
