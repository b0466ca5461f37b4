package dashboard

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"macro-dashboard/forecast"
	"macro-dashboard/models"
)

var errPrediction = errors.New("dashboard: prediction is not finite")

// Forecast is the evaluated GDP forecasting panel.
type Forecast struct {
	Bounds   []forecast.Bound
	Warnings []string
	Inputs   *forecast.InputVector
	// Prediction and Display are set only when Err is nil.
	Prediction    float64
	Display       string
	Contributions []float64
	Summary       []forecast.Importance
	Model         *forecast.Model
	Err           error
}

// Percent formats v as a percentage with two decimals.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// Predict trains on the full dataset and predicts from the user inputs.
func Predict(ds *models.Dataset, inputs map[string]float64) (f *Forecast) {
	f = &Forecast{}
	defer func() {
		if r := recover(); r != nil {
			f.Err = fmt.Errorf("dashboard: forecast failed: %v", r)
		}
	}()

	f.Bounds, f.Warnings = forecast.Bounds(ds.Records)
	f.Inputs = forecast.NewInputVector(f.Bounds, inputs)

	m, err := forecast.Train(ds.Records)
	if err != nil {
		f.Err = err
		return f
	}
	y := m.Predict(f.Inputs)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		f.Err = errPrediction
		return f
	}
	f.Model = m
	f.Prediction = y
	f.Display = Percent(y)
	f.Contributions = m.ExplainInput(f.Inputs)
	f.Summary = m.Explain(forecast.DefaultSample).Summary()
	return f
}
