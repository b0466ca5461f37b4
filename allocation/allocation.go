package allocation

import (
	"macro-dashboard/forecast"
	"macro-dashboard/models"
)

// Recommendation texts.
const (
	ShiftToGold  = "High market uncertainty detected. Consider shifting portfolio weight to Gold."
	Diversified  = "Market conditions are relatively stable. Equities and diversified assets recommended."
	AdjustInputs = "Please adjust variables in the 'GDP Forecasting' tab to enable allocation suggestions."
)

// Level tags a recommendation for display.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Advice is a recommendation and how to show it.
type Advice struct {
	Text  string `json:"text"`
	Level Level  `json:"level"`
}

// Recommend compares the user's VIX input against the historical mean.
// A nil vector, a vector without VIX, or an unknown mean yields
// AdjustInputs.
func Recommend(inputs *forecast.InputVector, historicalMean float64, haveMean bool) Advice {
	if inputs == nil || !inputs.Has(models.ColVIX) || !haveMean {
		return Advice{Text: AdjustInputs, Level: LevelWarning}
	}
	if inputs.Value(models.ColVIX) > historicalMean {
		return Advice{Text: ShiftToGold, Level: LevelInfo}
	}
	return Advice{Text: Diversified, Level: LevelSuccess}
}
