package forecast

import (
	"fmt"
	"regexp"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"macro-dashboard/models"
)

// Target is the column the model forecasts.
const Target = models.ColPredictedGDP

// Predictors is the fixed, ordered regression input set.
var Predictors = []string{
	models.ColConsumerConf,
	models.ColCrudeOil,
	models.ColGold,
	models.ColSP500Change,
	models.ColVIX,
	models.ColFXRate,
	models.ColInterestRate,
	models.ColInflation,
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Key is the form/query key of a predictor, e.g. "vix_value".
func Key(predictor string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(predictor), "_"), "_")
}

// Bound is the historical range of one predictor; it drives the slider.
type Bound struct {
	Predictor string  `json:"predictor"`
	Key       string  `json:"key"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	Valid     bool    `json:"valid"`
}

// Bounds computes min, max and mean of every predictor over the numeric
// values in records. Predictors without any numeric value get a zero
// bound with Valid unset and one warning each.
func Bounds(records []models.Record) ([]Bound, []string) {
	out := make([]Bound, 0, len(Predictors))
	var warnings []string
	for _, p := range Predictors {
		b := Bound{Predictor: p, Key: Key(p)}
		vals := models.Numbers(records, p)
		if len(vals) == 0 {
			warnings = append(warnings, fmt.Sprintf("Variable '%s' has no valid numeric values.", p))
			out = append(out, b)
			continue
		}
		b.Min = floats.Min(vals)
		b.Max = floats.Max(vals)
		b.Mean = stat.Mean(vals, nil)
		b.Valid = true
		out = append(out, b)
	}
	return out, warnings
}

// Clamp restricts v to the bound's range.
func (b Bound) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// InputVector is the user's slider state aligned to Predictors.
type InputVector struct {
	values map[string]float64
	user   map[string]bool
}

// NewInputVector resolves each predictor as: user value (clamped to the
// historical range) → historical mean → 0.0. user is keyed by predictor
// name.
func NewInputVector(bounds []Bound, user map[string]float64) *InputVector {
	v := &InputVector{
		values: make(map[string]float64, len(Predictors)),
		user:   make(map[string]bool),
	}
	byName := make(map[string]Bound, len(bounds))
	for _, b := range bounds {
		byName[b.Predictor] = b
	}
	for _, p := range Predictors {
		b, known := byName[p]
		if !known || !b.Valid {
			v.values[p] = 0.0
			continue
		}
		if u, ok := user[p]; ok {
			v.values[p] = b.Clamp(u)
			v.user[p] = true
		} else {
			v.values[p] = b.Mean
		}
	}
	return v
}

// Value returns the resolved value of predictor; unknown predictors
// resolve to 0.0.
func (v *InputVector) Value(predictor string) float64 {
	if v == nil {
		return 0
	}
	return v.values[predictor]
}

// Has reports whether predictor is part of the vector.
func (v *InputVector) Has(predictor string) bool {
	if v == nil {
		return false
	}
	_, ok := v.values[predictor]
	return ok
}

// UserSet reports whether predictor came from user input.
func (v *InputVector) UserSet(predictor string) bool {
	return v != nil && v.user[predictor]
}

// Row returns the vector ordered as columns; columns missing from the
// vector are 0.0.
func (v *InputVector) Row(columns []string) []float64 {
	row := make([]float64, len(columns))
	for i, c := range columns {
		row[i] = v.Value(c)
	}
	return row
}
