// Package charts builds the dashboard's descriptive charts from records.
// Builders are pure and return typed chart values; render.go adapts them
// to go-echarts.
package charts

import (
	"errors"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/components"

	"macro-dashboard/models"
)

// ErrNoData is returned when a chart's columns hold no numeric or text
// data after coercion. Callers skip the chart with a warning.
var ErrNoData = errors.New("charts: no data")

// Chart is a built chart that can be rendered by go-echarts.
type Chart interface {
	Heading() string
	Echart() components.Charter
}

// Indicators are the macro series plotted over time.
var Indicators = []string{
	models.ColBondYield,
	models.ColStockIndex,
	models.ColCrudeOil,
	models.ColGold,
	models.ColInterestRate,
	models.ColConsumerConf,
	models.ColUnemployment,
	models.ColFXRate,
	models.ColGDPGrowth,
}

// SentimentMetrics are the sentiment-score series plotted over time.
var SentimentMetrics = []string{
	models.ColNewsScore,
	models.ColSpeechScore,
}

// CorrelationColumns are the heatmap's indicators.
var CorrelationColumns = []string{
	models.ColInterestRate,
	models.ColInflation,
	models.ColStockIndex,
	models.ColVIX,
	models.ColGoogleTrends,
	models.ColGDPGrowth,
	models.ColConsumerConf,
	models.ColCrudeOil,
	models.ColGold,
	models.ColSP500Change,
}

// EconomicVariables are the choices of the event-type box plot.
var EconomicVariables = []string{
	models.ColFXRate,
	models.ColGDPGrowth,
	models.ColInterestRate,
	models.ColInflation,
	models.ColSectorImpact,
	models.ColUnemployment,
	models.ColConsumerConf,
}

// IsEconomicVariable reports whether column is one of EconomicVariables.
func IsEconomicVariable(column string) bool {
	for _, c := range EconomicVariables {
		if c == column {
			return true
		}
	}
	return false
}

func noData(what string) error {
	return fmt.Errorf("%w: %s", ErrNoData, what)
}

const dateLabel = "2006-01-02"
