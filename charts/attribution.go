package charts

import (
	"macro-dashboard/forecast"
)

// AttributionBars ranks features by mean absolute attribution.
func AttributionBars(summary []forecast.Importance) (*Bar, error) {
	if len(summary) == 0 {
		return nil, noData("attribution")
	}
	lo, hi := summary[len(summary)-1].MeanAbs, summary[0].MeanAbs
	b := &Bar{
		Title:  "Feature Attribution for GDP Forecast",
		XLabel: "feature",
		YLabel: "mean |attribution|",
	}
	for _, imp := range summary {
		b.Bars = append(b.Bars, BarPoint{
			Label: imp.Predictor,
			Value: imp.MeanAbs,
			Color: Blues(imp.MeanAbs, lo, hi),
		})
	}
	return b, nil
}
