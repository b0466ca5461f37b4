package dashboard

import (
	"gonum.org/v1/gonum/stat"

	"macro-dashboard/allocation"
	"macro-dashboard/filter"
	"macro-dashboard/models"
	"macro-dashboard/search"
)

// View is everything one interaction displays.
type View struct {
	Params   Params
	Records  []models.Record
	Panels   []*Panel
	Forecast *Forecast
	Search   search.Result
	Advice   allocation.Advice
}

// Panel returns the panel of tab, or nil for tabs without charts.
func (v *View) Panel(tab Tab) *Panel {
	for _, p := range v.Panels {
		if p.Tab.ID == tab {
			return p
		}
	}
	return nil
}

// Evaluate recomputes the full view. Tabs are evaluated independently.
func Evaluate(ds *models.Dataset, params Params) *View {
	v := &View{
		Params:  params,
		Records: filter.Apply(ds.Records, params.Filter),
	}
	v.Forecast = Predict(ds, params.Inputs)
	fc := func() *Forecast { return v.Forecast }

	for _, t := range Tabs {
		if t.Charted {
			v.Panels = append(v.Panels, buildPanel(t, v.Records, params, fc))
		}
	}
	v.Search = search.Run(v.Records, params.Query)
	mean, ok := HistoricalVIX(ds)
	v.Advice = allocation.Recommend(v.Forecast.Inputs, mean, ok)
	return v
}

// EvaluateTab computes only the panel of a charted tab.
func EvaluateTab(ds *models.Dataset, params Params, info TabInfo) *Panel {
	view := filter.Apply(ds.Records, params.Filter)
	var f *Forecast
	fc := func() *Forecast {
		if f == nil {
			f = Predict(ds, params.Inputs)
		}
		return f
	}
	return buildPanel(info, view, params, fc)
}

// HistoricalVIX is the dataset-wide mean VIX.
func HistoricalVIX(ds *models.Dataset) (float64, bool) {
	vals := models.Numbers(ds.Records, models.ColVIX)
	if len(vals) == 0 {
		return 0, false
	}
	return stat.Mean(vals, nil), true
}
