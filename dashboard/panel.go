package dashboard

import (
	"errors"
	"fmt"

	"macro-dashboard/charts"
	"macro-dashboard/models"
)

// Panel is the evaluated content of one charted tab.
type Panel struct {
	Tab      TabInfo
	Charts   []charts.Chart
	Warnings []string
	// Empty is set when the filtered view has no records.
	Empty bool
	Err   error
}

func (p *Panel) add(what string, c charts.Chart, err error) {
	switch {
	case errors.Is(err, charts.ErrNoData):
		p.Warnings = append(p.Warnings, fmt.Sprintf("No numeric data available for %s; chart skipped.", what))
	case err != nil:
		p.Warnings = append(p.Warnings, fmt.Sprintf("%s: %v", what, err))
	default:
		p.Charts = append(p.Charts, c)
	}
}

// evaluate runs fn on a fresh panel. A panic inside fn is recorded as the
// panel's error.
func evaluate(info TabInfo, fn func(p *Panel)) (p *Panel) {
	p = &Panel{Tab: info}
	defer func() {
		if r := recover(); r != nil {
			p.Charts = nil
			p.Err = fmt.Errorf("dashboard: %s tab failed: %v", info.Title, r)
		}
	}()
	fn(p)
	return p
}

func buildPanel(info TabInfo, view []models.Record, params Params, fc func() *Forecast) *Panel {
	return evaluate(info, func(p *Panel) {
		p.Empty = len(view) == 0

		switch info.ID {
		case TabIndicators:
			if p.Empty {
				return
			}
			for _, col := range charts.Indicators {
				l, err := charts.TimeSeries(view, col)
				p.add(col, l, err)
			}

		case TabSentiment:
			if p.Empty {
				return
			}
			for _, col := range charts.SentimentMetrics {
				l, err := charts.TimeSeries(view, col)
				p.add(col, l, err)
			}
			b, err := charts.ReturnByDiscussion(view)
			p.add(models.ColStockReturn, b, err)

		case TabWords:
			if p.Empty {
				return
			}
			s, err := charts.BeforeAfterScatter(view)
			p.add("stock market before and after news", s, err)
			w, err := charts.KeywordCloud(view)
			p.add(models.ColTrendingKeywords, w, err)
			h, err := charts.CorrelationHeatmap(view, charts.CorrelationColumns)
			p.add("the correlation heatmap", h, err)

		case TabEvents:
			if !p.Empty {
				bp, err := charts.BoxByEvent(view, models.ColVIX)
				p.add(models.ColVIX, bp, err)
			}
			// Attribution explains the model, which trains on the full dataset.
			if f := fc(); f.Err == nil {
				a, err := charts.AttributionBars(f.Summary)
				p.add("feature attribution", a, err)
			} else {
				p.Warnings = append(p.Warnings, fmt.Sprintf("Feature attribution unavailable: %v", f.Err))
			}
			if p.Empty {
				return
			}
			v := params.EventVariable()
			bp, err := charts.BoxByEvent(view, v)
			p.add(v, bp, err)
			g, err := charts.BeforeAfterBars(view)
			p.add("stock market before and after news", g, err)
			hist, err := charts.SentimentHistogram(view, 30)
			p.add(models.ColNewsScore, hist, err)
		}
	})
}
