package charts

import (
	"fmt"
	"io"
	"math"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var size = opts.Initialization{Width: "960px", Height: "420px"}

func globals(title string, extra ...echarts.GlobalOpts) []echarts.GlobalOpts {
	return append([]echarts.GlobalOpts{
		echarts.WithInitializationOpts(size),
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: true}),
		echarts.WithLegendOpts(opts.Legend{Show: true, Right: "10%"}),
	}, extra...)
}

// RenderPage writes every chart into one HTML page.
func RenderPage(w io.Writer, list []Chart) error {
	page := components.NewPage()
	for _, c := range list {
		page.AddCharts(c.Echart())
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("charts: render page: %w", err)
	}
	return nil
}

// Echart implements Chart.
func (l *Line) Echart() components.Charter {
	x := make([]string, len(l.Points))
	data := make([]opts.LineData, len(l.Points))
	for i, p := range l.Points {
		x[i] = p.Date.Format(dateLabel)
		data[i] = opts.LineData{Value: p.Value}
	}
	c := echarts.NewLine()
	c.SetGlobalOptions(globals(l.Title,
		echarts.WithXAxisOpts(opts.XAxis{Name: "Publication Date"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: l.Column}),
	)...)
	c.SetXAxis(x).AddSeries(l.Column, data)
	return c
}

// Echart implements Chart.
func (b *Bar) Echart() components.Charter {
	x := make([]string, len(b.Bars))
	data := make([]opts.BarData, len(b.Bars))
	for i, p := range b.Bars {
		x[i] = p.Label
		data[i] = opts.BarData{Value: p.Value, ItemStyle: &opts.ItemStyle{Color: p.Color}}
	}
	c := echarts.NewBar()
	c.SetGlobalOptions(globals(b.Title,
		echarts.WithXAxisOpts(opts.XAxis{Name: b.XLabel}),
		echarts.WithYAxisOpts(opts.YAxis{Name: b.YLabel}),
	)...)
	c.SetXAxis(x).AddSeries(b.YLabel, data)
	return c
}

// Echart implements Chart.
func (s *Scatter) Echart() components.Charter {
	data := make([]opts.ScatterData, len(s.Points))
	for i, p := range s.Points {
		data[i] = opts.ScatterData{Value: []float64{p.X, p.Y}}
	}
	c := echarts.NewScatter()
	c.SetGlobalOptions(globals(s.Title,
		echarts.WithXAxisOpts(opts.XAxis{Name: s.XColumn, Type: "value"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: s.YColumn, Type: "value"}),
	)...)
	c.AddSeries("observations", data)

	if s.Trend != nil {
		trend := echarts.NewLine()
		trend.AddSeries("OLS trend", []opts.LineData{
			{Value: []float64{s.Trend.From, s.Trend.At(s.Trend.From)}},
			{Value: []float64{s.Trend.To, s.Trend.At(s.Trend.To)}},
		})
		c.Overlap(trend)
	}
	return c
}

// Echart implements Chart.
func (w *WordCloud) Echart() components.Charter {
	data := make([]opts.WordCloudData, len(w.Words))
	for i, wc := range w.Words {
		data[i] = opts.WordCloudData{Name: wc.Word, Value: wc.Count}
	}
	c := echarts.NewWordCloud()
	c.SetGlobalOptions(globals(w.Title)...)
	c.AddSeries("keywords", data,
		echarts.WithWorldCloudChartOpts(opts.WordCloudChart{SizeRange: []float32{14, 80}}),
	)
	return c
}

// Echart implements Chart. Undefined cells are left blank.
func (h *Heatmap) Echart() components.Charter {
	var data []opts.HeatMapData
	for i := range h.Columns {
		for j := range h.Columns {
			v := h.Matrix[i][j]
			if math.IsNaN(v) {
				continue
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, math.Round(v*100) / 100}})
		}
	}
	c := echarts.NewHeatMap()
	c.SetGlobalOptions(globals(h.Title,
		echarts.WithInitializationOpts(opts.Initialization{Width: "960px", Height: "640px"}),
		echarts.WithXAxisOpts(opts.XAxis{Type: "category", Data: h.Columns}),
		echarts.WithYAxisOpts(opts.YAxis{Type: "category", Data: h.Columns}),
		echarts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: []string{"#3b4cc0", "#f7f7f7", "#b40426"}},
		}),
	)...)
	c.AddSeries("correlation", data, echarts.WithLabelOpts(opts.Label{Show: true}))
	return c
}

// Echart implements Chart. Outliers are overlaid as points.
func (b *BoxPlot) Echart() components.Charter {
	x := make([]string, len(b.Boxes))
	data := make([]opts.BoxPlotData, len(b.Boxes))
	var outliers []opts.ScatterData
	for i, box := range b.Boxes {
		x[i] = box.Category
		data[i] = opts.BoxPlotData{
			Name:  box.Category,
			Value: []float64{box.Low, box.Q1, box.Median, box.Q3, box.High},
		}
		for _, v := range box.Outliers {
			outliers = append(outliers, opts.ScatterData{Value: []interface{}{box.Category, v}})
		}
	}
	c := echarts.NewBoxPlot()
	c.SetGlobalOptions(globals(b.Title,
		echarts.WithYAxisOpts(opts.YAxis{Name: b.Column}),
	)...)
	c.SetXAxis(x).AddSeries(b.Column, data)

	if len(outliers) > 0 {
		sc := echarts.NewScatter()
		sc.AddSeries("outliers", outliers)
		c.Overlap(sc)
	}
	return c
}

// Echart implements Chart. Gaps render as "-".
func (g *GroupedBar) Echart() components.Charter {
	c := echarts.NewBar()
	c.SetGlobalOptions(globals(g.Title)...)
	c.SetXAxis(g.Labels)
	for _, s := range g.Series {
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			if v == nil {
				data[i] = opts.BarData{Value: "-"}
				continue
			}
			data[i] = opts.BarData{Value: *v}
		}
		c.AddSeries(s.Name, data)
	}
	return c
}

// Echart implements Chart. Label series are stacked per bin.
func (h *Histogram) Echart() components.Charter {
	bins := len(h.Edges) - 1
	x := make([]string, bins)
	for i := 0; i < bins; i++ {
		x[i] = fmt.Sprintf("%.2f to %.2f", h.Edges[i], h.Edges[i+1])
	}
	c := echarts.NewBar()
	c.SetGlobalOptions(globals(h.Title,
		echarts.WithXAxisOpts(opts.XAxis{Name: h.Column}),
		echarts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)...)
	c.SetXAxis(x)
	for _, label := range h.Labels {
		counts := h.Counts[label]
		data := make([]opts.BarData, len(counts))
		for i, n := range counts {
			data[i] = opts.BarData{Value: n}
		}
		c.AddSeries(label, data, echarts.WithBarChartOpts(opts.BarChart{Stack: "sentiment"}))
	}
	return c
}
