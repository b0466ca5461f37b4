package charts

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"macro-dashboard/models"
)

// BarPoint is one bar.
type BarPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Bar is a single-series bar chart with per-bar colours.
type Bar struct {
	Title  string     `json:"title"`
	XLabel string     `json:"x_label"`
	YLabel string     `json:"y_label"`
	Bars   []BarPoint `json:"bars"`
}

// Heading implements Chart.
func (b *Bar) Heading() string { return b.Title }

// ReturnByDiscussion bars the stock market return by Twitter discussion
// volume, coloured on a blue scale by return.
func ReturnByDiscussion(rows []models.Record) (*Bar, error) {
	type pair struct{ x, y float64 }
	var pairs []pair
	for _, r := range rows {
		x, okX := r.Number(models.ColTwitter)
		y, okY := r.Number(models.ColStockReturn)
		if okX && okY {
			pairs = append(pairs, pair{x, y})
		}
	}
	if len(pairs) == 0 {
		return nil, noData("twitter discussions / stock market return")
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].x < pairs[j].x })

	ys := make([]float64, len(pairs))
	for i, p := range pairs {
		ys[i] = p.y
	}
	lo, hi := floats.Min(ys), floats.Max(ys)

	b := &Bar{
		Title:  fmt.Sprintf("%s by %s", models.ColStockReturn, models.ColTwitter),
		XLabel: models.ColTwitter,
		YLabel: models.ColStockReturn,
	}
	for _, p := range pairs {
		b.Bars = append(b.Bars, BarPoint{
			Label: strconv.FormatFloat(p.x, 'f', -1, 64),
			Value: p.y,
			Color: Blues(p.y, lo, hi),
		})
	}
	return b, nil
}

// XY is a point of a scatter plot.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Trend is a fitted line y = Intercept + Slope*x drawn over [From, To].
type Trend struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	From      float64 `json:"from"`
	To        float64 `json:"to"`
}

// At evaluates the trend at x.
func (t Trend) At(x float64) float64 {
	return t.Intercept + t.Slope*x
}

// Scatter is an x/y plot with an optional OLS trend line.
type Scatter struct {
	Title   string `json:"title"`
	XColumn string `json:"x_column"`
	YColumn string `json:"y_column"`
	Points  []XY   `json:"points"`
	Trend   *Trend `json:"trend,omitempty"`
}

// Heading implements Chart.
func (s *Scatter) Heading() string { return s.Title }

// BeforeAfterScatter plots the return before the news against the return
// after it, with an OLS trend line when x varies.
func BeforeAfterScatter(rows []models.Record) (*Scatter, error) {
	return ScatterWithTrend(rows, models.ColStockBeforeNews, models.ColStockAfterNews)
}

// ScatterWithTrend plots y against x for records holding both.
func ScatterWithTrend(rows []models.Record, x, y string) (*Scatter, error) {
	s := &Scatter{
		Title:   fmt.Sprintf("%s vs %s", y, x),
		XColumn: x,
		YColumn: y,
	}
	var xs, ys []float64
	for _, r := range rows {
		vx, okX := r.Number(x)
		vy, okY := r.Number(y)
		if okX && okY {
			s.Points = append(s.Points, XY{vx, vy})
			xs = append(xs, vx)
			ys = append(ys, vy)
		}
	}
	if len(s.Points) == 0 {
		return nil, noData(x + " / " + y)
	}

	lo, hi := floats.Min(xs), floats.Max(xs)
	if len(xs) >= 2 && hi > lo {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		s.Trend = &Trend{Intercept: alpha, Slope: beta, From: lo, To: hi}
	}
	return s, nil
}

// Blues maps v within [lo, hi] onto a light-to-dark blue ramp.
func Blues(v, lo, hi float64) string {
	t := 1.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	light := [3]float64{0xde, 0xeb, 0xf7}
	dark := [3]float64{0x08, 0x30, 0x6b}
	var c [3]int
	for i := range c {
		c[i] = int(light[i] + (dark[i]-light[i])*t + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
