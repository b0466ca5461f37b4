package charts

import (
	"fmt"
	"time"

	"macro-dashboard/models"
)

// TimePoint is one sample of a time series.
type TimePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Line is a single series over publication date.
type Line struct {
	Title  string      `json:"title"`
	Column string      `json:"column"`
	Points []TimePoint `json:"points"`
}

// Heading implements Chart.
func (l *Line) Heading() string { return l.Title }

// TimeSeries plots column over time, one point per record with a numeric
// value.
func TimeSeries(rows []models.Record, column string) (*Line, error) {
	l := &Line{Title: fmt.Sprintf("%s Over Time", column), Column: column}
	for _, r := range rows {
		if v, ok := r.Number(column); ok {
			l.Points = append(l.Points, TimePoint{Date: r.Date, Value: v})
		}
	}
	if len(l.Points) == 0 {
		return nil, noData(column)
	}
	return l, nil
}

// NamedSeries is one series of a grouped bar chart; nil values are gaps.
type NamedSeries struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

// GroupedBar places several series side by side per label.
type GroupedBar struct {
	Title  string        `json:"title"`
	Labels []string      `json:"labels"`
	Series []NamedSeries `json:"series"`
}

// Heading implements Chart.
func (g *GroupedBar) Heading() string { return g.Title }

// BeforeAfterBars compares the stock return before and after the news for
// each record holding at least one of the two values.
func BeforeAfterBars(rows []models.Record) (*GroupedBar, error) {
	g := &GroupedBar{
		Title: "Pre and Post Event Market Analysis",
		Series: []NamedSeries{
			{Name: models.ColStockBeforeNews},
			{Name: models.ColStockAfterNews},
		},
	}
	for _, r := range rows {
		before, okB := r.Number(models.ColStockBeforeNews)
		after, okA := r.Number(models.ColStockAfterNews)
		if !okB && !okA {
			continue
		}
		g.Labels = append(g.Labels, r.Date.Format(dateLabel))
		g.Series[0].Values = append(g.Series[0].Values, ptr(before, okB))
		g.Series[1].Values = append(g.Series[1].Values, ptr(after, okA))
	}
	if len(g.Labels) == 0 {
		return nil, noData("stock market before/after news")
	}
	return g, nil
}

func ptr(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
