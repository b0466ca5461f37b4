package charts

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"macro-dashboard/models"
)

// Box is the five-number summary of one category, with Tukey whiskers.
type Box struct {
	Category string    `json:"category"`
	Low      float64   `json:"low"`
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	High     float64   `json:"high"`
	Outliers []float64 `json:"outliers,omitempty"`
	N        int       `json:"n"`
}

// BoxPlot is one box per event type.
type BoxPlot struct {
	Title  string `json:"title"`
	Column string `json:"column"`
	Boxes  []Box  `json:"boxes"`
}

// Heading implements Chart.
func (b *BoxPlot) Heading() string { return b.Title }

// BoxByEvent summarises column per event type. Categories keep the order
// of first appearance; records without an event type are ignored.
func BoxByEvent(rows []models.Record, column string) (*BoxPlot, error) {
	var order []string
	groups := map[string][]float64{}
	for _, r := range rows {
		ev := r.EventType()
		v, ok := r.Number(column)
		if ev == "" || !ok {
			continue
		}
		if _, seen := groups[ev]; !seen {
			order = append(order, ev)
		}
		groups[ev] = append(groups[ev], v)
	}
	if len(order) == 0 {
		return nil, noData(column + " by event type")
	}

	bp := &BoxPlot{Title: fmt.Sprintf("%s by %s", column, models.ColEventType), Column: column}
	for _, ev := range order {
		bp.Boxes = append(bp.Boxes, summarise(ev, groups[ev]))
	}
	return bp, nil
}

func summarise(category string, vals []float64) Box {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	b := Box{
		Category: category,
		Q1:       Quantile(sorted, 0.25),
		Median:   Quantile(sorted, 0.5),
		Q3:       Quantile(sorted, 0.75),
		N:        len(sorted),
	}
	iqr := b.Q3 - b.Q1
	lowFence, highFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.Low, b.High = math.Inf(1), math.Inf(-1)
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.Low = math.Min(b.Low, v)
		b.High = math.Max(b.High, v)
	}
	return b
}

// Quantile is the linearly interpolated p-quantile of sorted values
// (numpy's default method).
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Histogram counts a column into equal-width bins, one series per
// sentiment label.
type Histogram struct {
	Title  string           `json:"title"`
	Column string           `json:"column"`
	Edges  []float64        `json:"edges"`
	Labels []string         `json:"labels"`
	Counts map[string][]int `json:"counts"`
}

// Heading implements Chart.
func (h *Histogram) Heading() string { return h.Title }

// Total returns the number of values counted.
func (h *Histogram) Total() int {
	var n int
	for _, counts := range h.Counts {
		for _, c := range counts {
			n += c
		}
	}
	return n
}

// SentimentHistogram bins the news sentiment score into bins buckets,
// coloured by sentiment label.
func SentimentHistogram(rows []models.Record, bins int) (*Histogram, error) {
	return HistogramBy(rows, models.ColNewsScore, bins)
}

// HistogramBy bins column into bins equal-width buckets spanning the
// observed range, split by sentiment label.
func HistogramBy(rows []models.Record, column string, bins int) (*Histogram, error) {
	if bins <= 0 {
		bins = 30
	}
	var vals []float64
	var labels []string
	for _, r := range rows {
		if v, ok := r.Number(column); ok {
			vals = append(vals, v)
			labels = append(labels, r.Sentiment)
		}
	}
	if len(vals) == 0 {
		return nil, noData(column)
	}

	lo, hi := floats.Min(vals), floats.Max(vals)
	width := (hi - lo) / float64(bins)
	if width == 0 {
		lo, width = lo-0.5, 1/float64(bins)
	}

	h := &Histogram{
		Title:  fmt.Sprintf("%s Distribution", column),
		Column: column,
		Edges:  make([]float64, bins+1),
		Counts: map[string][]int{},
	}
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	for i, v := range vals {
		label := labels[i]
		if _, ok := h.Counts[label]; !ok {
			h.Labels = append(h.Labels, label)
			h.Counts[label] = make([]int, bins)
		}
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[label][idx]++
	}
	return h, nil
}
