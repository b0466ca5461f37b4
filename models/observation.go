package models

import "time"

// Observation is the SQLite mirror of a Record, holding the columns the
// summary statistics are computed over.
type Observation struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PublishedAt time.Time `json:"published_at" gorm:"index"`
	Sentiment   string    `json:"sentiment" gorm:"index"`
	Source      string    `json:"source"`
	EventType   string    `json:"event_type"`
	VIX         *float64  `json:"vix"`
	NewsScore   *float64  `json:"news_score"`
	StockReturn *float64  `json:"stock_return"`
	GDPGrowth   *float64  `json:"gdp_growth"`
}

// NewObservation projects r onto its mirror row.
func NewObservation(r Record) Observation {
	return Observation{
		PublishedAt: r.Date,
		Sentiment:   r.Sentiment,
		Source:      r.Source(),
		EventType:   r.EventType(),
		VIX:         optional(r, ColVIX),
		NewsScore:   optional(r, ColNewsScore),
		StockReturn: optional(r, ColStockReturn),
		GDPGrowth:   optional(r, ColGDPGrowth),
	}
}

func optional(r Record, column string) *float64 {
	v, ok := r.Number(column)
	if !ok {
		return nil
	}
	return &v
}
