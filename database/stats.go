package database

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"macro-dashboard/filter"
	"macro-dashboard/models"
)

// Stats summarises the mirror for one filter. Label counts cover the
// whole date window; the remaining fields cover the filtered view.
type Stats struct {
	Total        int64    `json:"total"`
	Positive     int64    `json:"positive"`
	Negative     int64    `json:"negative"`
	Neutral      int64    `json:"neutral"`
	AvgVIX       *float64 `json:"avg_vix"`
	AvgNewsScore *float64 `json:"avg_news_score"`
	EventTypes   int64    `json:"event_types"`
}

func window(db *gorm.DB, p filter.Params) *gorm.DB {
	q := db.Model(&models.Observation{})
	if !p.Start.IsZero() {
		q = q.Where("published_at >= ?", p.Start)
	}
	if !p.End.IsZero() {
		q = q.Where("published_at < ?", p.End.AddDate(0, 0, 1))
	}
	return q
}

func view(db *gorm.DB, p filter.Params) *gorm.DB {
	return window(db, p).Where("sentiment IN ?", p.Sentiment.Labels())
}

// GetStats computes the summary cards for p.
func GetStats(db *gorm.DB, p filter.Params) (*Stats, error) {
	var s Stats

	if err := view(db, p).Count(&s.Total).Error; err != nil {
		return nil, fmt.Errorf("database: count: %w", err)
	}

	labels := []struct {
		label string
		dst   *int64
	}{
		{models.SentimentPositive, &s.Positive},
		{models.SentimentNegative, &s.Negative},
		{models.SentimentNeutral, &s.Neutral},
	}
	for _, l := range labels {
		if err := window(db, p).Where("sentiment = ?", l.label).Count(l.dst).Error; err != nil {
			return nil, fmt.Errorf("database: count %s: %w", l.label, err)
		}
	}

	var err error
	if s.AvgVIX, err = average(view(db, p), "vix"); err != nil {
		return nil, err
	}
	if s.AvgNewsScore, err = average(view(db, p), "news_score"); err != nil {
		return nil, err
	}

	if err := view(db, p).Where("event_type <> ?", "").Distinct("event_type").Count(&s.EventTypes).Error; err != nil {
		return nil, fmt.Errorf("database: count event types: %w", err)
	}
	return &s, nil
}

func average(q *gorm.DB, column string) (*float64, error) {
	var avg sql.NullFloat64
	if err := q.Select("AVG(" + column + ")").Row().Scan(&avg); err != nil {
		return nil, fmt.Errorf("database: average %s: %w", column, err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
