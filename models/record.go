package models

import (
	"math"
	"strings"
	"time"
)

// CSV column headers of the finance-analysis dataset.
const (
	ColPublicationDate  = "Publication Date"
	ColNewsSentiment    = "News Sentiment"
	ColNewsSource       = "News Source"
	ColArticleText      = "Full News Article Text"
	ColTrendingKeywords = "Trending Keywords & Hashtags"
	ColEventType        = "Event Type"
	ColSectorImpact     = "Sector Impact"
	ColBondYield        = "Bond Yield (10Y Treasury)"
	ColStockIndex       = "Stock Market Index"
	ColCrudeOil         = "Crude Oil Prices (USD/Barrel)"
	ColGold             = "Gold Prices (USD/Oz)"
	ColInterestRate     = "Interest Rate (%)"
	ColConsumerConf     = "Consumer Confidence Index"
	ColUnemployment     = "Unemployment Rate"
	ColFXRate           = "Foreign Exchange Rate"
	ColGDPGrowth        = "GDP Growth (%)"
	ColNewsScore        = "News Sentiment Score"
	ColSpeechScore      = "Speech Sentiment Score"
	ColTwitter          = "Twitter Discussions"
	ColStockReturn      = "Stock Market Return (%)"
	ColStockBeforeNews  = "Stock Market Before News (%)"
	ColStockAfterNews   = "Stock Market After News (%)"
	ColInflation        = "Inflation Rate (%)"
	ColVIX              = "VIX Value"
	ColGoogleTrends     = "Google Search Trends"
	ColSP500Change      = "S&P 500 Change (%)"
	ColPredictedGDP     = "Predicted_GDP"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Record is one news/market observation. Every cell is kept as raw text;
// cells that parse as numbers are also kept in Values. A numeric column
// absent from Values is missing for this record.
type Record struct {
	Date      time.Time          `json:"date"`
	Sentiment string             `json:"sentiment"`
	Fields    map[string]string  `json:"-"`
	Values    map[string]float64 `json:"-"`
}

// Text returns the trimmed raw cell of column, or "" if absent.
func (r Record) Text(column string) string {
	return strings.TrimSpace(r.Fields[column])
}

// Number returns the numeric value of column and whether it is present.
// Non-finite values are missing.
func (r Record) Number(column string) (float64, bool) {
	v, ok := r.Values[column]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Source returns the news source name.
func (r Record) Source() string {
	return r.Text(ColNewsSource)
}

// EventType returns the event-type label.
func (r Record) EventType() string {
	return r.Text(ColEventType)
}

// ArticleText returns the full article text.
func (r Record) ArticleText() string {
	return r.Text(ColArticleText)
}

// Dataset is the loaded table, ordered by publication date ascending.
// It is read-only once loaded.
type Dataset struct {
	Source  string
	Headers []string
	Records []Record
}

// Len reports the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Numbers collects the numeric values of column across records, skipping
// missing cells.
func Numbers(records []Record, column string) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := r.Number(column); ok {
			out = append(out, v)
		}
	}
	return out
}
