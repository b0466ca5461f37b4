// Package testutil builds record fixtures for package tests.
package testutil

import (
	"math/rand"
	"strconv"
	"time"

	"macro-dashboard/models"
)

// Day parses a YYYY-MM-DD date and panics on bad input.
func Day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Record builds a record dated day with the given sentiment, numeric
// values and text fields. Numeric values are mirrored into the raw fields.
func Record(day, sentiment string, values map[string]float64, fields map[string]string) models.Record {
	r := models.Record{
		Date:      Day(day),
		Sentiment: sentiment,
		Fields:    map[string]string{models.ColNewsSentiment: sentiment},
		Values:    map[string]float64{},
	}
	for k, v := range values {
		r.Values[k] = v
		r.Fields[k] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	for k, v := range fields {
		r.Fields[k] = v
	}
	return r
}

// Labeled returns twelve records spread over July 2022 with mixed
// sentiments, used for filter and search tests.
func Labeled() []models.Record {
	rows := []struct {
		day, sentiment, text string
		vix                  float64
	}{
		{"2022-07-06", models.SentimentPositive, "Markets open higher on tech optimism", 18},
		{"2022-07-08", models.SentimentNegative, "Global oil prices rise amid supply fears", 24},
		{"2022-07-13", models.SentimentNeutral, "Central bank minutes released", 20},
		{"2022-07-13", models.SentimentPositive, "Retail sales beat forecasts", 17},
		{"2022-07-15", models.SentimentNegative, "OIL majors cut output guidance", 26},
		{"2022-07-18", models.SentimentPositive, "Gold steadies as dollar eases", 19},
		{"2022-07-20", models.SentimentNegative, "", 28},
		{"2022-07-22", models.SentimentPositive, "Housing starts climb", 16},
		{"2022-07-25", models.SentimentNeutral, "Bond yields flat ahead of Fed", 21},
		{"2022-07-28", models.SentimentNegative, "Unemployment claims jump", 27},
		{"2022-07-29", models.SentimentPositive, "GDP report surprises on the upside", 15},
		{"2022-08-02", models.SentimentNegative, "Crude oil slides on demand worries", 23},
	}
	out := make([]models.Record, 0, len(rows))
	for _, r := range rows {
		fields := map[string]string{
			models.ColNewsSource: "Wire",
			models.ColEventType:  "Macro",
		}
		if r.text != "" {
			fields[models.ColArticleText] = r.text
		}
		out = append(out, Record(r.day, r.sentiment, map[string]float64{models.ColVIX: r.vix}, fields))
	}
	return out
}

// TrainingColumns are the regression predictors, in model order.
var TrainingColumns = []string{
	models.ColConsumerConf,
	models.ColCrudeOil,
	models.ColGold,
	models.ColSP500Change,
	models.ColVIX,
	models.ColFXRate,
	models.ColInterestRate,
	models.ColInflation,
}

// TrainingWeights and TrainingIntercept define the exact plane Training
// samples Predicted_GDP from.
var TrainingWeights = []float64{0.05, -0.02, 0.001, 0.3, -0.1, 0.5, -0.25, -0.4}

const TrainingIntercept = 1.5

// Training returns n fully populated rows, one per day from 2022-07-06,
// alternating positive and negative, with every article mentioning oil.
func Training(n int) *models.Dataset {
	rng := rand.New(rand.NewSource(7))
	ds := &models.Dataset{Source: "fixture"}
	start := Day("2022-07-06")
	for i := 0; i < n; i++ {
		vals := map[string]float64{
			models.ColNewsScore:   rng.Float64()*2 - 1,
			models.ColTwitter:     float64(100 * (i + 1)),
			models.ColStockReturn: rng.Float64() - 0.5,
		}
		target := TrainingIntercept
		for j, col := range TrainingColumns {
			x := rng.Float64()*40 + float64(j)
			vals[col] = x
			target += TrainingWeights[j] * x
		}
		vals[models.ColPredictedGDP] = target

		sentiment := models.SentimentPositive
		if i%2 == 1 {
			sentiment = models.SentimentNegative
		}
		event := "Earnings"
		if i%3 == 0 {
			event = "Policy"
		}
		ds.Records = append(ds.Records, Record(
			start.AddDate(0, 0, i).Format("2006-01-02"), sentiment, vals,
			map[string]string{
				models.ColNewsSource:       "Wire",
				models.ColEventType:        event,
				models.ColArticleText:      "Oil output steady",
				models.ColTrendingKeywords: "#oil #fed rates",
			},
		))
	}
	return ds
}
