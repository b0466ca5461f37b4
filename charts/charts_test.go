package charts

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macro-dashboard/filter"
	"macro-dashboard/forecast"
	"macro-dashboard/models"
	"macro-dashboard/testutil"
)

func TestTimeSeriesSkipsMissing(t *testing.T) {
	rows := []models.Record{
		testutil.Record("2022-07-13", models.SentimentPositive, map[string]float64{models.ColGold: 1800}, nil),
		testutil.Record("2022-07-14", models.SentimentPositive, nil, map[string]string{models.ColGold: "n/a"}),
		testutil.Record("2022-07-15", models.SentimentNegative, map[string]float64{models.ColGold: 1810}, nil),
	}
	l, err := TimeSeries(rows, models.ColGold)
	require.NoError(t, err)
	assert.Equal(t, "Gold Prices (USD/Oz) Over Time", l.Heading())
	require.Len(t, l.Points, 2)
	assert.Equal(t, 1810.0, l.Points[1].Value)

	_, err = TimeSeries(rows, models.ColCrudeOil)
	assert.True(t, errors.Is(err, ErrNoData))
}

// Two of three rows fall inside the range, so exactly two points plot.
func TestFilteredViewEndToEnd(t *testing.T) {
	rows := []models.Record{
		testutil.Record("2022-07-13", models.SentimentPositive, map[string]float64{models.ColVIX: 18}, nil),
		testutil.Record("2022-07-20", models.SentimentNegative, map[string]float64{models.ColVIX: 25}, nil),
		testutil.Record("2022-08-10", models.SentimentNegative, map[string]float64{models.ColVIX: 30}, nil),
	}
	p := filter.Params{Start: testutil.Day("2022-07-13"), End: testutil.Day("2022-07-28"), Sentiment: filter.Both}
	view := filter.Apply(rows, p)
	require.Len(t, view, 2)

	l, err := TimeSeries(view, models.ColVIX)
	require.NoError(t, err)
	require.Len(t, l.Points, 2)
	assert.Equal(t, []float64{18, 25}, []float64{l.Points[0].Value, l.Points[1].Value})
}

func TestBeforeAfterBarsGaps(t *testing.T) {
	rows := []models.Record{
		testutil.Record("2022-07-13", models.SentimentPositive, map[string]float64{models.ColStockBeforeNews: 1, models.ColStockAfterNews: 2}, nil),
		testutil.Record("2022-07-14", models.SentimentPositive, map[string]float64{models.ColStockAfterNews: 3}, nil),
		testutil.Record("2022-07-15", models.SentimentPositive, nil, nil),
	}
	g, err := BeforeAfterBars(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-07-13", "2022-07-14"}, g.Labels)
	assert.Nil(t, g.Series[0].Values[1])
	require.NotNil(t, g.Series[1].Values[1])
	assert.Equal(t, 3.0, *g.Series[1].Values[1])
}

func TestReturnByDiscussionSortedAndColoured(t *testing.T) {
	rows := []models.Record{
		testutil.Record("2022-07-13", models.SentimentPositive, map[string]float64{models.ColTwitter: 300, models.ColStockReturn: 2}, nil),
		testutil.Record("2022-07-14", models.SentimentPositive, map[string]float64{models.ColTwitter: 100, models.ColStockReturn: -1}, nil),
	}
	b, err := ReturnByDiscussion(rows)
	require.NoError(t, err)
	require.Len(t, b.Bars, 2)
	assert.Equal(t, "100", b.Bars[0].Label)
	assert.Equal(t, "#deebf7", b.Bars[0].Color)
	assert.Equal(t, "#08306b", b.Bars[1].Color)
}

func TestScatterTrend(t *testing.T) {
	var rows []models.Record
	for i, x := range []float64{1, 2, 3, 4} {
		rows = append(rows, testutil.Record(
			testutil.Day("2022-07-13").AddDate(0, 0, i).Format("2006-01-02"),
			models.SentimentPositive,
			map[string]float64{models.ColStockBeforeNews: x, models.ColStockAfterNews: 1 + 2*x},
			nil,
		))
	}
	s, err := BeforeAfterScatter(rows)
	require.NoError(t, err)
	require.NotNil(t, s.Trend)
	assert.InDelta(t, 1, s.Trend.Intercept, 1e-9)
	assert.InDelta(t, 2, s.Trend.Slope, 1e-9)
	assert.Equal(t, 4.0, s.Trend.To)

	flat := rows[:1]
	s, err = BeforeAfterScatter(flat)
	require.NoError(t, err)
	assert.Nil(t, s.Trend)
}

func TestQuantileLinear(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.75, Quantile(sorted, 0.25))
	assert.Equal(t, 2.5, Quantile(sorted, 0.5))
	assert.Equal(t, 4.0, Quantile(sorted, 1))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestBoxByEventOutliers(t *testing.T) {
	var rows []models.Record
	for i, v := range []float64{10, 11, 12, 13, 100} {
		rows = append(rows, testutil.Record(
			testutil.Day("2022-07-13").AddDate(0, 0, i).Format("2006-01-02"),
			models.SentimentPositive,
			map[string]float64{models.ColVIX: v},
			map[string]string{models.ColEventType: "Earnings"},
		))
	}
	rows = append(rows,
		testutil.Record("2022-07-20", models.SentimentNegative, map[string]float64{models.ColVIX: 20}, map[string]string{models.ColEventType: "Policy"}),
		testutil.Record("2022-07-21", models.SentimentNegative, map[string]float64{models.ColVIX: 50}, nil),
	)

	bp, err := BoxByEvent(rows, models.ColVIX)
	require.NoError(t, err)
	require.Len(t, bp.Boxes, 2)
	earn := bp.Boxes[0]
	assert.Equal(t, "Earnings", earn.Category)
	assert.Equal(t, 12.0, earn.Median)
	assert.Equal(t, []float64{100}, earn.Outliers)
	assert.Equal(t, 10.0, earn.Low)
	assert.Equal(t, 13.0, earn.High)
	assert.Equal(t, 5, earn.N)
	assert.Equal(t, "Policy", bp.Boxes[1].Category)
}

func TestHistogramSharedBins(t *testing.T) {
	rows := []models.Record{
		testutil.Record("2022-07-13", models.SentimentPositive, map[string]float64{models.ColNewsScore: 0}, nil),
		testutil.Record("2022-07-14", models.SentimentNegative, map[string]float64{models.ColNewsScore: 1}, nil),
		testutil.Record("2022-07-15", models.SentimentNegative, map[string]float64{models.ColNewsScore: 0.5}, nil),
	}
	h, err := SentimentHistogram(rows, 30)
	require.NoError(t, err)
	assert.Len(t, h.Edges, 31)
	assert.Equal(t, []string{models.SentimentPositive, models.SentimentNegative}, h.Labels)
	assert.Equal(t, 3, h.Total())
	assert.Equal(t, 1, h.Counts[models.SentimentNegative][29])
	assert.Equal(t, 1, h.Counts[models.SentimentPositive][0])

	same := rows[:1]
	h, err = SentimentHistogram(same, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Total())
}

func TestCorrelationHeatmap(t *testing.T) {
	rows := []models.Record{
		testutil.Record("2022-07-13", models.SentimentPositive, map[string]float64{models.ColVIX: 1, models.ColGold: 2, models.ColInflation: 5}, nil),
		testutil.Record("2022-07-14", models.SentimentPositive, map[string]float64{models.ColVIX: 2, models.ColGold: 4, models.ColInflation: 5}, nil),
		testutil.Record("2022-07-15", models.SentimentPositive, map[string]float64{models.ColVIX: 3, models.ColGold: 6, models.ColInflation: 5}, nil),
	}
	h, err := CorrelationHeatmap(rows, CorrelationColumns)
	require.NoError(t, err)
	assert.Equal(t, []string{models.ColInflation, models.ColVIX, models.ColGold}, h.Columns)
	assert.InDelta(t, 1, h.Matrix[1][2], 1e-12)
	assert.True(t, math.IsNaN(h.Matrix[0][1]))

	_, err = CorrelationHeatmap(rows, []string{models.ColCrudeOil})
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestCountWords(t *testing.T) {
	words := CountWords("The Fed and the #Fed raise rates; rates rise. It's a Fed day", 2)
	require.Len(t, words, 2)
	assert.Equal(t, WordCount{Word: "fed", Count: 3}, words[0])
	assert.Equal(t, WordCount{Word: "rates", Count: 2}, words[1])
}

func TestKeywordCloudEmpty(t *testing.T) {
	rows := []models.Record{testutil.Record("2022-07-13", models.SentimentPositive, nil, nil)}
	_, err := KeywordCloud(rows)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestAttributionBarsRanked(t *testing.T) {
	b, err := AttributionBars([]forecast.Importance{
		{Predictor: models.ColVIX, MeanAbs: 2},
		{Predictor: models.ColGold, MeanAbs: 0.5},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ColVIX, b.Bars[0].Label)

	_, err = AttributionBars(nil)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestRenderPage(t *testing.T) {
	rows := testutil.Labeled()
	line, err := TimeSeries(rows, models.ColVIX)
	require.NoError(t, err)
	box, err := BoxByEvent(rows, models.ColVIX)
	require.NoError(t, err)
	heat := &Heatmap{
		Title:   "Correlation Heatmap",
		Columns: []string{"a", "b"},
		Matrix:  [][]float64{{1, math.NaN()}, {math.NaN(), 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, []Chart{line, box, heat}))
	out := buf.String()
	assert.Contains(t, out, "VIX Value Over Time")
	assert.Contains(t, out, "Correlation Heatmap")
	assert.Contains(t, out, "[0,0,1]")
	assert.NotContains(t, out, "[0,1,")
}
