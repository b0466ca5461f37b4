package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macro-dashboard/models"
	"macro-dashboard/testutil"
)

func TestRunEmptyQueryIsNoop(t *testing.T) {
	view := testutil.Labeled()
	res := Run(view, "")

	assert.False(t, res.Performed)
	assert.Equal(t, view, res.Matches)
	assert.Equal(t, len(view), res.Total)
	assert.Empty(t, res.Preview)
}

func TestRunCaseInsensitive(t *testing.T) {
	view := []models.Record{
		testutil.Record("2022-07-13", models.SentimentPositive, nil, map[string]string{
			models.ColArticleText: "global oil prices rise",
			models.ColNewsSource:  "Reuters",
		}),
	}
	res := Run(view, "OIL")
	require.True(t, res.Performed)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Reuters", res.Preview[0].Source)
	assert.Equal(t, "global oil prices rise", res.Preview[0].Text)
}

func TestRunNoMatches(t *testing.T) {
	res := Run(testutil.Labeled(), "cryptocurrency")
	assert.True(t, res.Performed)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Matches)
	assert.NotNil(t, res.Matches)
}

func TestRunSkipsMissingTextAndCapsPreview(t *testing.T) {
	view := testutil.Labeled()
	res := Run(view, "oil")
	// "Global oil prices...", "OIL majors...", "Crude oil slides..."
	assert.Equal(t, 3, res.Total)

	res = Run(view, "s")
	assert.Equal(t, 11, res.Total, "the record without text never matches")
	assert.Len(t, res.Preview, PreviewSize)
}

func TestRunTreatsQueryLiterally(t *testing.T) {
	view := []models.Record{
		testutil.Record("2022-07-13", models.SentimentPositive, nil, map[string]string{
			models.ColArticleText: "S&P 500 (SPX) gains",
		}),
	}
	assert.Equal(t, 1, Run(view, "(spx)").Total)
	assert.Equal(t, 0, Run(view, "s.p").Total)
}
