package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macro-dashboard/models"
	"macro-dashboard/testutil"
)

func days(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Date.Format(DateLayout) + "/" + r.Sentiment
	}
	return out
}

func TestApplyExactMembership(t *testing.T) {
	rows := testutil.Labeled()

	tests := []struct {
		name       string
		start, end string
		choice     Choice
		want       []string
	}{
		{
			name: "both inside window", start: "2022-07-13", end: "2022-07-28", choice: Both,
			want: []string{
				"2022-07-13/positive", "2022-07-15/negative", "2022-07-18/positive",
				"2022-07-20/negative", "2022-07-22/positive", "2022-07-28/negative",
			},
		},
		{
			name: "positive only", start: "2022-07-13", end: "2022-07-28", choice: PositiveOnly,
			want: []string{"2022-07-13/positive", "2022-07-18/positive", "2022-07-22/positive"},
		},
		{
			name: "negative only full range", start: "2022-07-01", end: "2022-08-31", choice: NegativeOnly,
			want: []string{
				"2022-07-08/negative", "2022-07-15/negative", "2022-07-20/negative",
				"2022-07-28/negative", "2022-08-02/negative",
			},
		},
		{
			name: "single day", start: "2022-07-29", end: "2022-07-29", choice: Both,
			want: []string{"2022-07-29/positive"},
		},
		{
			name: "inverted range", start: "2022-07-28", end: "2022-07-13", choice: Both,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParams(tt.start, tt.end, "", "", tt.choice)
			require.NoError(t, err)
			assert.Equal(t, tt.want, days(Apply(rows, p)))
		})
	}
}

func TestApplyMatchesBruteForce(t *testing.T) {
	rows := testutil.Labeled()
	start, end := testutil.Day("2022-07-10"), testutil.Day("2022-07-25")

	for _, c := range Choices {
		got := Apply(rows, Params{Start: start, End: end, Sentiment: c})

		var want []models.Record
		for _, r := range rows {
			inRange := !r.Date.Before(start) && !r.Date.After(end)
			inSet := false
			for _, l := range c.Labels() {
				inSet = inSet || l == r.Sentiment
			}
			if inRange && inSet {
				want = append(want, r)
			}
		}
		assert.Equal(t, days(want), days(got), string(c))
	}
}

func TestApplyIdempotent(t *testing.T) {
	p, err := NewParams("2022-07-08", "2022-07-29", "", "", Both)
	require.NoError(t, err)

	once := Apply(testutil.Labeled(), p)
	twice := Apply(once, p)
	assert.Equal(t, days(once), days(twice))
}

func TestEndDateIncludesWholeDay(t *testing.T) {
	r := testutil.Record("2022-07-28", models.SentimentPositive, nil, nil)
	r.Date = r.Date.Add(15 * time.Hour)

	p, err := NewParams("2022-07-01", "2022-07-28", "", "", Both)
	require.NoError(t, err)
	assert.True(t, p.Match(r))
}

func TestNeutralNeverSelected(t *testing.T) {
	r := testutil.Record("2022-07-13", models.SentimentNeutral, nil, nil)
	for _, c := range Choices {
		p := Params{Start: r.Date, End: r.Date, Sentiment: c}
		assert.False(t, p.Match(r), string(c))
	}
}

func TestParseChoiceAndDefaults(t *testing.T) {
	assert.Equal(t, PositiveOnly, ParseChoice("Positive Only"))
	assert.Equal(t, Both, ParseChoice("bogus"))

	p, err := NewParams("", "", "2022-07-13", "2022-07-28", Both)
	require.NoError(t, err)
	assert.Equal(t, "2022-07-13", p.Start.Format(DateLayout))
	assert.Equal(t, "2022-07-28", p.End.Format(DateLayout))

	_, err = NewParams("13/07/2022", "", "", "2022-07-28", Both)
	assert.Error(t, err)
}
