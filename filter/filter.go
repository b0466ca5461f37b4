package filter

import (
	"fmt"
	"time"

	"macro-dashboard/models"
)

// DateLayout is the format of date inputs.
const DateLayout = "2006-01-02"

// Choice is a sidebar sentiment option.
type Choice string

const (
	PositiveOnly Choice = "Positive Only"
	NegativeOnly Choice = "Negative Only"
	Both         Choice = "Both"
)

// Choices lists the sentiment options in display order.
var Choices = []Choice{PositiveOnly, NegativeOnly, Both}

// Labels returns the sentiment labels selected by c. Unknown choices
// select both polarities.
func (c Choice) Labels() []string {
	switch c {
	case PositiveOnly:
		return []string{models.SentimentPositive}
	case NegativeOnly:
		return []string{models.SentimentNegative}
	default:
		return []string{models.SentimentPositive, models.SentimentNegative}
	}
}

// ParseChoice maps a form value onto a Choice, defaulting to Both.
func ParseChoice(s string) Choice {
	for _, c := range Choices {
		if string(c) == s {
			return c
		}
	}
	return Both
}

// Params is the date-range and sentiment predicate. Start and End are
// calendar dates and both bounds are inclusive.
type Params struct {
	Start     time.Time
	End       time.Time
	Sentiment Choice
}

// NewParams parses start and end (YYYY-MM-DD) falling back to the given
// defaults when a value is empty.
func NewParams(start, end, defStart, defEnd string, choice Choice) (Params, error) {
	s, err := ParseDate(start, defStart)
	if err != nil {
		return Params{}, err
	}
	e, err := ParseDate(end, defEnd)
	if err != nil {
		return Params{}, err
	}
	return Params{Start: s, End: e, Sentiment: choice}, nil
}

// ParseDate parses value, or def when value is empty.
func ParseDate(value, def string) (time.Time, error) {
	if value == "" {
		value = def
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("filter: invalid date %q: %w", value, err)
	}
	return t, nil
}

// Match reports whether r satisfies p.
func (p Params) Match(r models.Record) bool {
	day := truncate(r.Date)
	if day.Before(truncate(p.Start)) || day.After(truncate(p.End)) {
		return false
	}
	for _, label := range p.Sentiment.Labels() {
		if r.Sentiment == label {
			return true
		}
	}
	return false
}

// Apply returns the records matching p, preserving order. The result
// never aliases records.
func Apply(records []models.Record, p Params) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if p.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
