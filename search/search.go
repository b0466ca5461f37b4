package search

import (
	"strings"
	"time"

	"macro-dashboard/models"
)

// PreviewSize is the number of matches shown in the results table.
const PreviewSize = 5

// Row is one line of the results table.
type Row struct {
	Date      time.Time `json:"date"`
	Source    string    `json:"source"`
	Sentiment string    `json:"sentiment"`
	Text      string    `json:"text"`
}

// Result is the outcome of a search. When Performed is false the query was
// empty and Matches is the input view, untouched.
type Result struct {
	Query     string          `json:"query"`
	Performed bool            `json:"performed"`
	Total     int             `json:"total"`
	Matches   []models.Record `json:"-"`
	Preview   []Row           `json:"preview"`
}

// Run filters view to the records whose article text contains query,
// ignoring case. Records without text never match.
func Run(view []models.Record, query string) Result {
	if query == "" {
		return Result{Matches: view, Total: len(view)}
	}

	needle := strings.ToLower(query)
	res := Result{Query: query, Performed: true, Matches: []models.Record{}, Preview: []Row{}}
	for _, r := range view {
		text := r.ArticleText()
		if text == "" || !strings.Contains(strings.ToLower(text), needle) {
			continue
		}
		res.Matches = append(res.Matches, r)
		if len(res.Preview) < PreviewSize {
			res.Preview = append(res.Preview, Row{
				Date:      r.Date,
				Source:    r.Source(),
				Sentiment: r.Sentiment,
				Text:      text,
			})
		}
	}
	res.Total = len(res.Matches)
	return res
}
