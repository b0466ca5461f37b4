package charts

import (
	"regexp"
	"sort"
	"strings"

	"macro-dashboard/models"
)

// MaxWords caps the number of words in a cloud.
const MaxWords = 200

var wordPattern = regexp.MustCompile(`\w[\w']+`)

var stopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true, "an": true,
	"and": true, "any": true, "are": true, "as": true, "at": true, "be": true,
	"been": true, "but": true, "by": true, "can": true, "could": true, "did": true,
	"do": true, "for": true, "from": true, "had": true, "has": true, "have": true,
	"he": true, "her": true, "his": true, "how": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "it's": true, "more": true,
	"no": true, "not": true, "of": true, "on": true, "or": true, "our": true,
	"out": true, "over": true, "she": true, "so": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "to": true,
	"up": true, "was": true, "we": true, "were": true, "what": true, "when": true,
	"which": true, "who": true, "will": true, "with": true, "would": true,
	"you": true, "your": true,
}

// WordCount is a word and its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordCloud is a frequency-weighted word cloud.
type WordCloud struct {
	Title string      `json:"title"`
	Words []WordCount `json:"words"`
}

// Heading implements Chart.
func (w *WordCloud) Heading() string { return w.Title }

// KeywordCloud builds a cloud from the non-missing trending keywords.
func KeywordCloud(rows []models.Record) (*WordCloud, error) {
	var parts []string
	for _, r := range rows {
		if t := r.Text(models.ColTrendingKeywords); t != "" {
			parts = append(parts, t)
		}
	}
	words := CountWords(strings.Join(parts, " "), MaxWords)
	if len(words) == 0 {
		return nil, noData(models.ColTrendingKeywords)
	}
	return &WordCloud{Title: "Trending Keywords & Hashtags", Words: words}, nil
}

// CountWords tokenises text, drops stopwords and returns the top limit words
// by frequency, ties broken alphabetically.
func CountWords(text string, limit int) []WordCount {
	counts := map[string]int{}
	for _, tok := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if stopwords[tok] {
			continue
		}
		counts[tok]++
	}
	out := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
