// Package templates embeds the HTML pages rendered by the handlers.
package templates

import (
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed *.html
var files embed.FS

// Funcs are the helpers available to every page.
var Funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"fixed": func(v float64) string {
		return decimal.NewFromFloat(v).StringFixed(2)
	},
	"deref": func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return decimal.NewFromFloat(*v).StringFixed(2)
	},
}

// Parse parses every embedded page.
func Parse() (*template.Template, error) {
	return template.New("pages").Funcs(Funcs).ParseFS(files, "*.html")
}
