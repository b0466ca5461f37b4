package handlers

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"macro-dashboard/dashboard"
	"macro-dashboard/filter"
	"macro-dashboard/forecast"
)

// params reads one interaction's inputs from the query string. Slider
// values are keyed by forecast.Key.
func (s *Server) params(c *gin.Context) (dashboard.Params, error) {
	fp, err := filter.NewParams(
		c.Query("start"),
		c.Query("end"),
		s.filters.DefaultStart,
		s.filters.DefaultEnd,
		filter.ParseChoice(c.Query("sentiment")),
	)
	if err != nil {
		return dashboard.Params{}, err
	}

	p := dashboard.Params{
		Filter:   fp,
		Tab:      dashboard.Tab(c.Query("tab")),
		EventVar: c.Query("event_var"),
		Query:    c.Query("q"),
		Inputs:   map[string]float64{},
	}
	for _, pred := range forecast.Predictors {
		raw := c.Query(forecast.Key(pred))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return dashboard.Params{}, fmt.Errorf("handlers: invalid value %q for %s", raw, pred)
		}
		p.Inputs[pred] = v
	}
	return p, nil
}

// Field is a hidden form input.
type Field struct {
	Name  string
	Value string
}

// carry copies q without the named keys.
func carry(q url.Values, exclude ...string) url.Values {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	for _, k := range exclude {
		out.Del(k)
	}
	return out
}

func fields(q url.Values) []Field {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Field
	for _, k := range keys {
		for _, v := range q[k] {
			out = append(out, Field{Name: k, Value: v})
		}
	}
	return out
}
