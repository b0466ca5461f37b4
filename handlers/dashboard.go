package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"macro-dashboard/charts"
	"macro-dashboard/dashboard"
	"macro-dashboard/database"
	"macro-dashboard/filter"
	"macro-dashboard/logging"
)

type DashboardData struct {
	Source   string
	Filters  FilterParams
	Choices  []filter.Choice
	Tabs     []TabLink
	Active   dashboard.TabInfo
	Panel    *dashboard.Panel
	ChartURL string
	View     *dashboard.View
	Stats    *database.Stats
	Sliders  []Slider

	EventVars []string
	EventVar  string

	query url.Values
}

type FilterParams struct {
	Start     string
	End       string
	Sentiment filter.Choice
	MinDate   string
	MaxDate   string
}

type TabLink struct {
	Info   dashboard.TabInfo
	URL    string
	Active bool
}

// Slider is one predictor input. Invalid predictors have no slider.
type Slider struct {
	Predictor string
	Key       string
	Min       float64
	Max       float64
	Value     float64
	Valid     bool
}

// Hidden returns the current query as hidden inputs, minus exclude.
func (d DashboardData) Hidden(exclude ...string) []Field {
	return fields(carry(d.query, exclude...))
}

// HiddenWithoutSliders is Hidden minus every predictor input.
func (d DashboardData) HiddenWithoutSliders() []Field {
	keys := make([]string, 0, len(d.Sliders))
	for _, s := range d.Sliders {
		keys = append(keys, s.Key)
	}
	return d.Hidden(keys...)
}

// Dashboard renders the full page for one interaction.
func (s *Server) Dashboard(c *gin.Context) {
	ds, ok := s.dataset(c, false)
	if !ok {
		return
	}
	p, err := s.params(c)
	if err != nil {
		s.badRequest(c, err, false)
		return
	}

	view := dashboard.Evaluate(ds, p)
	query := c.Request.URL.Query()
	active, _ := dashboard.LookupTab(string(p.ActiveTab()))

	data := DashboardData{
		Source: ds.Source,
		Filters: FilterParams{
			Start:     p.Filter.Start.Format(filter.DateLayout),
			End:       p.Filter.End.Format(filter.DateLayout),
			Sentiment: p.Filter.Sentiment,
			MinDate:   s.filters.MinDate,
			MaxDate:   s.filters.MaxDate,
		},
		Choices:   filter.Choices,
		Active:    active,
		Panel:     view.Panel(active.ID),
		View:      view,
		Stats:     s.stats(c, p.Filter),
		Sliders:   sliders(view.Forecast),
		EventVars: charts.EconomicVariables,
		EventVar:  p.EventVariable(),
		query:     query,
	}
	for _, t := range dashboard.Tabs {
		q := carry(query, "tab")
		q.Set("tab", string(t.ID))
		data.Tabs = append(data.Tabs, TabLink{Info: t, URL: "/dashboard?" + q.Encode(), Active: t.ID == active.ID})
	}
	if active.Charted {
		data.ChartURL = "/charts/" + string(active.ID) + "?" + carry(query, "tab").Encode()
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}

func sliders(f *dashboard.Forecast) []Slider {
	out := make([]Slider, 0, len(f.Bounds))
	for _, b := range f.Bounds {
		out = append(out, Slider{
			Predictor: b.Predictor,
			Key:       b.Key,
			Min:       b.Min,
			Max:       b.Max,
			Value:     f.Inputs.Value(b.Predictor),
			Valid:     b.Valid,
		})
	}
	return out
}

// Charts serves one tab's charts as a standalone page for the dashboard
// iframe.
func (s *Server) Charts(c *gin.Context) {
	info, ok := dashboard.LookupTab(c.Param("tab"))
	if !ok || !info.Charted {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"Title":   "Unknown tab",
			"Message": c.Param("tab"),
		})
		return
	}
	ds, ok := s.dataset(c, false)
	if !ok {
		return
	}
	p, err := s.params(c)
	if err != nil {
		s.badRequest(c, err, false)
		return
	}

	panel := dashboard.EvaluateTab(ds, p, info)
	if panel.Err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Title":   info.Title,
			"Message": panel.Err.Error(),
		})
		return
	}
	if len(panel.Charts) == 0 {
		c.HTML(http.StatusOK, "empty.html", gin.H{"Panel": panel})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := charts.RenderPage(c.Writer, panel.Charts); err != nil {
		logging.FromContext(c, s.log).WithError(err).Error("chart page failed")
	}
}
