package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"macro-dashboard/allocation"
	"macro-dashboard/dashboard"
	"macro-dashboard/database"
	"macro-dashboard/filter"
	"macro-dashboard/logging"
	"macro-dashboard/models"
	"macro-dashboard/search"
)

// stats returns the summary cards, or nil without a mirror.
func (s *Server) stats(c *gin.Context, p filter.Params) *database.Stats {
	if s.db == nil {
		return nil
	}
	st, err := database.GetStats(s.db, p)
	if err != nil {
		logging.FromContext(c, s.log).WithError(err).Warn("summary stats unavailable")
		return nil
	}
	return st
}

func (s *Server) apiParams(c *gin.Context) (*models.Dataset, dashboard.Params, bool) {
	ds, ok := s.dataset(c, true)
	if !ok {
		return nil, dashboard.Params{}, false
	}
	p, err := s.params(c)
	if err != nil {
		s.badRequest(c, err, true)
		return nil, dashboard.Params{}, false
	}
	return ds, p, true
}

// GetRecords lists the filtered view, newest first, up to limit rows.
func (s *Server) GetRecords(c *gin.Context) {
	ds, p, ok := s.apiParams(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	view := filter.Apply(ds.Records, p.Filter)
	rows := make([]gin.H, 0, len(view))
	for i := len(view) - 1; i >= 0 && (limit <= 0 || len(rows) < limit); i-- {
		r := view[i]
		rows = append(rows, gin.H{
			"date":       r.Date.Format(filter.DateLayout),
			"sentiment":  r.Sentiment,
			"source":     r.Source(),
			"event_type": r.EventType(),
			"text":       r.ArticleText(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   len(view),
		"records": rows,
	})
}

func (s *Server) GetStats(c *gin.Context) {
	_, p, ok := s.apiParams(c)
	if !ok {
		return
	}
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "summary statistics are disabled"})
		return
	}
	st, err := database.GetStats(s.db, p.Filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// GetForecast trains the model and predicts from the slider query values.
func (s *Server) GetForecast(c *gin.Context) {
	ds, p, ok := s.apiParams(c)
	if !ok {
		return
	}
	f := dashboard.Predict(ds, p.Inputs)

	inputs := gin.H{}
	for _, b := range f.Bounds {
		inputs[b.Predictor] = f.Inputs.Value(b.Predictor)
	}
	out := gin.H{
		"bounds":   f.Bounds,
		"inputs":   inputs,
		"warnings": f.Warnings,
	}
	if f.Err != nil {
		out["error"] = f.Err.Error()
		c.JSON(http.StatusUnprocessableEntity, out)
		return
	}
	out["prediction"] = f.Prediction
	out["display"] = f.Display
	out["attribution"] = f.Summary

	mean, known := dashboard.HistoricalVIX(ds)
	out["allocation"] = allocation.Recommend(f.Inputs, mean, known)
	c.JSON(http.StatusOK, out)
}

// GetSearch runs the keyword search over the filtered view.
func (s *Server) GetSearch(c *gin.Context) {
	ds, p, ok := s.apiParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, search.Run(filter.Apply(ds.Records, p.Filter), p.Query))
}
