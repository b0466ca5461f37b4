package handlers

import (
	"context"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"macro-dashboard/config"
	"macro-dashboard/logging"
	"macro-dashboard/models"
)

// Dataset yields the cached dataset; *loader.Cache satisfies it.
type Dataset interface {
	Get(ctx context.Context) (*models.Dataset, error)
}

// Server holds the state shared by all requests. Everything it holds is
// read-only once the dataset has loaded.
type Server struct {
	data    Dataset
	db      *gorm.DB
	filters config.FilterConfig
	log     logrus.FieldLogger
}

// NewServer builds a Server. db may be nil, in which case summary
// statistics are omitted.
func NewServer(data Dataset, db *gorm.DB, filters config.FilterConfig, log logrus.FieldLogger) *Server {
	return &Server{data: data, db: db, filters: filters, log: log}
}

// Router registers every route on a new gin engine rendering tmpl.
func (s *Server) Router(tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(logging.Middleware(s.log), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	r.GET("/dashboard", s.Dashboard)
	r.GET("/charts/:tab", s.Charts)

	api := r.Group("/api")
	{
		api.GET("/records", s.GetRecords)
		api.GET("/stats", s.GetStats)
		api.GET("/forecast", s.GetForecast)
		api.GET("/search", s.GetSearch)
	}
	return r
}

// dataset returns the loaded dataset or renders the load failure.
func (s *Server) dataset(c *gin.Context, asJSON bool) (*models.Dataset, bool) {
	ds, err := s.data.Get(c.Request.Context())
	if err == nil {
		return ds, true
	}
	logging.FromContext(c, s.log).WithError(err).Error("dataset unavailable")
	if asJSON {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	} else {
		c.HTML(http.StatusServiceUnavailable, "error.html", gin.H{
			"Title":   "Failed to load the dataset",
			"Message": err.Error(),
		})
	}
	return nil, false
}

func (s *Server) badRequest(c *gin.Context, err error, asJSON bool) {
	if asJSON {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.HTML(http.StatusBadRequest, "error.html", gin.H{
		"Title":   "Invalid parameters",
		"Message": err.Error(),
	})
}
