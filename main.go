package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"macro-dashboard/config"
	"macro-dashboard/database"
	"macro-dashboard/handlers"
	"macro-dashboard/loader"
	"macro-dashboard/logging"
	"macro-dashboard/templates"
)

func main() {
	path := os.Getenv("DASHBOARD_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		logging.New("info", "json", nil).WithError(err).Fatal("failed to load config")
	}
	log := logging.New(cfg.Logger.Level, cfg.Logger.Format, nil)

	// Dataset, loaded once for the process lifetime
	timeout, _ := cfg.Dataset.TimeoutDuration()
	cache := loader.NewCache(loader.New(timeout, log), cfg.Dataset.Source)

	// A load failure is kept and shown on every page, so startup continues.
	ds, err := cache.Get(context.Background())
	if err != nil {
		log.WithError(err).Error("dataset load failed")
	}

	// SQLite mirror for summary statistics
	var db *gorm.DB
	if err == nil {
		if db, err = database.InitDB(cfg.Database.DSN, ds, log); err != nil {
			log.WithError(err).Warn("summary statistics disabled")
		}
	}

	tmpl, err := templates.Parse()
	if err != nil {
		log.WithError(err).Fatal("failed to parse templates")
	}

	gin.SetMode(cfg.Server.GinMode)
	srv := handlers.NewServer(cache, db, cfg.Filters, log)
	r := srv.Router(tmpl)

	log.WithField("addr", cfg.Server.Addr).Info("starting dashboard server")
	log.Infof("dashboard: http://localhost%s/dashboard", cfg.Server.Addr)

	if err := r.Run(cfg.Server.Addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
