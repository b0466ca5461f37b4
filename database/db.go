package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"macro-dashboard/models"
)

// Open connects to dsn and migrates the mirror table.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", dsn, err)
	}
	if err := db.AutoMigrate(&models.Observation{}); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}
	return db, nil
}

// InitDB opens dsn and mirrors ds into it.
func InitDB(dsn string, ds *models.Dataset, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := Mirror(db, ds); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"dsn": dsn, "rows": ds.Len()}).Info("database connected")
	return db, nil
}
