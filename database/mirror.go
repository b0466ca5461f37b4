package database

import (
	"fmt"

	"gorm.io/gorm"

	"macro-dashboard/models"
)

const batchSize = 500

// Mirror replaces the mirror table's contents with ds.
func Mirror(db *gorm.DB, ds *models.Dataset) error {
	rows := make([]models.Observation, 0, ds.Len())
	for _, r := range ds.Records {
		rows = append(rows, models.NewObservation(r))
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Observation{}).Error; err != nil {
			return fmt.Errorf("database: clear mirror: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
			return fmt.Errorf("database: mirror %d rows: %w", len(rows), err)
		}
		return nil
	})
}
