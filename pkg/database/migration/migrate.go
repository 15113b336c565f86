package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/latoulicious/dexbox/pkg/database/models"
	"github.com/latoulicious/dexbox/pkg/logging"
)

// RunMigration creates or updates every table.
func RunMigration(db *gorm.DB) error {
	logger := logging.GetGlobalLoggerFactory().CreateLogger("migration")

	logger.Info("Running database migrations...", map[string]interface{}{
		"dialect": db.Dialector.Name(),
	})
	if err := db.AutoMigrate(models.All()...); err != nil {
		logger.Error("Failed to migrate database", err, nil)
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Migrations completed successfully!", nil)
	return nil
}

// Reset drops every table the migration owns.
func Reset(db *gorm.DB) error {
	logger := logging.GetGlobalLoggerFactory().CreateLogger("migration")

	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			logger.Error("Failed to drop table", err, map[string]interface{}{
				"model": fmt.Sprintf("%T", all[i]),
			})
			return fmt.Errorf("failed to drop table for %T: %w", all[i], err)
		}
	}

	logger.Info("Database reset successfully", nil)
	return nil
}
