package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/latoulicious/dexbox/pkg/database/models"
)

// SlowQueryThreshold marks the probe query as slow in a CheckReport.
const SlowQueryThreshold = 5 * time.Second

var errRollback = errors.New("rollback check transaction")

// CheckReport is the outcome of a connectivity check.
type CheckReport struct {
	Dialect       string
	Version       string
	OpenConns     int
	InUse         int
	Idle          int
	MissingTables []string
	Entries       int64
	QueryTime     time.Duration
}

// Slow reports whether the probe query exceeded SlowQueryThreshold.
func (r CheckReport) Slow() bool {
	return r.QueryTime > SlowQueryThreshold
}

// Check pings the database, reads its version, verifies the expected tables
// and that transactions work. Missing tables are reported, not failed.
func Check(ctx context.Context, db *gorm.DB) (CheckReport, error) {
	report := CheckReport{Dialect: db.Dialector.Name()}
	db = db.WithContext(ctx)

	sqlDB, err := db.DB()
	if err != nil {
		return report, fmt.Errorf("failed to get underlying database connection: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return report, fmt.Errorf("database ping failed: %w", err)
	}

	versionQuery := "SELECT version()"
	if IsSQLite(db) {
		versionQuery = "SELECT sqlite_version()"
	}
	if err := db.Raw(versionQuery).Scan(&report.Version).Error; err != nil {
		return report, fmt.Errorf("failed to get database version: %w", err)
	}

	stats := sqlDB.Stats()
	report.OpenConns = stats.OpenConnections
	report.InUse = stats.InUse
	report.Idle = stats.Idle

	for _, model := range models.All() {
		if db.Migrator().HasTable(model) {
			continue
		}
		if named, ok := model.(interface{ TableName() string }); ok {
			report.MissingTables = append(report.MissingTables, named.TableName())
		}
	}
	if db.Migrator().HasTable(&models.Creature{}) {
		if err := db.Model(&models.Creature{}).Count(&report.Entries).Error; err != nil {
			return report, fmt.Errorf("failed to count creatures: %w", err)
		}
	}

	if err := testTransactionCapability(db); err != nil {
		return report, fmt.Errorf("transaction test failed: %w", err)
	}

	start := time.Now()
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return report, fmt.Errorf("probe query failed: %w", err)
	}
	report.QueryTime = time.Since(start)

	return report, nil
}

// testTransactionCapability writes to a temporary table inside a transaction
// and rolls it back.
func testTransactionCapability(db *gorm.DB) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("CREATE TEMPORARY TABLE IF NOT EXISTS check_transaction (test_data TEXT)").Error; err != nil {
			return fmt.Errorf("failed to create temporary table: %w", err)
		}
		if err := tx.Exec("INSERT INTO check_transaction (test_data) VALUES ('test')").Error; err != nil {
			return fmt.Errorf("failed to insert test data: %w", err)
		}

		var count int64
		if err := tx.Raw("SELECT COUNT(*) FROM check_transaction").Scan(&count).Error; err != nil {
			return fmt.Errorf("failed to count test data: %w", err)
		}
		if count < 1 {
			return fmt.Errorf("unexpected count in transaction: expected at least 1, got %d", count)
		}
		return errRollback
	})
	if errors.Is(err, errRollback) {
		return nil
	}
	return err
}
