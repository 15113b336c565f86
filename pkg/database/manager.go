package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/latoulicious/dexbox/pkg/catalog"
	"github.com/latoulicious/dexbox/pkg/database/repository"
	"github.com/latoulicious/dexbox/pkg/logging"
)

// DatabaseManager owns the connection and the repositories built on it.
type DatabaseManager struct {
	db      *gorm.DB
	Catalog *repository.CatalogRepository
	Logs    *repository.LogRepository
	logger  logging.Logger
}

// NewDatabaseManager wraps an open connection.
func NewDatabaseManager(gormDB *gorm.DB) *DatabaseManager {
	return &DatabaseManager{
		db:      gormDB,
		Catalog: repository.NewCatalogRepository(gormDB),
		Logs:    repository.NewLogRepository(gormDB),
		logger:  logging.GetGlobalLoggerFactory().CreateLogger("database"),
	}
}

// Open connects to dsn and wraps the connection.
func Open(dsn string) (*DatabaseManager, error) {
	db, err := NewGormDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewDatabaseManager(db), nil
}

// DB exposes the underlying connection.
func (dm *DatabaseManager) DB() *gorm.DB {
	return dm.db
}

// Close closes the database connection
func (dm *DatabaseManager) Close() error {
	sqlDB, err := dm.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the connection is alive.
func (dm *DatabaseManager) Ping(ctx context.Context) error {
	sqlDB, err := dm.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Stats summarizes the stored catalogue and diagnostic log.
type Stats struct {
	Entries        int64                      `json:"entries"`
	Items          map[catalog.ListKind]int64 `json:"items"`
	DiagnosticLogs int64                      `json:"diagnostic_logs"`
	OpenConns      int                        `json:"open_connections"`
}

// GetStats returns row counts and pool usage.
func (dm *DatabaseManager) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	var err error

	if stats.Entries, err = dm.Catalog.CountEntries(ctx); err != nil {
		return Stats{}, err
	}
	if stats.Items, err = dm.Catalog.CountItems(ctx); err != nil {
		return Stats{}, err
	}
	if stats.DiagnosticLogs, err = dm.Logs.Count(ctx); err != nil {
		return Stats{}, err
	}
	if sqlDB, dbErr := dm.db.DB(); dbErr == nil {
		stats.OpenConns = sqlDB.Stats().OpenConnections
	}
	return stats, nil
}

// PruneLogs deletes diagnostic entries older than retention.
func (dm *DatabaseManager) PruneLogs(ctx context.Context, retention time.Duration) (int64, error) {
	removed, err := dm.Logs.DeleteBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("failed to prune diagnostic logs: %w", err)
	}
	if removed > 0 {
		dm.logger.Info("Pruned diagnostic logs", map[string]interface{}{
			"removed":   removed,
			"retention": retention.String(),
		})
	}
	return removed, nil
}
