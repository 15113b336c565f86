package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/latoulicious/dexbox/pkg/database/models"
	"github.com/latoulicious/dexbox/pkg/logging"
)

var _ logging.LogRepository = (*LogRepository)(nil)

// LogRepository persists diagnostic log entries for logging.DatabaseLogger.
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// SaveLog stores one entry.
func (r *LogRepository) SaveLog(entry logging.LogEntry) error {
	row := models.DiagnosticLog{
		Component: entry.Component,
		Level:     entry.Level,
		Message:   entry.Message,
		Error:     entry.Error,
		Fields:    entry.Fields,
		SessionID: entry.SessionID,
		Timestamp: time.Now(),
	}
	if row.Component == "" {
		row.Component = "editor"
	}
	return r.db.Create(&row).Error
}

// Recent returns the newest entries first.
func (r *LogRepository) Recent(ctx context.Context, limit int) ([]models.DiagnosticLog, error) {
	var rows []models.DiagnosticLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// Count returns the number of stored entries.
func (r *LogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DiagnosticLog{}).Count(&count).Error
	return count, err
}

// DeleteBefore removes entries older than cutoff and reports how many went.
func (r *LogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.DiagnosticLog{})
	return result.RowsAffected, result.Error
}
