package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiagnosticLog is a persisted warning or error.
type DiagnosticLog struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	Component string                 `gorm:"index;not null;default:'editor'" json:"component"`
	Level     string                 `gorm:"index;not null" json:"level"` // WARN, ERROR
	Message   string                 `gorm:"type:text;not null" json:"message"`
	Error     string                 `gorm:"type:text" json:"error"`
	Fields    map[string]interface{} `gorm:"type:text;serializer:json" json:"fields"`
	SessionID string                 `gorm:"index" json:"session_id"`
	Timestamp time.Time              `gorm:"index;not null" json:"timestamp"`
}

// BeforeCreate assigns the primary key and timestamp.
func (l *DiagnosticLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now()
	}
	return nil
}

// TableName returns the table name for DiagnosticLog
func (DiagnosticLog) TableName() string {
	return "diagnostic_logs"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Creature{},
		&LookupItem{},
		&DiagnosticLog{},
	}
}
