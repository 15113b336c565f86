package database

import (
	"errors"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteScheme prefixes DSNs that open a SQLite file instead of PostgreSQL.
const SQLiteScheme = "sqlite://"

// Dialector picks the gorm driver for dsn. "sqlite://<path>" opens a SQLite
// database (":memory:" for an in-memory one); any other DSN goes to
// PostgreSQL.
func Dialector(dsn string) gorm.Dialector {
	if path, ok := strings.CutPrefix(dsn, SQLiteScheme); ok {
		return sqlite.Open(path)
	}
	return postgres.Open(dsn)
}

// NewGormDB creates a new GORM database connection using the provided DSN
func NewGormDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is not set")
	}

	db, err := gorm.Open(Dialector(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// IsSQLite reports whether db runs on the SQLite driver.
func IsSQLite(db *gorm.DB) bool {
	return db.Dialector.Name() == "sqlite"
}
