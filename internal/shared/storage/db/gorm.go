package db

import (
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenGorm wraps an existing pool so gorm-backed repositories share the
// connection limits configured in Connect. Schema is owned by goose; gorm
// never auto-migrates.
func OpenGorm(database *sql.DB) (*gorm.DB, error) {
	if database == nil {
		return nil, fmt.Errorf("gorm: nil database")
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: database}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return gdb, nil
}
