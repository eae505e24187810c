package db

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errDBUnavailable = errors.New("database unavailable")

// Open connects to Postgres. TranslateError maps driver duplicate-key
// failures to gorm.ErrDuplicatedKey so repositories can surface conflicts.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return conn, nil
}

// Migrate creates or updates the schema, including the composite unique
// indexes the signing invariants rely on.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errDBUnavailable
	}
	err := conn.AutoMigrate(
		&DocumentModel{},
		&DocumentVersionModel{},
		&SignatureStampModel{},
		&DigitalSignatureModel{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	slog.Info("database schema migrated")
	return nil
}
