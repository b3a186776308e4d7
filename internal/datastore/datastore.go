// Package datastore opens the backing database and runs schema migration.
package datastore

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/verdantlab/gardensense/internal/conf"
	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// Open connects to the configured database backend.
func Open(settings *conf.DatabaseSettings) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch settings.Type {
	case conf.DatabaseSQLite:
		db, err = gorm.Open(sqlite.Open(settings.Path), gormConfig)
	case conf.DatabaseMySQL:
		db, err = gorm.Open(mysql.Open(settings.DSN), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database type %q", settings.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", settings.Type, err)
	}
	return db, nil
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.Sensor{},
		&entities.Reading{},
		&entities.Threshold{},
		&entities.Alert{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
