package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fitcoach/config"
	"fitcoach/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the SQLite database named by config.AppConfig.Database.DSN.
// "memory" (or an empty DSN) selects a shared in-memory database.
func Init() (*gorm.DB, error) {
	return Open(config.AppConfig.Database.DSN)
}

// Open opens dsn with the service's gorm settings.
func Open(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{Logger: gormLogger}

	var db *gorm.DB
	var err error
	if dsn == "memory" || dsn == "" {
		log.Println("INFO: [Database] Initializing in-memory SQLite database.")
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), gormConfig)
	} else {
		log.Printf("INFO: [Database] Initializing file-based SQLite database at DSN: '%s'.", dsn)
		dbDir := filepath.Dir(dsn)
		if dbDir != "." && dbDir != "/" {
			if mkdirErr := os.MkdirAll(dbDir, 0755); mkdirErr != nil {
				log.Printf("ERROR: [Database] Failed to create database directory '%s': %v", dbDir, mkdirErr)
				return nil, fmt.Errorf("failed to create database directory '%s': %w", dbDir, mkdirErr)
			}
		}
		db, err = gorm.Open(sqlite.Open(dsn), gormConfig)
	}
	if err != nil {
		log.Printf("ERROR: [Database] Failed to connect to database (DSN: '%s'): %v", dsn, err)
		return nil, fmt.Errorf("failed to connect to database (DSN: '%s'): %w", dsn, err)
	}

	log.Println("INFO: [Database] Database connection established successfully.")
	return db, nil
}

// Migrate creates or updates the service's tables.
func Migrate(db *gorm.DB) error {
	log.Println("INFO: [Database] Running database migrations...")
	if err := db.AutoMigrate(&models.PlanSnapshot{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	log.Println("INFO: [Database] Database migration completed.")
	return nil
}
