package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the console's local state store.
// A PostgreSQL URL in CONSOLE_DATABASE_URL takes precedence (multi-instance
// deployments); otherwise an embedded sqlite file is used.
func ConnectDatabase() error {
	var err error

	if databaseURL := os.Getenv("CONSOLE_DATABASE_URL"); databaseURL != "" {
		DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("failed to connect to state database: %w", err)
		}
		logrus.Info("State store connected (postgres)")
		return nil
	}

	statePath := os.Getenv("CONSOLE_STATE_PATH")
	if statePath == "" {
		statePath = "console_state.db"
		logrus.Infof("CONSOLE_STATE_PATH not set, using default: %s", statePath)
	}

	DB, err = gorm.Open(sqlite.Open(statePath), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}

	logrus.Info("State store connected (sqlite)")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
