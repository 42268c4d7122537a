package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/optitask/optitask/internal/models"
)

// Options controls how the storage handle is opened. The pool is the only
// shared resource between requests, so it is constructed once at startup
// and handed to every service explicitly.
type Options struct {
	// Path to the sqlite file. Empty means ~/.optitask/optitask.db.
	Path         string
	MaxOpenConns int
	MaxIdleConns int
}

// Open sets up the database connection pool. Foreign keys are switched on
// so the task_labels constraints backstop the association probe/insert
// race.
func Open(opts Options) (*gorm.DB, error) {
	path := opts.Path
	if path == "" {
		var err error
		path, err = defaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create optitask directory: %w", err)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // Quiet by default
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}

	return gdb, nil
}

// defaultDatabasePath returns the path to the sqlite database file
func defaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".optitask", "optitask.db"), nil
}

// Migrate creates/updates the database schema
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.Project{},
		&models.Task{},
		&models.Label{},
		&models.TaskLabel{},
		&models.TimeEntry{},
	)
}

// Close closes the database connection
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
