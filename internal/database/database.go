package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/makehaven/tasks-display/internal/db"
	"github.com/makehaven/tasks-display/pkg/debug"
)

// Connect opens the shared Postgres connection pool.
func Connect(cfg db.Config) (*db.DB, error) {
	debug.Info("Connecting to database %s on %s:%d", cfg.DBName, cfg.Host, cfg.Port)
	database, err := db.New(cfg)
	if err != nil {
		return nil, err
	}
	return database, nil
}

// RunMigrations applies every pending migration found at sourceURL.
func RunMigrations(sourceURL string, cfg db.Config) error {
	m, err := migrate.New(sourceURL, cfg.URL())
	if err != nil {
		return fmt.Errorf("failed to initialize migrations from %s: %w", sourceURL, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			debug.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		debug.Warning("Could not read migration version: %v", err)
		return nil
	}
	debug.Info("Database migrated to version %d (dirty: %v)", version, dirty)
	return nil
}

// OpenGorm layers gorm over an existing connection so both share one pool.
func OpenGorm(database *db.DB) (*gorm.DB, error) {
	level := logger.Silent
	if debug.IsEnabled && debug.CurrentLevel == debug.LevelDebug {
		level = logger.Info
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: database.DB}), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}
	return gdb, nil
}
