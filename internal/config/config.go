package config

import (
	"fmt"
	"strings"

	"github.com/makehaven/tasks-display/internal/db"
	"github.com/makehaven/tasks-display/pkg/env"
)

// Configuration store backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds the application configuration
type Config struct {
	Host string
	Port int

	// ConfigBackend selects where the display code word is persisted.
	ConfigBackend string
	// InitialCodeWord seeds the memory backend. Ignored for postgres.
	InitialCodeWord string

	Database       db.Config
	MigrationsPath string
	// RunMigrations applies pending migrations at server startup.
	RunMigrations bool
}

// NewConfig creates a new Config instance with values from environment variables
func NewConfig() *Config {
	return &Config{
		Host:            env.GetOrDefault("HOST", "0.0.0.0"),
		Port:            env.GetIntOrDefault("PORT", 8080),
		ConfigBackend:   strings.ToLower(env.GetOrDefault("CONFIG_BACKEND", BackendPostgres)),
		InitialCodeWord: env.GetOrDefault("DISPLAY_CODE_WORD", ""),
		Database: db.Config{
			Host:     env.GetOrDefault("DB_HOST", "localhost"),
			Port:     env.GetIntOrDefault("DB_PORT", 5432),
			User:     env.GetOrDefault("DB_USER", "postgres"),
			Password: env.GetOrDefault("DB_PASSWORD", ""),
			DBName:   env.GetOrDefault("DB_NAME", "tasks_display"),
			SSLMode:  env.GetOrDefault("DB_SSLMODE", "disable"),
		},
		MigrationsPath: env.GetOrDefault("MIGRATIONS_PATH", "file://db/migrations"),
		RunMigrations:  env.GetBoolOrDefault("RUN_MIGRATIONS", true),
	}
}

// Validate reports configuration that cannot be served.
func (c *Config) Validate() error {
	switch c.ConfigBackend {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("unsupported CONFIG_BACKEND %q (want %q or %q)", c.ConfigBackend, BackendPostgres, BackendMemory)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

// UsesDatabase reports whether Postgres must be reachable at startup.
func (c *Config) UsesDatabase() bool {
	return c.ConfigBackend == BackendPostgres
}

// GetAddress returns the full address for the server to listen on
func (c *Config) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
