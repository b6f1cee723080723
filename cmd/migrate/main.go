package main

import (
	"flag"

	"github.com/joho/godotenv"

	"github.com/makehaven/tasks-display/internal/config"
	"github.com/makehaven/tasks-display/internal/database"
	"github.com/makehaven/tasks-display/pkg/debug"
)

func main() {
	source := flag.String("source", "", "migration source URL (defaults to MIGRATIONS_PATH)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		debug.Warning("Failed to load .env file: %v", err)
	}
	debug.Reinitialize()

	cfg := config.NewConfig()
	if *source == "" {
		*source = cfg.MigrationsPath
	}

	if err := database.RunMigrations(*source, cfg.Database); err != nil {
		debug.Fatal("Error running migrations: %v", err)
	}

	debug.Info("Migrations completed successfully")
}
