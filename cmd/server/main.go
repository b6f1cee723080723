package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/makehaven/tasks-display/internal/config"
	"github.com/makehaven/tasks-display/internal/configstore"
	"github.com/makehaven/tasks-display/internal/database"
	"github.com/makehaven/tasks-display/internal/metrics"
	"github.com/makehaven/tasks-display/internal/models"
	"github.com/makehaven/tasks-display/internal/repository"
	"github.com/makehaven/tasks-display/internal/routes"
	"github.com/makehaven/tasks-display/internal/services"
	"github.com/makehaven/tasks-display/internal/views"
	"github.com/makehaven/tasks-display/pkg/debug"
)

// noTasks backs the tasks view when no database is configured.
type noTasks struct{}

func (noTasks) ListOpen(context.Context) ([]models.Task, error) { return nil, nil }

func (noTasks) ListCompletedSince(context.Context, time.Time, int) ([]models.Task, error) {
	return nil, nil
}

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		debug.Warning("Failed to load .env file from current directory: %v", err)

		if err := godotenv.Load("../../.env"); err != nil {
			debug.Info("No .env file found, using process environment")
			return
		}
		debug.Info("Successfully loaded .env file from project root")
		return
	}
	debug.Info("Successfully loaded .env file from current directory")
}

func main() {
	debug.Reinitialize()
	loadEnv()

	// Reinitialize debug package with loaded environment variables
	debug.Reinitialize()

	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		debug.Fatal("Invalid configuration: %v", err)
	}
	debug.Info("Initializing tasks display with %s configuration backend", cfg.ConfigBackend)

	registry := views.NewRegistry()
	var backend configstore.Backend

	if cfg.UsesDatabase() {
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			debug.Fatal("Database connection failed: %v", err)
		}
		defer conn.Close()
		debug.Info("Database connection established")

		if cfg.RunMigrations {
			if err := database.RunMigrations(cfg.MigrationsPath, cfg.Database); err != nil {
				debug.Fatal("Database migrations failed: %v", err)
			}
		}

		gdb, err := database.OpenGorm(conn)
		if err != nil {
			debug.Fatal("Failed to open ORM session: %v", err)
		}

		backend = configstore.NewRepositoryBackend(repository.NewConfigRepository(conn))
		registry.Register(views.NewTasksView(repository.NewTaskRepository(gdb)))
	} else {
		backend = configstore.NewMemoryBackend()
		registry.Register(views.NewTasksView(noTasks{}))
	}

	configs := configstore.NewManager(backend)
	if cfg.InitialCodeWord != "" && !cfg.UsesDatabase() {
		seed := configs.Editable(models.DisplayConfigNamespace)
		seed.Set(models.DisplayConfigCodeWordKey, cfg.InitialCodeWord)
		if err := seed.Save(context.Background()); err != nil {
			debug.Fatal("Failed to seed display code word: %v", err)
		}
		debug.Info("Seeded display code word from DISPLAY_CODE_WORD")
	}

	r := mux.NewRouter()
	routes.SetupRoutes(r, routes.Dependencies{
		DisplayService:  services.NewDisplayService(configs, registry),
		SettingsService: services.NewSettingsService(configs),
		Metrics:         metrics.New(prometheus.NewRegistry()),
	})

	server := &http.Server{
		Addr:              cfg.GetAddress(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		debug.Info("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debug.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	debug.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		debug.Error("Server forced to shutdown: %v", err)
	}
	debug.Info("Server exited")
}
