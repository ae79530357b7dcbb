package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/content-sync-api/internal/api"
	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/database"
	"github.com/content-sync-api/internal/devotion"
	"github.com/content-sync-api/internal/podcast"
	"github.com/content-sync-api/internal/repository"
	"github.com/content-sync-api/internal/service"
	"github.com/content-sync-api/internal/wordpress"
	"github.com/content-sync-api/pkg/logger"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	godotenv.Load()

	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting content sync API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories and collaborators
	repos := repository.New(db)
	client := wordpress.NewClient(&cfg.WordPress, log)
	feedParser := podcast.NewFeedParser(&cfg.Podcast, log)
	podcastStore := podcast.NewStore(&cfg.Podcast, log)
	devotionStore := devotion.NewStore(&cfg.Cache, log)

	// Initialize services
	services := service.NewServices(repos, client, feedParser, podcastStore, devotionStore, cfg, log)

	// Enforce the article cap once per startup, before any sync runs
	if deleted, err := services.Eviction.EnforceCap(context.Background()); err != nil {
		log.Error().Err(err).Msg("Startup cache eviction failed")
	} else if deleted > 0 {
		log.Info().Int("deleted", deleted).Msg("Startup cache eviction trimmed articles")
	}

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
