// Package main is the entry point for the jokes API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"jokesapp/src/app/server"
	"jokesapp/src/infra/config"
	"jokesapp/src/infra/db"
	"jokesapp/src/infra/logger"
	"jokesapp/src/infra/repo"
	"jokesapp/src/infra/session"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	// Initialize database connection and apply migrations
	ctx := context.Background()
	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		return err
	}

	// Initialize repository and session manager
	appRepo := repo.NewPostgresRepository(pg, logger.WithComponent(log, "repo"))
	sessions, err := session.NewManager(cfg.Session, logger.WithComponent(log, "session"))
	if err != nil {
		return err
	}

	// Create and run HTTP server
	srv := server.New(cfg, log, appRepo, sessions)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
