// Package main implements the entry point for the PhotoDeck server,
// a single-user flashcard service with photo-to-card generation.
package main

import (
	"context"
	"log"

	"github.com/photodeck/photodeck/internal/config"
	"github.com/photodeck/photodeck/internal/platform/logger"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up structured logging using the configured log level
	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_path", cfg.Storage.Path,
		"generation_enabled", cfg.LLM.GenerationEnabled())

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
