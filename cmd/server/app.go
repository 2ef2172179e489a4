package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/photodeck/photodeck/internal/config"
	"github.com/photodeck/photodeck/internal/domain"
	"github.com/photodeck/photodeck/internal/engine"
	"github.com/photodeck/photodeck/internal/generation"
	"github.com/photodeck/photodeck/internal/platform/gemini"
	"github.com/photodeck/photodeck/internal/platform/sqlitekv"
	"github.com/photodeck/photodeck/internal/store"
	"github.com/photodeck/photodeck/internal/study"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db       *sqlitekv.DB
	engine   *engine.Engine
	sessions *study.Controller

	// generator is nil when no API key is configured; the generation
	// endpoints then respond 503.
	generator generation.Generator
}

// newApplication creates a new application instance with all
// dependencies initialized: storage opened and migrated, the engine
// populated from the stored collection, and the study controller
// subscribed to it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.db, err = sqlitekv.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	logger.Info("storage opened", "path", cfg.Storage.Path)

	collectionStore := sqlitekv.NewCollectionStore(app.db, logger)

	app.engine = engine.New(collectionStore, logger)
	if err := app.loadCollection(ctx, collectionStore); err != nil {
		if closeErr := app.db.Close(); closeErr != nil {
			logger.Error("error closing storage after failed load", "error", closeErr)
		}
		return nil, err
	}

	app.sessions = study.NewController(app.engine)

	if cfg.LLM.GenerationEnabled() {
		gen, err := gemini.NewGeminiGenerator(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize card generator: %w", err)
		}
		app.generator = gen
		logger.Info("card generation enabled", "model", cfg.LLM.ModelName)
	} else {
		logger.Info("card generation disabled, no API key configured")
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// loadCollection populates the engine from storage. A corrupt payload
// is not fatal: the server starts over an empty collection, same as a
// first run, rather than refusing to boot.
func (app *application) loadCollection(ctx context.Context, cs store.CollectionStore) error {
	cards, err := cs.LoadCards(ctx)
	if err != nil {
		if !store.IsStorageCorrupt(err) {
			return fmt.Errorf("failed to load cards: %w", err)
		}
		app.logger.Error("stored cards unreadable, starting empty", "error", err)
		cards = []domain.Card{}
	}

	folders, err := cs.LoadFolders(ctx)
	if err != nil {
		if !store.IsStorageCorrupt(err) {
			return fmt.Errorf("failed to load folders: %w", err)
		}
		app.logger.Error("stored folders unreadable, starting empty", "error", err)
		folders = []domain.Folder{}
	}

	// SetCards clears the loading flag and with it the autosave
	// suppression, so it goes last: nothing is written back until the
	// whole collection is in.
	app.engine.Dispatch(engine.SetFolders{Folders: folders})
	app.engine.Dispatch(engine.SetCards{Cards: cards})

	app.logger.Info("collection loaded",
		"cards", len(cards),
		"folders", len(folders))
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters
// problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources: pending
// saves are flushed before the storage connection closes.
func (app *application) cleanup() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.engine != nil {
		if err := app.engine.Close(shutdownCtx); err != nil {
			app.logger.Error("error flushing pending saves", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing storage", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
