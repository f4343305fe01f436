package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/practico/practico-api/internal/analysis"
	"github.com/practico/practico-api/internal/config"
	"github.com/practico/practico-api/internal/difficulty"
	"github.com/practico/practico-api/internal/domain/conjugation"
	"github.com/practico/practico-api/internal/domain/srs"
	"github.com/practico/practico-api/internal/exercise"
	"github.com/practico/practico-api/internal/platform/postgres"
	"github.com/practico/practico-api/internal/service"
	"github.com/practico/practico-api/internal/store"
	"github.com/practico/practico-api/internal/store/verbdata"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	cardStore     store.CardStore
	weaknessStore store.WeaknessStore
	verbs         store.VerbRepository

	// Core engine components
	engine          *conjugation.Engine
	analyzer        *analysis.Analyzer
	srsService      srs.Service
	generator       *exercise.Generator
	difficulty      *difficulty.Manager
	practiceService service.PracticeService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.weaknessStore = postgres.NewPostgresWeaknessStore(db, logger)

	verbs, err := verbdata.NewRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to load verb reference set: %w", err)
	}
	app.verbs = verbs
	logger.Info("Verb reference set loaded", "verbs", len(verbs.All()))

	// Conjugation engine and grading
	app.engine = conjugation.NewEngine(conjugation.Config{
		AccentInsensitive: cfg.Practice.AccentInsensitive,
	})
	app.analyzer = analysis.NewAnalyzer()

	// Scheduler
	srsParams := srs.NewDefaultParams()
	srsParams.FastLatencyMs = cfg.Practice.FastLatencyMs
	app.srsService = srs.NewServiceWithParams(srsParams)

	// Exercise generation (nil rng means time-seeded)
	app.generator = exercise.NewGenerator(app.verbs, nil)

	// Adaptive difficulty
	diffParams := difficulty.NewDefaultParams()
	diffParams.WindowSize = cfg.Practice.WindowSize
	app.difficulty = difficulty.NewManager(diffParams)

	// Practice orchestrator
	app.practiceService, err = service.NewPracticeService(
		app.cardStore,
		app.weaknessStore,
		app.verbs,
		app.engine,
		app.analyzer,
		app.srsService,
		app.generator,
		app.difficulty,
		service.Config{
			DueRatio:           cfg.Practice.DueRatio,
			MaxConflictRetries: service.NewDefaultConfig().MaxConflictRetries,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create practice service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
