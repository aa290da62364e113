package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fennwick/libris-api/internal/config"
	"github.com/fennwick/libris-api/internal/platform/postgres"
	"github.com/fennwick/libris-api/internal/service"
	"github.com/fennwick/libris-api/internal/service/auth"
	"github.com/fennwick/libris-api/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	bookStore store.BookStore

	// Service interfaces
	passwordVerifier auth.PasswordVerifier
	accountService   service.AccountService
	catalogService   service.CatalogService
}

// newApplication creates an application instance with all dependencies
// initialized. Core dependencies like configuration, logger and database
// connection must be established before calling this.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost)
	app.bookStore = postgres.NewPostgresBookStore(db, logger)

	app.accountService = service.NewAccountService(
		app.userStore,
		app.passwordVerifier,
		db,
		logger,
	)
	app.catalogService = service.NewCatalogService(app.bookStore, db, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
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
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
