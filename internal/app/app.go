package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/shell"
	"bookshelf/internal/storage"
	"bookshelf/internal/storage/jsonfile"
	"bookshelf/internal/storage/sqlite"
	"bookshelf/internal/storage/stubs"
)

// App represents the application
type App struct {
	config  *config.Config
	db      storage.Storage
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// New creates and initializes a new application instance
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return NewWithLogger(ctx, cfg, logger)
}

// NewWithLogger is New with a caller-supplied logger
func NewWithLogger(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{config: cfg, logger: logger}

	logger.Info("Starting bookshelf",
		zap.String("backend", cfg.Backend),
		zap.String("catalog", cfg.CatalogPath),
	)

	if err := app.initStorage(); err != nil {
		return nil, err
	}

	if err := app.initCatalog(ctx); err != nil {
		app.db.Close()
		return nil, err
	}

	return app, nil
}

// NewLogger builds the console logger writing to stderr
func NewLogger(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zcfg.Sampling = nil
	return zcfg.Build()
}

// initStorage opens the configured storage backend
func (a *App) initStorage() error {
	if a.config.CatalogPath == "" {
		a.config.CatalogPath = config.DefaultPath(a.config.Backend)
	}

	var db storage.Storage
	switch a.config.Backend {
	case config.BackendMemory:
		a.logger.Info("Using in-memory catalog, changes will not be kept")
		db = stubs.NewMockDB()
	case config.BackendSQLite:
		sqliteDB, err := sqlite.New(a.config.CatalogPath)
		if err != nil {
			return fmt.Errorf("failed to open SQLite catalog: %w", err)
		}
		db = sqliteDB
	case config.BackendJSON, "":
		jsonDB, err := jsonfile.New(a.config.CatalogPath)
		if err != nil {
			return fmt.Errorf("failed to open catalog file: %w", err)
		}
		db = jsonDB
	default:
		return fmt.Errorf("unknown storage backend %q", a.config.Backend)
	}

	a.db = db
	return nil
}

// initCatalog loads the catalog from storage
func (a *App) initCatalog(ctx context.Context) error {
	c, err := catalog.New(ctx, a.db, a.logger.Named("catalog"))
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}
	a.catalog = c
	return nil
}

// Catalog returns the loaded catalog
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Logger returns the application logger
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Run starts the interactive shell and blocks until the user exits,
// input ends or ctx is cancelled
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	sh := shell.New(a.catalog, out, a.logger.Named("shell"))
	if err := sh.Run(ctx, in); err != nil && ctx.Err() == nil {
		return fmt.Errorf("shell failed: %w", err)
	}
	return nil
}

// Shutdown closes the storage backend
func (a *App) Shutdown() error {
	defer a.logger.Sync() //nolint:errcheck

	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing storage", zap.Error(err))
		return err
	}

	a.logger.Info("Shutdown complete")
	return nil
}
