// Package cli holds the shared plumbing of the countwave commands: the
// application handle, output formatting, exit codes and common flags.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/countwave/internal/app"
	"github.com/thenoetrevino/countwave/internal/config"
	"github.com/thenoetrevino/countwave/internal/database"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	db       *sql.DB
	borrowed bool
}

// NewCLI opens the configured database and builds the application on it
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	application := app.New(database.NewRepository(db), app.WithLogger(slog.Default()))

	return &CLI{
		App:    application,
		Config: cfg,
		db:     db,
	}, nil
}

// Close cleans up CLI resources. An App handed in through the context is
// left open for its owner.
func (c *CLI) Close() error {
	if c.borrowed {
		return nil
	}
	if err := c.App.Close(); err != nil {
		return err
	}
	return c.db.Close()
}
