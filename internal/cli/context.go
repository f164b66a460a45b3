package cli

import (
	"context"

	"github.com/thenoetrevino/countwave/internal/app"
	"github.com/thenoetrevino/countwave/internal/config"
)

type contextKey string

const (
	appKey    contextKey = "app"
	configKey contextKey = "config"
)

// WithApp makes commands run against a instead of opening the database
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// WithConfig hands the loaded configuration to subcommands
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFromContext returns the configuration set by the root command, or
// loads it when a subcommand runs on its own.
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok && cfg != nil {
		return cfg, nil
	}
	return config.Load()
}

// GetCLIFromContext returns a CLI over the App in ctx if there is one,
// otherwise it opens the configured database.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a, Config: cfg, borrowed: true}, nil
	}
	return NewCLI(ctx, cfg)
}
