package app

import (
	"context"
	"log/slog"

	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/database"
	"github.com/thenoetrevino/countwave/internal/events"
	subtaskservice "github.com/thenoetrevino/countwave/internal/services/subtask"
	todoservice "github.com/thenoetrevino/countwave/internal/services/todo"
	workspaceservice "github.com/thenoetrevino/countwave/internal/services/workspace"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates
	eventClient events.EventPublisher
	broker      *events.Broker

	logger *slog.Logger

	// Service layer (business logic)
	WorkspaceService workspaceservice.Service
	TodoService      todoservice.Service
	SubtaskService   subtaskservice.Service

	// Actions is the validated, authorized mutation boundary over the services
	Actions *actions.Actions
}

// New creates a new App with all services initialized.
// Without WithEventPublisher or WithBroker, an in-process broker is created.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.eventClient == nil {
		if cfg.broker == nil {
			cfg.broker = events.NewBroker()
		}
		cfg.eventClient = cfg.broker
	}

	a := &App{
		repo:             repo,
		eventClient:      cfg.eventClient,
		broker:           cfg.broker,
		logger:           cfg.logger,
		WorkspaceService: workspaceservice.NewService(repo, cfg.eventClient),
		TodoService:      todoservice.NewService(repo, cfg.eventClient),
		SubtaskService:   subtaskservice.NewService(repo, cfg.eventClient),
	}
	a.Actions = actions.New(a.WorkspaceService, a.TodoService, a.SubtaskService)
	return a
}

// Start begins delivering events to live-refresh subscribers
func (a *App) Start(ctx context.Context) {
	if a.broker != nil {
		a.broker.Start(ctx)
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Broker returns the in-process broker, or nil when a custom publisher was supplied
func (a *App) Broker() *events.Broker {
	return a.broker
}

// Logger returns the application logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close shuts down the broker, closing every live-refresh subscription.
func (a *App) Close() error {
	if a.broker != nil {
		a.broker.Shutdown()
	}
	return nil
}
