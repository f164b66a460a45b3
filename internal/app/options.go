package app

import (
	"log/slog"

	"github.com/thenoetrevino/countwave/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	broker      *events.Broker
	logger      *slog.Logger
}

// WithEventPublisher sets the event publisher for the application.
// Live refresh is unavailable with a custom publisher.
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithBroker uses b for both publishing and live-refresh subscriptions
func WithBroker(b *events.Broker) Option {
	return func(cfg *appConfig) {
		cfg.broker = b
		cfg.eventClient = b
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
