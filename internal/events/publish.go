package events

import (
	"errors"
	"log/slog"
	"time"
)

// PublishWithRetry attempts to publish an event with retry logic.
// It makes up to maxRetries attempts with exponential backoff.
// Returns the error from the final attempt if all retries fail.
//
// Live refresh is best-effort: a failure is logged and returned, but it
// never undoes the write that produced the event. A closed broker is not
// retried.
func PublishWithRetry(publisher EventPublisher, event Event, maxRetries int) error {
	if publisher == nil {
		return nil // no publisher in tests or the CLI
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := publisher.SendEvent(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"workspace_id", event.WorkspaceID)
			}
			return nil
		}

		lastErr = err
		if errors.Is(err, ErrBrokerClosed) {
			break
		}

		// Don't sleep after the last attempt
		if attempt < maxRetries-1 {
			// Exponential backoff: 50ms, 100ms, 200ms
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)
			time.Sleep(delay)
		}
	}

	slog.Warn("event publish failed",
		"attempts", maxRetries,
		"event_type", event.Type,
		"workspace_id", event.WorkspaceID,
		"error", lastErr)

	return lastErr
}
