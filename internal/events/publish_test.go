package events

import (
	"errors"
	"testing"
)

// mockRetryPublisher fails the first failUntil attempts
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int
	failWith     error
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		if m.failWith != nil {
			return m.failWith
		}
		return errors.New("simulated send failure")
	}
	return nil
}

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{}
	event := Event{Type: EventWorkspaceChanged, WorkspaceID: 1}

	if err := PublishWithRetry(mock, event, 3); err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}
	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}
	if mock.lastEvent.WorkspaceID != 1 {
		t.Errorf("Expected workspace 1, got %d", mock.lastEvent.WorkspaceID)
	}
}

func TestPublishWithRetry_SucceedsAfterFailures(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 2}

	if err := PublishWithRetry(mock, Event{Type: EventWorkspaceChanged}, 3); err != nil {
		t.Errorf("Expected success on third attempt, got: %v", err)
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_AllFail(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 10}

	if err := PublishWithRetry(mock, Event{Type: EventWorkspaceChanged}, 2); err == nil {
		t.Error("Expected error after all retries fail")
	}
	if mock.sendAttempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_ClosedBrokerStopsEarly(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 10, failWith: ErrBrokerClosed}

	err := PublishWithRetry(mock, Event{Type: EventWorkspaceChanged}, 3)
	if !errors.Is(err, ErrBrokerClosed) {
		t.Errorf("Expected ErrBrokerClosed, got %v", err)
	}
	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_NilPublisher(t *testing.T) {
	if err := PublishWithRetry(nil, Event{Type: EventWorkspaceChanged}, 3); err != nil {
		t.Errorf("Expected nil publisher to be a no-op, got %v", err)
	}
}
