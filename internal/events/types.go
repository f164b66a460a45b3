package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventWorkspaceChanged EventType = "workspace_changed"
	EventWorkspaceDeleted EventType = "workspace_deleted"
)

// Event represents a data change notification
type Event struct {
	Type        EventType
	WorkspaceID int       // For filtering - which workspace was modified
	OwnerID     string    // Owner of the workspace, for sidebar refreshes
	Timestamp   time.Time // When the event occurred
	SequenceID  int64     // Monotonically increasing sequence number for ordering
}
