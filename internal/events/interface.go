package events

// EventPublisher is what services depend on to announce writes.
// Publishing must never block the caller's write path.
type EventPublisher interface {
	SendEvent(event Event) error
}

// Subscriber delivers events for one workspace (0 = every workspace).
// The returned cancel func must be called to release the subscription.
type Subscriber interface {
	Subscribe(workspaceID int) (<-chan Event, func())
}

// Compile-time verification that *Broker implements both sides
var (
	_ EventPublisher = (*Broker)(nil)
	_ Subscriber     = (*Broker)(nil)
)
