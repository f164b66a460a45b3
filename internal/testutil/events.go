package testutil

import (
	"sync"

	"github.com/thenoetrevino/countwave/internal/events"
)

// RecordingPublisher records every event it is sent.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

// SendEvent records the event
func (p *RecordingPublisher) SendEvent(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of the recorded events
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Event, len(p.events))
	copy(out, p.events)
	return out
}

// Last returns the most recent event and whether there was one
func (p *RecordingPublisher) Last() (events.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return events.Event{}, false
	}
	return p.events[len(p.events)-1], true
}
