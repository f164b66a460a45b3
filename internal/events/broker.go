package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultBroadcastBuffer  = 256
	defaultSubscriberBuffer = 16
)

type subscription struct {
	workspaceID int
	ownerID     string
	send        chan Event
	closeOnce   sync.Once
}

// wants reports whether event should be delivered to s. Broadcast events
// (workspace 0) reach everyone.
func (s *subscription) wants(event Event) bool {
	if event.WorkspaceID == 0 || s.workspaceID == event.WorkspaceID {
		return true
	}
	if s.ownerID != "" {
		return event.OwnerID == s.ownerID
	}
	return s.workspaceID == 0
}

func (s *subscription) close() {
	s.closeOnce.Do(func() { close(s.send) })
}

// Broker fans events out to in-process subscribers such as live-refresh
// SSE streams. Slow subscribers drop events instead of blocking publishers.
type Broker struct {
	mu           sync.RWMutex
	subs         map[*subscription]struct{}
	broadcast    chan Event
	metrics      *Metrics
	sequence     atomic.Int64
	closed       atomic.Bool
	subBuffer    int
	shutdownOnce sync.Once
	done         chan struct{}
}

// BrokerOption configures a Broker
type BrokerOption func(*Broker)

// WithSubscriberBuffer sets the per-subscriber queue size
func WithSubscriberBuffer(n int) BrokerOption {
	return func(b *Broker) {
		if n > 0 {
			b.subBuffer = n
		}
	}
}

// NewBroker creates a broker. Call Start to begin delivering events.
func NewBroker(opts ...BrokerOption) *Broker {
	b := &Broker{
		subs:      make(map[*subscription]struct{}),
		broadcast: make(chan Event, defaultBroadcastBuffer),
		metrics:   NewMetrics(),
		subBuffer: defaultSubscriberBuffer,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Metrics returns the broker's live counters
func (b *Broker) Metrics() *Metrics {
	return b.metrics
}

// Start runs the broadcast loop until ctx is cancelled or Shutdown is called.
func (b *Broker) Start(ctx context.Context) {
	go b.broadcastLoop(ctx)
}

// SendEvent queues an event for delivery without blocking
func (b *Broker) SendEvent(event Event) error {
	if b.closed.Load() {
		return ErrBrokerClosed
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case b.broadcast <- event:
		b.metrics.IncEventsReceived()
		return nil
	default:
		return ErrBroadcastFull
	}
}

// Subscribe registers interest in a workspace (0 = all workspaces)
func (b *Broker) Subscribe(workspaceID int) (<-chan Event, func()) {
	return b.subscribe(&subscription{workspaceID: workspaceID})
}

// SubscribeOwner registers interest in one workspace plus the
// workspace-level events (create, rename, share, delete) of its owner.
func (b *Broker) SubscribeOwner(ownerID string, workspaceID int) (<-chan Event, func()) {
	return b.subscribe(&subscription{workspaceID: workspaceID, ownerID: ownerID})
}

func (b *Broker) subscribe(sub *subscription) (<-chan Event, func()) {
	sub.send = make(chan Event, b.subBuffer)

	b.mu.Lock()
	if b.closed.Load() {
		b.mu.Unlock()
		sub.close()
		return sub.send, func() {}
	}
	b.subs[sub] = struct{}{}
	count := len(b.subs)
	b.mu.Unlock()
	b.metrics.SetSubscribers(int32(count))

	return sub.send, func() { b.removeSubscription(sub) }
}

func (b *Broker) removeSubscription(sub *subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	count := len(b.subs)
	b.mu.Unlock()
	sub.close()
	b.metrics.SetSubscribers(int32(count))
}

func (b *Broker) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.Shutdown()
			return
		case <-b.done:
			return
		case event := <-b.broadcast:
			b.deliver(event)
		}
	}
}

func (b *Broker) deliver(event Event) {
	event.SequenceID = b.sequence.Add(1)

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		if !sub.wants(event) {
			continue
		}
		select {
		case sub.send <- event:
			b.metrics.IncEventsSent()
		default:
			b.metrics.IncEventsDropped()
			slog.Debug("subscriber queue full, event dropped",
				"workspace_id", event.WorkspaceID,
				"sequence", event.SequenceID)
		}
	}
}

// Shutdown stops delivery and closes every subscriber channel
func (b *Broker) Shutdown() {
	b.shutdownOnce.Do(func() {
		b.closed.Store(true)
		close(b.done)

		b.mu.Lock()
		for sub := range b.subs {
			sub.close()
		}
		b.subs = make(map[*subscription]struct{})
		b.mu.Unlock()
		b.metrics.SetSubscribers(0)
	})
}
