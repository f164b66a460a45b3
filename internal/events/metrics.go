package events

import (
	"sync/atomic"
	"time"
)

// Metrics tracks broker statistics using atomic operations for thread-safety
type Metrics struct {
	EventsSent     atomic.Int64
	EventsReceived atomic.Int64
	EventsDropped  atomic.Int64
	Subscribers    atomic.Int32
	StartTime      time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncEventsSent increments the delivered-to-subscriber counter
func (m *Metrics) IncEventsSent() {
	m.EventsSent.Add(1)
}

// IncEventsReceived increments the published counter
func (m *Metrics) IncEventsReceived() {
	m.EventsReceived.Add(1)
}

// IncEventsDropped increments the dropped counter
func (m *Metrics) IncEventsDropped() {
	m.EventsDropped.Add(1)
}

// SetSubscribers sets the current subscriber count
func (m *Metrics) SetSubscribers(count int32) {
	m.Subscribers.Store(count)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	EventsSent     int64     `json:"events_sent"`
	EventsReceived int64     `json:"events_received"`
	EventsDropped  int64     `json:"events_dropped"`
	Subscribers    int32     `json:"subscribers"`
	StartTime      time.Time `json:"start_time"`
	Uptime         string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsSent:     m.EventsSent.Load(),
		EventsReceived: m.EventsReceived.Load(),
		EventsDropped:  m.EventsDropped.Load(),
		Subscribers:    m.Subscribers.Load(),
		StartTime:      m.StartTime,
		Uptime:         time.Since(m.StartTime).Round(time.Second).String(),
	}
}
