package events

import "errors"

var (
	// ErrBrokerClosed is returned when publishing after Shutdown
	ErrBrokerClosed = errors.New("event broker is closed")

	// ErrBroadcastFull is returned when the broadcast queue cannot accept more events
	ErrBroadcastFull = errors.New("broadcast channel full")
)
