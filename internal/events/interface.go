package events

import "context"

// EventPublisher defines the interface for sending and receiving events.
// The cache layer publishes through it and views listen through it, so tests
// can substitute a recorder.
type EventPublisher interface {
	// SendEvent queues an event for delivery to every listener
	SendEvent(event Event) error

	// Listen returns a channel of events that closes when ctx is done
	Listen(ctx context.Context) (<-chan Event, error)

	// Close stops delivery and closes every listener channel
	Close() error
}

// Compile-time verification that *Bus implements EventPublisher
var _ EventPublisher = (*Bus)(nil)
