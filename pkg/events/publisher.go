package events

import (
	"context"
)

// Publisher defines the interface for publishing domain events
type Publisher interface {
	// Publish publishes an event to the message broker
	Publish(ctx context.Context, exchange string, event *Event, headers Headers) error

	// Close closes the publisher connection
	Close() error
}

// Emit wraps payload in a v1 event and publishes it. A nil publisher is a no-op.
func Emit(ctx context.Context, p Publisher, exchange, service, name string, payload any) error {
	if p == nil {
		return nil
	}

	headers := NewHeaders(service)
	event := NewEvent(name, EventVersionV1, payload, headers)

	return p.Publish(ctx, exchange, event, headers)
}
