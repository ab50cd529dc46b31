package item

import (
	"context"
	"inventory/pkg/events"
	"time"
)

// eventPublishTimeout bounds how long a write request waits on the broker.
const eventPublishTimeout = time.Second

func emitItemEvent(ctx context.Context, publisher events.Publisher, serviceName, name string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, eventPublishTimeout)
	defer cancel()

	return events.Emit(ctx, publisher, events.ItemExchange, serviceName, name, payload)
}
