package interfaces

import "context"

// EventListener handles one event type arriving on one queue.
type EventListener interface {
	Handle(ctx context.Context, baseEvent any) error
	GetEventType() string
	GetQueueName() string
}
